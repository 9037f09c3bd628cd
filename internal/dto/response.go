package dto

import (
	"github.com/roamly/discovery-service/internal/service"
)

// TourResult is one ranked discovery hit with its derived display state.
type TourResult struct {
	ID                 uint     `json:"id"`
	Title              string   `json:"title"`
	City               string   `json:"city"`
	Country            string   `json:"country"`
	Category           string   `json:"category"`
	Currency           string   `json:"currency"`
	BasePriceCents     int64    `json:"base_price_cents"`
	CurrentPriceCents  int64    `json:"current_price_cents"`
	DurationMins       int      `json:"duration_mins"`
	MinGroup           int      `json:"min_group"`
	MaxGroup           int      `json:"max_group"`
	HostRating         float64  `json:"host_rating"`
	Languages          []string `json:"languages,omitempty"`
	TravelStyles       []string `json:"travel_styles,omitempty"`
	Accessibility      []string `json:"accessibility,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	InstantBook        bool     `json:"instant_book"`
	PayWhatYouWant     bool     `json:"pay_what_you_want"`
	SpotsLeft          int      `json:"spots_left"`
	IsAvailable        bool     `json:"is_available"`
	ProgressPercentage float64  `json:"progress_percentage"`
	IsDropIn           bool     `json:"is_drop_in"`
	IsEarlyBird        bool     `json:"is_early_bird"`
	CompositeScore     float64  `json:"composite_score"`
}

// SearchResponse is the envelope variant of the discovery response. The bare
// array variant serializes []TourResult directly.
type SearchResponse struct {
	Items      []TourResult       `json:"items"`
	Pagination service.Pagination `json:"pagination"`
}

type AvailabilityResponse struct {
	TourID             uint `json:"tour_id"`
	AvailableSpots     int  `json:"available_spots"`
	RequestedHeadcount int  `json:"requested_headcount"`
	IsAvailable        bool `json:"is_available"`
	MinGroup           int  `json:"min_group"`
	MaxGroup           int  `json:"max_group"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToTourResult(rt service.RankedTour) TourResult {
	t := rt.Tour
	return TourResult{
		ID:                 t.ID,
		Title:              t.Title,
		City:               t.City,
		Country:            t.Country,
		Category:           t.Category,
		Currency:           t.Currency,
		BasePriceCents:     t.BasePriceCents,
		CurrentPriceCents:  rt.CurrentPriceCents,
		DurationMins:       t.DurationMins,
		MinGroup:           t.MinGroup,
		MaxGroup:           t.MaxGroup,
		HostRating:         t.HostRating,
		Languages:          t.Languages,
		TravelStyles:       t.TravelStyles,
		Accessibility:      t.Accessibility,
		Tags:               t.Tags,
		InstantBook:        t.InstantBook,
		PayWhatYouWant:     t.PayWhatYouWant,
		SpotsLeft:          rt.AvailableSpots,
		IsAvailable:        rt.AvailableSpots > 0,
		ProgressPercentage: rt.ProgressPercentage,
		IsDropIn:           rt.IsDropIn,
		IsEarlyBird:        rt.IsEarlyBird,
		CompositeScore:     rt.CompositeScore,
	}
}

func ToTourResults(rts []service.RankedTour) []TourResult {
	out := make([]TourResult, len(rts))
	for i, rt := range rts {
		out[i] = ToTourResult(rt)
	}
	return out
}

func ToAvailabilityResponse(a *service.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		TourID:             a.TourID,
		AvailableSpots:     a.AvailableSpots,
		RequestedHeadcount: a.RequestedHeadcount,
		IsAvailable:        a.IsAvailable,
		MinGroup:           a.MinGroup,
		MaxGroup:           a.MaxGroup,
	}
}
