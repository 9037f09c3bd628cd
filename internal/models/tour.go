package models

import (
	"time"

	"gorm.io/datatypes"
)

type TourStatus string

const (
	StatusDraft     TourStatus = "draft"
	StatusPublished TourStatus = "published"
	StatusPaused    TourStatus = "paused"
)

// Tour is a bookable experience or stay. It is created and edited by the host
// service; this service only mirrors it as a read model for discovery.
type Tour struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Title           string  `gorm:"not null" json:"title"`
	City            string  `gorm:"not null;index" json:"city"`
	Country         string  `gorm:"not null;index" json:"country"`
	BasePriceCents  int64   `gorm:"not null" json:"base_price_cents"`
	PromoPriceCents int64   `json:"promo_price_cents,omitempty"`
	Currency        string  `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`
	DurationMins    int     `gorm:"not null" json:"duration_mins"`
	MinGroup        int     `gorm:"not null;default:1" json:"min_group"`
	MaxGroup        int     `gorm:"not null" json:"max_group"`
	Category        string  `gorm:"index" json:"category"`
	HostRating      float64 `json:"host_rating"` // 0-5

	Languages     datatypes.JSONSlice[string] `json:"languages"`
	TravelStyles  datatypes.JSONSlice[string] `json:"travel_styles"`
	Accessibility datatypes.JSONSlice[string] `json:"accessibility"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`

	Status            TourStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	InstantBook       bool       `json:"instant_book"`
	PayWhatYouWant    bool       `json:"pay_what_you_want"`
	EarlyBirdEligible bool       `json:"early_bird_eligible"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StartTimes []TourStartTime `gorm:"foreignKey:TourID" json:"start_times,omitempty"`
}

// CurrentPrice is the post-promotion price used by the price facet and ranking.
func (t *Tour) CurrentPrice() int64 {
	if t.PromoPriceCents > 0 && t.PromoPriceCents < t.BasePriceCents {
		return t.PromoPriceCents
	}
	return t.BasePriceCents
}

// EarliestFutureStart returns the first start time strictly after now.
// Start times are kept sorted ascending by the repository.
func (t *Tour) EarliestFutureStart(now time.Time) (time.Time, bool) {
	for _, st := range t.StartTimes {
		if st.StartsAt.After(now) {
			return st.StartsAt, true
		}
	}
	return time.Time{}, false
}

type TourStartTime struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TourID   uint      `gorm:"not null;index" json:"tour_id"`
	StartsAt time.Time `gorm:"not null;index" json:"starts_at"`
}

// CapacityLedger is the per-tour, per-start-time booking tally. The booking
// service is its sole writer; here it is a mirrored snapshot and is never
// mutated by request handling.
type CapacityLedger struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	TourID            uint      `gorm:"not null;uniqueIndex:idx_ledger_tour_start" json:"tour_id"`
	StartsAt          time.Time `gorm:"not null;uniqueIndex:idx_ledger_tour_start" json:"starts_at"`
	ConfirmedBookings int       `gorm:"not null;default:0" json:"confirmed_bookings"`
	PendingBookings   int       `gorm:"not null;default:0" json:"pending_bookings"`
	CancelledBookings int       `gorm:"not null;default:0" json:"cancelled_bookings"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AvailableSpots clamps at zero so an over-committed ledger never reports
// negative capacity.
func (l *CapacityLedger) AvailableSpots(maxGroup int) int {
	spots := maxGroup - l.ConfirmedBookings
	if spots < 0 {
		return 0
	}
	return spots
}
