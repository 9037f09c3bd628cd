package service

import (
	"testing"
	"time"

	"github.com/roamly/discovery-service/internal/models"
	"github.com/roamly/discovery-service/internal/query"
	"github.com/stretchr/testify/assert"
)

func ids(tours []RankedTour) []uint {
	out := make([]uint, len(tours))
	for i, rt := range tours {
		out[i] = rt.Tour.ID
	}
	return out
}

func TestRank_PriceLowAndHigh(t *testing.T) {
	now := time.Now()
	tours := []RankedTour{
		{Tour: models.Tour{ID: 1}, CurrentPriceCents: 5000},
		{Tour: models.Tour{ID: 2}, CurrentPriceCents: 3000},
		{Tour: models.Tour{ID: 3}, CurrentPriceCents: 7000},
	}

	RankTours(tours, query.SortPriceLow, now)
	assert.Equal(t, []uint{2, 1, 3}, ids(tours))

	RankTours(tours, query.SortPriceHigh, now)
	assert.Equal(t, []uint{3, 1, 2}, ids(tours))
}

// spots_left orders ascending, ties broken by ascending id.
func TestRank_SpotsLeftWithTies(t *testing.T) {
	tours := []RankedTour{
		{Tour: models.Tour{ID: 4}, AvailableSpots: 2},
		{Tour: models.Tour{ID: 1}, AvailableSpots: 5},
		{Tour: models.Tour{ID: 3}, AvailableSpots: 2},
		{Tour: models.Tour{ID: 2}, AvailableSpots: 8},
	}

	RankTours(tours, query.SortSpotsLeft, time.Now())
	assert.Equal(t, []uint{3, 4, 1, 2}, ids(tours))
}

func TestRank_StartingSoonPutsUnscheduledLast(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	soon := models.Tour{ID: 1, StartTimes: []models.TourStartTime{
		{StartsAt: now.Add(2 * time.Hour)},
	}}
	later := models.Tour{ID: 2, StartTimes: []models.TourStartTime{
		{StartsAt: now.Add(48 * time.Hour)},
	}}
	onlyPast := models.Tour{ID: 3, StartTimes: []models.TourStartTime{
		{StartsAt: now.Add(-2 * time.Hour)},
	}}
	unscheduled := models.Tour{ID: 4}

	tours := []RankedTour{{Tour: unscheduled}, {Tour: later}, {Tour: onlyPast}, {Tour: soon}}
	RankTours(tours, query.SortStartingSoon, now)

	assert.Equal(t, []uint{1, 2, 3, 4}, ids(tours))
}

func TestRank_RatingDescending(t *testing.T) {
	tours := []RankedTour{
		{Tour: models.Tour{ID: 1, HostRating: 3.2}},
		{Tour: models.Tour{ID: 2, HostRating: 4.9}},
		{Tour: models.Tour{ID: 3, HostRating: 4.9}},
	}

	RankTours(tours, query.SortRating, time.Now())
	assert.Equal(t, []uint{2, 3, 1}, ids(tours))
}

func TestRank_CompatibleIsDefaultAndDeterministic(t *testing.T) {
	now := time.Now()
	build := func() []RankedTour {
		return []RankedTour{
			{Tour: models.Tour{ID: 3}, CompositeScore: 1.5},
			{Tour: models.Tour{ID: 1}, CompositeScore: 2.0},
			{Tour: models.Tour{ID: 2}, CompositeScore: 1.5},
		}
	}

	a := build()
	RankTours(a, query.SortCompatible, now)
	assert.Equal(t, []uint{1, 2, 3}, ids(a))

	// Identical inputs always produce the identical order.
	b := build()
	RankTours(b, "", now)
	assert.Equal(t, ids(a), ids(b))
}
