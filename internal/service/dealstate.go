package service

import (
	"math"
	"time"

	"github.com/roamly/discovery-service/internal/models"
)

// RankedTour is a tour annotated with the per-request derived state the
// filter, ranking and response layers work on.
type RankedTour struct {
	Tour               models.Tour
	CurrentPriceCents  int64
	AvailableSpots     int
	ProgressPercentage float64
	IsDropIn           bool
	IsEarlyBird        bool
	CompositeScore     float64
}

// DealStateDeriver computes the ephemeral display flags for a tour from the
// current time and its capacity snapshot. Output is time-dependent and must be
// recomputed on every request.
type DealStateDeriver struct {
	DropInWindow    time.Duration
	EarlyBirdWindow time.Duration
}

// Derive builds the RankedTour for one candidate. ledger may be nil when no
// booking attempt has been recorded yet; that counts as zero confirmed.
func (d *DealStateDeriver) Derive(tour models.Tour, ledger *models.CapacityLedger, now time.Time) RankedTour {
	confirmed := 0
	if ledger != nil {
		confirmed = ledger.ConfirmedBookings
	}

	spots := tour.MaxGroup - confirmed
	if spots < 0 {
		spots = 0
	}

	rt := RankedTour{
		Tour:               tour,
		CurrentPriceCents:  tour.CurrentPrice(),
		AvailableSpots:     spots,
		ProgressPercentage: progressPercentage(confirmed, tour.MaxGroup),
	}

	if start, ok := tour.EarliestFutureStart(now); ok {
		until := start.Sub(now)
		rt.IsDropIn = until <= d.DropInWindow && spots > 0
		rt.IsEarlyBird = until >= d.EarlyBirdWindow && tour.EarlyBirdEligible
	}

	rt.CompositeScore = compositeScore(tour.HostRating, spots, tour.MaxGroup)

	return rt
}

// progressPercentage is the share of capacity already confirmed, one decimal,
// clamped to [0, 100].
func progressPercentage(confirmed, maxGroup int) float64 {
	if maxGroup <= 0 {
		return 0
	}
	pct := float64(confirmed) / float64(maxGroup) * 100
	pct = math.Round(pct*10) / 10
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// compositeScore blends the 0-5 host rating with the 0-1 fill ratio. The
// rating is intentionally left on its own scale to match the ranking behavior
// this service replaces.
func compositeScore(hostRating float64, availableSpots, maxGroup int) float64 {
	fillRatio := 0.0
	if maxGroup > 0 {
		fillRatio = 1 - float64(availableSpots)/float64(maxGroup)
	}
	return hostRating*0.3 + fillRatio*0.7
}
