package service

import (
	"sort"
	"time"

	"github.com/roamly/discovery-service/internal/query"
)

// RankTours orders the filtered list in place. The order is a deterministic
// total order: the primary key comes from sortBy, ties always break on
// ascending tour id so identical queries paginate identically.
func RankTours(tours []RankedTour, sortBy query.SortKey, now time.Time) {
	var less func(a, b RankedTour) bool

	switch sortBy {
	case query.SortPriceLow:
		less = func(a, b RankedTour) bool { return a.CurrentPriceCents < b.CurrentPriceCents }
	case query.SortPriceHigh:
		less = func(a, b RankedTour) bool { return a.CurrentPriceCents > b.CurrentPriceCents }
	case query.SortSpotsLeft:
		less = func(a, b RankedTour) bool { return a.AvailableSpots < b.AvailableSpots }
	case query.SortStartingSoon:
		less = startingSoonLess(now)
	case query.SortRating:
		less = func(a, b RankedTour) bool { return a.Tour.HostRating > b.Tour.HostRating }
	default: // compatible
		less = func(a, b RankedTour) bool { return a.CompositeScore > b.CompositeScore }
	}

	sort.Slice(tours, func(i, j int) bool {
		a, b := tours[i], tours[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.Tour.ID < b.Tour.ID
	})
}

// startingSoonLess sorts by earliest upcoming start; tours with nothing
// scheduled sort last.
func startingSoonLess(now time.Time) func(a, b RankedTour) bool {
	return func(a, b RankedTour) bool {
		sa, oka := a.Tour.EarliestFutureStart(now)
		sb, okb := b.Tour.EarliestFutureStart(now)
		if oka != okb {
			return oka
		}
		if !oka {
			return false
		}
		return sa.Before(sb)
	}
}
