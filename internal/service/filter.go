package service

import (
	"strings"
	"time"

	"github.com/roamly/discovery-service/internal/models"
	"github.com/roamly/discovery-service/internal/query"
)

// FilterTours applies every active facet of q to the candidates. Absent
// facets pass; each candidate is dropped at its first failing facet.
func FilterTours(candidates []RankedTour, q query.SearchQuery) []RankedTour {
	out := make([]RankedTour, 0, len(candidates))
	for _, c := range candidates {
		if matches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c RankedTour, q query.SearchQuery) bool {
	t := c.Tour

	// Drafts and paused tours never surface, regardless of facets.
	if t.Status != models.StatusPublished {
		return false
	}

	if !matchesLocation(t, q) {
		return false
	}

	if len(q.Categories) > 0 && !containsFold(q.Categories, t.Category) {
		return false
	}

	if q.MinPriceCents != nil && c.CurrentPriceCents < *q.MinPriceCents {
		return false
	}
	if q.MaxPriceCents != nil && c.CurrentPriceCents > *q.MaxPriceCents {
		return false
	}

	if len(q.DurationBuckets) > 0 && !containsDuration(q.DurationBuckets, query.DurationBucketFor(t.DurationMins)) {
		return false
	}

	if len(q.GroupSizeBuckets) > 0 && !containsGroupSize(q.GroupSizeBuckets, query.GroupSizeBucketFor(t.MaxGroup)) {
		return false
	}

	if len(q.Languages) > 0 && !intersectsFold(q.Languages, t.Languages) {
		return false
	}
	if len(q.TravelStyles) > 0 && !intersectsFold(q.TravelStyles, t.TravelStyles) {
		return false
	}
	if len(q.Tags) > 0 && !intersectsFold(q.Tags, t.Tags) {
		return false
	}

	// Accessibility is a subset requirement: every requested tag must be
	// offered, not just one.
	for _, want := range q.Accessibility {
		if !containsFold(t.Accessibility, want) {
			return false
		}
	}

	if q.InstantBook != nil && t.InstantBook != *q.InstantBook {
		return false
	}
	if q.PayWhatYouWant != nil && t.PayWhatYouWant != *q.PayWhatYouWant {
		return false
	}
	if q.IsDropIn != nil && c.IsDropIn != *q.IsDropIn {
		return false
	}
	if q.IsEarlyBird != nil && c.IsEarlyBird != *q.IsEarlyBird {
		return false
	}

	if q.MinHostRating != nil && t.HostRating < *q.MinHostRating {
		return false
	}

	if !matchesDateRange(t, q) {
		return false
	}

	return true
}

func matchesLocation(t models.Tour, q query.SearchQuery) bool {
	if len(q.Cities) > 0 && !containsFold(q.Cities, t.City) {
		return false
	}
	if len(q.Countries) > 0 && !containsFold(q.Countries, t.Country) {
		return false
	}
	if q.Destination != "" {
		dest := strings.ToLower(q.Destination)
		if !strings.Contains(strings.ToLower(t.Title), dest) &&
			!strings.Contains(strings.ToLower(t.City), dest) &&
			!strings.Contains(strings.ToLower(t.Country), dest) {
			return false
		}
	}
	return true
}

func matchesDateRange(t models.Tour, q query.SearchQuery) bool {
	if q.StartDate == nil && q.EndDate == nil {
		return true
	}
	for _, st := range t.StartTimes {
		if q.StartDate != nil && st.StartsAt.Before(*q.StartDate) {
			continue
		}
		if q.EndDate != nil && st.StartsAt.After(q.EndDate.Add(24*time.Hour)) {
			continue
		}
		return true
	}
	return false
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func intersectsFold(requested, offered []string) bool {
	for _, r := range requested {
		if containsFold(offered, r) {
			return true
		}
	}
	return false
}

func containsDuration(set []query.DurationBucket, b query.DurationBucket) bool {
	for _, s := range set {
		if s == b {
			return true
		}
	}
	return false
}

func containsGroupSize(set []query.GroupSizeBucket, b query.GroupSizeBucket) bool {
	for _, s := range set {
		if s == b {
			return true
		}
	}
	return false
}
