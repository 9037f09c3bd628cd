package query

import "time"

type SortKey string

const (
	SortPriceLow     SortKey = "price_low"
	SortPriceHigh    SortKey = "price_high"
	SortSpotsLeft    SortKey = "spots_left"
	SortStartingSoon SortKey = "starting_soon"
	SortRating       SortKey = "rating"
	SortCompatible   SortKey = "compatible"
)

type DurationBucket string

const (
	DurationShort  DurationBucket = "0-2"
	DurationMedium DurationBucket = "2-4"
	DurationLong   DurationBucket = "4+"
)

type GroupSizeBucket string

const (
	GroupSmall  GroupSizeBucket = "small"  // maxGroup <= 8
	GroupMedium GroupSizeBucket = "medium" // 9-15
	GroupLarge  GroupSizeBucket = "large"  // > 15
)

// SearchQuery is the canonical, fully-normalized discovery query. A zero value
// matches everything: every facet is optional and nil/empty means "pass".
type SearchQuery struct {
	FreeText    string
	Destination string // inferred from free text, substring-matched by the location facet

	Cities     []string
	Countries  []string
	Categories []string

	MinPriceCents *int64
	MaxPriceCents *int64

	DurationBuckets  []DurationBucket
	GroupSizeBuckets []GroupSizeBucket

	Languages     []string
	TravelStyles  []string
	Accessibility []string
	Tags          []string

	InstantBook    *bool
	IsDropIn       *bool
	IsEarlyBird    *bool
	PayWhatYouWant *bool

	MinHostRating *float64

	StartDate *time.Time
	EndDate   *time.Time

	// Headcount is a party-size hint carried from the intent parser. It is not
	// a facet; availability checks use it as a default.
	Headcount int

	SortBy SortKey
	Page   int
	Limit  int
}

// DurationBucketFor maps a tour duration to its bucket using whole hours,
// rounded up.
func DurationBucketFor(durationMins int) DurationBucket {
	hours := (durationMins + 59) / 60
	switch {
	case hours <= 2:
		return DurationShort
	case hours <= 4:
		return DurationMedium
	default:
		return DurationLong
	}
}

// GroupSizeBucketFor maps a tour's maximum group size to its bucket.
func GroupSizeBucketFor(maxGroup int) GroupSizeBucket {
	switch {
	case maxGroup <= 8:
		return GroupSmall
	case maxGroup <= 15:
		return GroupMedium
	default:
		return GroupLarge
	}
}
