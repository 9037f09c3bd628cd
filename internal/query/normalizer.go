package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Normalizer turns raw query-string input into a canonical SearchQuery. It is
// deliberately lenient: malformed values are dropped, unknown keys ignored,
// unknown sort keys fall back to the default. It never fails.
type Normalizer struct {
	Parser       IntentParser
	DefaultLimit int
	MaxLimit     int
}

func NewNormalizer(parser IntentParser, defaultLimit, maxLimit int) *Normalizer {
	if parser == nil {
		parser = NopIntentParser{}
	}
	if defaultLimit < 1 {
		defaultLimit = 20
	}
	if maxLimit < defaultLimit {
		maxLimit = 100
	}
	return &Normalizer{Parser: parser, DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

// Normalize parses the structured query string, runs the intent parser over
// the free-text term, and merges the two. Structured values always win: an
// explicit filter edit overrides anything inferred from text.
func (n *Normalizer) Normalize(values url.Values) SearchQuery {
	q := SearchQuery{
		SortBy: parseSortKey(values.Get("sortBy")),
		Page:   parsePage(values.Get("page")),
		Limit:  n.parseLimit(values.Get("limit")),
	}

	q.FreeText = strings.TrimSpace(values.Get("search"))

	q.Cities = parseList(values, "city", "cities")
	q.Countries = parseList(values, "country", "countries")
	q.Categories = parseList(values, "category", "categories")
	q.Languages = parseList(values, "language", "languages")
	q.TravelStyles = parseList(values, "travelStyle", "travelStyles")
	q.Accessibility = parseList(values, "accessibility")
	q.Tags = parseList(values, "tag", "tags")

	q.MinPriceCents = parsePriceCents(values.Get("minPrice"))
	q.MaxPriceCents = parsePriceCents(values.Get("maxPrice"))

	q.DurationBuckets = parseDurationBuckets(values)
	q.GroupSizeBuckets = parseGroupSizeBuckets(values)

	q.InstantBook = parseBoolPtr(values.Get("instantBook"))
	q.IsDropIn = parseBoolPtr(values.Get("isDropIn"))
	q.IsEarlyBird = parseBoolPtr(values.Get("isEarlyBird"))
	q.PayWhatYouWant = parseBoolPtr(values.Get("payWhatYouWant"))

	q.MinHostRating = parseRating(values.Get("minHostRating"))

	if hc, ok := parseIntField(values.Get("headcount")); ok {
		q.Headcount = hc
	}

	q.StartDate = parseDate(values.Get("startDate"))
	q.EndDate = parseDate(values.Get("endDate"))

	if q.FreeText != "" {
		n.mergeIntent(&q, n.Parser.Parse(q.FreeText))
	}

	return q
}

// mergeIntent fills gaps in the structured query from the parsed draft.
// A field already set from the query string is never overwritten.
func (n *Normalizer) mergeIntent(q *SearchQuery, in Intent) {
	if in.Destination != "" && len(q.Cities) == 0 && len(q.Countries) == 0 {
		q.Destination = in.Destination
	}
	if q.StartDate == nil && in.StartDate != nil {
		q.StartDate = in.StartDate
	}
	if q.EndDate == nil && in.EndDate != nil {
		q.EndDate = in.EndDate
	}
	if q.MaxPriceCents == nil && in.BudgetCents != nil {
		q.MaxPriceCents = in.BudgetCents
	}
	if len(q.TravelStyles) == 0 && len(in.Interests) > 0 {
		q.TravelStyles = append(q.TravelStyles, in.Interests...)
	}
	if q.Headcount == 0 && in.Adults+in.Children > 0 {
		q.Headcount = in.Adults + in.Children
	}
}

func parseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortPriceLow, SortPriceHigh, SortSpotsLeft, SortStartingSoon, SortRating, SortCompatible:
		return SortKey(raw)
	default:
		return SortCompatible
	}
}

func parsePage(raw string) int {
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
		return n
	}
	return 1
}

func (n *Normalizer) parseLimit(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return n.DefaultLimit
	}
	if v > n.MaxLimit {
		return n.MaxLimit
	}
	return v
}

// parseList gathers values across singular/plural keys and repeated params,
// splitting comma-separated entries.
func parseList(values url.Values, keys ...string) []string {
	var out []string
	for _, key := range keys {
		for _, raw := range values[key] {
			for _, part := range strings.Split(raw, ",") {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// parsePriceCents reads a price in whole currency units and converts to cents.
func parsePriceCents(raw string) *int64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return nil
	}
	cents := int64(f * 100)
	return &cents
}

func parseDurationBuckets(values url.Values) []DurationBucket {
	seen := map[DurationBucket]bool{}
	var out []DurationBucket
	add := func(b DurationBucket) {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}

	for _, raw := range parseList(values, "duration", "durations") {
		switch DurationBucket(raw) {
		case DurationShort, DurationMedium, DurationLong:
			add(DurationBucket(raw))
		}
	}

	// Numeric minDuration/maxDuration (hours) select every bucket their range
	// overlaps.
	minH, hasMin := parseIntField(values.Get("minDuration"))
	maxH, hasMax := parseIntField(values.Get("maxDuration"))
	if hasMin || hasMax {
		if !hasMin {
			minH = 0
		}
		if !hasMax {
			maxH = 1<<31 - 1
		}
		if minH <= 2 && maxH >= 0 {
			add(DurationShort)
		}
		if minH <= 4 && maxH > 2 {
			add(DurationMedium)
		}
		if maxH > 4 {
			add(DurationLong)
		}
	}

	return out
}

func parseGroupSizeBuckets(values url.Values) []GroupSizeBucket {
	seen := map[GroupSizeBucket]bool{}
	var out []GroupSizeBucket
	add := func(b GroupSizeBucket) {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}

	for _, raw := range parseList(values, "groupSize", "groupSizes") {
		switch GroupSizeBucket(raw) {
		case GroupSmall, GroupMedium, GroupLarge:
			add(GroupSizeBucket(raw))
		}
	}

	minG, hasMin := parseIntField(values.Get("minGroup"))
	maxG, hasMax := parseIntField(values.Get("maxGroup"))
	if hasMin || hasMax {
		if !hasMin {
			minG = 0
		}
		if !hasMax {
			maxG = 1<<31 - 1
		}
		if minG <= 8 && maxG >= 1 {
			add(GroupSmall)
		}
		if minG <= 15 && maxG > 8 {
			add(GroupMedium)
		}
		if maxG > 15 {
			add(GroupLarge)
		}
	}

	return out
}

func parseIntField(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseBoolPtr(raw string) *bool {
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

func parseRating(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f > 5 {
		return nil
	}
	return &f
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
