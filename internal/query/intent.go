package query

import "time"

// Intent is the best-effort draft produced by the free-text parser. Fields the
// parser cannot infer stay at their zero value.
type Intent struct {
	Destination  string
	StartDate    *time.Time
	EndDate      *time.Time
	DurationDays int
	Adults       int
	Children     int
	BudgetCents  *int64
	Interests    []string
}

// IntentParser turns free text into a draft Intent. Implementations must be
// total: never fail, omit what they cannot infer. The linguistic model behind
// it lives outside this service.
type IntentParser interface {
	Parse(text string) Intent
}

// NopIntentParser infers nothing. Used when no parser collaborator is wired.
type NopIntentParser struct{}

func (NopIntentParser) Parse(string) Intent { return Intent{} }
