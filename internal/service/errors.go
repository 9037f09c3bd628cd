package service

import "errors"

var (
	ErrTourNotFound          = errors.New("tour not found")
	ErrInvalidHeadcount      = errors.New("requested headcount must be at least 1")
	ErrHeadcountBelowMinimum = errors.New("requested headcount is below the tour's minimum group size")
	ErrCatalogUnavailable    = errors.New("catalog is unavailable")

	// ErrStaleQuery marks a search result that was superseded by a newer query
	// on the same session. It never reaches HTTP callers.
	ErrStaleQuery = errors.New("query superseded by a newer one")
)
