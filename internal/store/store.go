package store

import "context"

// RecentSearches keeps a per-session history of raw search terms, newest
// first. It backs the "recent searches" strip in the client and stays out of
// the discovery core, which only sees it as this interface.
type RecentSearches interface {
	List(ctx context.Context, sessionID string) ([]string, error)
	Add(ctx context.Context, sessionID, term string) error
	Clear(ctx context.Context, sessionID string) error
}

// Wishlist keeps a per-session set of saved tour ids.
type Wishlist interface {
	List(ctx context.Context, sessionID string) ([]uint, error)
	Add(ctx context.Context, sessionID string, tourID uint) error
	Remove(ctx context.Context, sessionID string, tourID uint) error
}
