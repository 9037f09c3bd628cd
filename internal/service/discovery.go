package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/roamly/discovery-service/internal/models"
	"github.com/roamly/discovery-service/internal/query"
	"github.com/roamly/discovery-service/internal/repository"
)

// DiscoveryService runs the full search pipeline: snapshot fetch, deal-state
// derivation, facet filtering, ranking and pagination. The pipeline itself is
// a pure transformation; the only suspension point is the snapshot fetch.
type DiscoveryService interface {
	Search(ctx context.Context, q query.SearchQuery) ([]RankedTour, Pagination, error)
}

type discoveryService struct {
	tours   repository.TourRepository
	ledgers repository.LedgerRepository
	deriver *DealStateDeriver
	clock   Clock
}

func NewDiscoveryService(tours repository.TourRepository, ledgers repository.LedgerRepository, deriver *DealStateDeriver, clock Clock) DiscoveryService {
	if clock == nil {
		clock = SystemClock()
	}
	return &discoveryService{tours: tours, ledgers: ledgers, deriver: deriver, clock: clock}
}

func (s *discoveryService) Search(ctx context.Context, q query.SearchQuery) ([]RankedTour, Pagination, error) {
	now := s.clock.Now()

	tours, err := s.tours.FindPublished(ctx)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	ids := make([]uint, len(tours))
	for i, t := range tours {
		ids[i] = t.ID
	}

	ledgers, err := s.ledgers.FindFutureByTours(ctx, ids, now)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	type ledgerKey struct {
		tourID uint
		start  int64
	}
	byStart := make(map[ledgerKey]models.CapacityLedger, len(ledgers))
	for _, l := range ledgers {
		byStart[ledgerKey{l.TourID, l.StartsAt.Unix()}] = l
	}

	candidates := make([]RankedTour, 0, len(tours))
	for _, t := range tours {
		var ledger *models.CapacityLedger
		if start, ok := t.EarliestFutureStart(now); ok {
			if l, found := byStart[ledgerKey{t.ID, start.Unix()}]; found {
				ledger = &l
			}
		}
		candidates = append(candidates, s.deriver.Derive(t, ledger, now))
	}

	filtered := FilterTours(candidates, q)
	RankTours(filtered, q.SortBy, now)
	items, meta := Paginate(filtered, q.Page, q.Limit)

	return items, meta, nil
}

// Session serializes interactive search-as-you-type requests. Each Search
// bumps a generation token; a fetch that finishes after a newer query was
// issued is discarded rather than applied, so results always reflect the
// last-issued query.
type Session struct {
	svc DiscoveryService
	gen atomic.Uint64
}

func NewSession(svc DiscoveryService) *Session {
	return &Session{svc: svc}
}

func (s *Session) Search(ctx context.Context, q query.SearchQuery) ([]RankedTour, Pagination, error) {
	token := s.gen.Add(1)

	items, meta, err := s.svc.Search(ctx, q)
	if err != nil {
		return nil, Pagination{}, err
	}
	if token != s.gen.Load() {
		return nil, Pagination{}, ErrStaleQuery
	}
	return items, meta, nil
}
