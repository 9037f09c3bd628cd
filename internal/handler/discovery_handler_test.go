package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/roamly/discovery-service/internal/dto"
	"github.com/roamly/discovery-service/internal/models"
	"github.com/roamly/discovery-service/internal/query"
	"github.com/roamly/discovery-service/internal/service"
	"github.com/stretchr/testify/assert"
)

// --- Mock DiscoveryService ---

type mockDiscovery struct {
	searchFn func(ctx context.Context, q query.SearchQuery) ([]service.RankedTour, service.Pagination, error)
	lastQ    query.SearchQuery
}

func (m *mockDiscovery) Search(ctx context.Context, q query.SearchQuery) ([]service.RankedTour, service.Pagination, error) {
	m.lastQ = q
	return m.searchFn(ctx, q)
}

func testNormalizer() *query.Normalizer {
	return query.NewNormalizer(query.NopIntentParser{}, 20, 100)
}

func sampleResults() ([]service.RankedTour, service.Pagination) {
	items := []service.RankedTour{
		{
			Tour: models.Tour{
				ID: 1, Title: "Colosseum underground", City: "Rome", Country: "Italy",
				BasePriceCents: 4500, MaxGroup: 12, Status: models.StatusPublished,
			},
			CurrentPriceCents:  4500,
			AvailableSpots:     3,
			ProgressPercentage: 75.0,
			IsDropIn:           true,
			CompositeScore:     1.725,
		},
	}
	return items, service.Pagination{Page: 1, Limit: 20, Total: 1, Pages: 1}
}

func TestSearchTours_EnvelopeShape(t *testing.T) {
	items, meta := sampleResults()
	svc := &mockDiscovery{
		searchFn: func(ctx context.Context, q query.SearchQuery) ([]service.RankedTour, service.Pagination, error) {
			return items, meta, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tours/search?city=Rome&minPrice=40", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewDiscoveryHandler(svc, testNormalizer(), nil)
	err := h.SearchTours(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SearchResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, uint(1), resp.Items[0].ID)
	assert.Equal(t, 3, resp.Items[0].SpotsLeft)
	assert.True(t, resp.Items[0].IsAvailable)
	assert.Equal(t, service.Pagination{Page: 1, Limit: 20, Total: 1, Pages: 1}, resp.Pagination)

	// The handler passed the normalized query through.
	assert.Equal(t, []string{"Rome"}, svc.lastQ.Cities)
	assert.Equal(t, int64(4000), *svc.lastQ.MinPriceCents)
}

func TestListTours_BareArrayShape(t *testing.T) {
	items, meta := sampleResults()
	svc := &mockDiscovery{
		searchFn: func(ctx context.Context, q query.SearchQuery) ([]service.RankedTour, service.Pagination, error) {
			return items, meta, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tours?sortBy=price_low", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewDiscoveryHandler(svc, testNormalizer(), nil)
	err := h.ListTours(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.TourResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "Colosseum underground", resp[0].Title)
	assert.Equal(t, query.SortPriceLow, svc.lastQ.SortBy)
}

func TestSearchTours_CatalogDown(t *testing.T) {
	svc := &mockDiscovery{
		searchFn: func(ctx context.Context, q query.SearchQuery) ([]service.RankedTour, service.Pagination, error) {
			return nil, service.Pagination{}, service.ErrCatalogUnavailable
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tours/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewDiscoveryHandler(svc, testNormalizer(), nil)
	err := h.SearchTours(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, he.Code)
}

// --- Recent-search recording ---

type recordingRecents struct {
	added []string
}

func (r *recordingRecents) List(ctx context.Context, sessionID string) ([]string, error) {
	return r.added, nil
}
func (r *recordingRecents) Add(ctx context.Context, sessionID, term string) error {
	r.added = append(r.added, term)
	return nil
}
func (r *recordingRecents) Clear(ctx context.Context, sessionID string) error {
	r.added = nil
	return nil
}

func TestSearchTours_RecordsRecentSearchForSession(t *testing.T) {
	items, meta := sampleResults()
	svc := &mockDiscovery{
		searchFn: func(ctx context.Context, q query.SearchQuery) ([]service.RankedTour, service.Pagination, error) {
			return items, meta, nil
		},
	}
	recents := &recordingRecents{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tours/search?search=rome+food", nil)
	req.Header.Set(HeaderSessionID, "session-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewDiscoveryHandler(svc, testNormalizer(), recents)
	assert.NoError(t, h.SearchTours(c))
	assert.Equal(t, []string{"rome food"}, recents.added)
}

func TestSearchTours_NoSessionNoRecording(t *testing.T) {
	items, meta := sampleResults()
	svc := &mockDiscovery{
		searchFn: func(ctx context.Context, q query.SearchQuery) ([]service.RankedTour, service.Pagination, error) {
			return items, meta, nil
		},
	}
	recents := &recordingRecents{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tours/search?search=rome", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewDiscoveryHandler(svc, testNormalizer(), recents)
	assert.NoError(t, h.SearchTours(c))
	assert.Empty(t, recents.added)
}
