package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/roamly/discovery-service/internal/dto"
	"github.com/roamly/discovery-service/internal/query"
	"github.com/roamly/discovery-service/internal/service"
	"github.com/roamly/discovery-service/internal/store"
)

// HeaderSessionID carries the anonymous client session used for recent
// searches and wishlists.
const HeaderSessionID = "X-Session-ID"

type DiscoveryHandler struct {
	svc        service.DiscoveryService
	normalizer *query.Normalizer
	recents    store.RecentSearches
}

func NewDiscoveryHandler(svc service.DiscoveryService, normalizer *query.Normalizer, recents store.RecentSearches) *DiscoveryHandler {
	return &DiscoveryHandler{svc: svc, normalizer: normalizer, recents: recents}
}

func (h *DiscoveryHandler) RegisterRoutes(e *echo.Echo) {
	tours := e.Group("/api/v1/tours")
	tours.GET("", h.ListTours)          // bare array variant
	tours.GET("/search", h.SearchTours) // envelope variant
}

// SearchTours returns {items, pagination}.
func (h *DiscoveryHandler) SearchTours(c echo.Context) error {
	items, meta, err := h.search(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.SearchResponse{
		Items:      dto.ToTourResults(items),
		Pagination: meta,
	})
}

// ListTours returns the ranked page as a bare array. Some call sites consume
// the list without pagination metadata; both shapes run the same pipeline.
func (h *DiscoveryHandler) ListTours(c echo.Context) error {
	items, _, err := h.search(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToTourResults(items))
}

func (h *DiscoveryHandler) search(c echo.Context) ([]service.RankedTour, service.Pagination, error) {
	q := h.normalizer.Normalize(c.QueryParams())

	h.recordSearch(c, q.FreeText)

	items, meta, err := h.svc.Search(c.Request().Context(), q)
	if err != nil {
		if errors.Is(err, service.ErrCatalogUnavailable) {
			return nil, service.Pagination{}, echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return nil, service.Pagination{}, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return items, meta, nil
}

// recordSearch appends the term to the session history. Best-effort: history
// must never fail a search.
func (h *DiscoveryHandler) recordSearch(c echo.Context, term string) {
	if h.recents == nil || term == "" {
		return
	}
	sessionID := c.Request().Header.Get(HeaderSessionID)
	if sessionID == "" {
		return
	}
	if err := h.recents.Add(c.Request().Context(), sessionID, term); err != nil {
		log.Printf("[DiscoveryHandler] failed to record search: %v", err)
	}
}
