package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/roamly/discovery-service/internal/dto"
	"github.com/roamly/discovery-service/internal/store"
)

// SavedHandler exposes the per-session recent-search history and wishlist.
// Both live behind injected store interfaces so the discovery core stays free
// of storage concerns.
type SavedHandler struct {
	recents  store.RecentSearches
	wishlist store.Wishlist
}

func NewSavedHandler(recents store.RecentSearches, wishlist store.Wishlist) *SavedHandler {
	return &SavedHandler{recents: recents, wishlist: wishlist}
}

func (h *SavedHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/searches/recent", h.ListRecentSearches)
	e.DELETE("/api/v1/searches/recent", h.ClearRecentSearches)

	e.GET("/api/v1/wishlist", h.ListWishlist)
	e.POST("/api/v1/wishlist", h.AddToWishlist)
	e.DELETE("/api/v1/wishlist/:tourId", h.RemoveFromWishlist)
}

func sessionID(c echo.Context) (string, error) {
	id := c.Request().Header.Get(HeaderSessionID)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "X-Session-ID header is required")
	}
	return id, nil
}

func (h *SavedHandler) ListRecentSearches(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}

	terms, err := h.recents.List(c.Request().Context(), sid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if terms == nil {
		terms = []string{}
	}
	return c.JSON(http.StatusOK, terms)
}

func (h *SavedHandler) ClearRecentSearches(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}

	if err := h.recents.Clear(c.Request().Context(), sid); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SavedHandler) ListWishlist(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}

	ids, err := h.wishlist.List(c.Request().Context(), sid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if ids == nil {
		ids = []uint{}
	}
	return c.JSON(http.StatusOK, ids)
}

func (h *SavedHandler) AddToWishlist(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}

	var req dto.WishlistAddRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.TourID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "tour_id is required")
	}

	if err := h.wishlist.Add(c.Request().Context(), sid, req.TourID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusCreated)
}

func (h *SavedHandler) RemoveFromWishlist(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}

	tourID, err := strconv.ParseUint(c.Param("tourId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	if err := h.wishlist.Remove(c.Request().Context(), sid, uint(tourID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
