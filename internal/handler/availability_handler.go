package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/roamly/discovery-service/internal/dto"
	"github.com/roamly/discovery-service/internal/service"
)

type AvailabilityHandler struct {
	svc service.AvailabilityService
}

func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

func (h *AvailabilityHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/tours/:id/availability", h.GetAvailability)
	e.POST("/api/v1/tours/availability", h.CheckAvailability)
}

// GetAvailability answers the query-parameter variant:
// /tours/:id/availability?headcount=3&date=2026-09-12
func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
	tourID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	headcount, err := strconv.Atoi(c.QueryParam("headcount"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "headcount must be a number")
	}

	date, err := parseDay(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	return h.respond(c, uint(tourID), headcount, date)
}

// CheckAvailability answers the JSON-body variant.
func (h *AvailabilityHandler) CheckAvailability(c echo.Context) error {
	var req dto.AvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.TourID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "tour_id is required")
	}

	date, err := parseDay(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	return h.respond(c, req.TourID, req.RequestedHeadcount, date)
}

func (h *AvailabilityHandler) respond(c echo.Context, tourID uint, headcount int, date time.Time) error {
	avail, err := h.svc.CheckAvailability(c.Request().Context(), tourID, headcount, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidHeadcount), errors.Is(err, service.ErrHeadcountBelowMinimum):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrTourNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCatalogUnavailable):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToAvailabilityResponse(avail))
}

func parseDay(raw string) (time.Time, error) {
	if raw == "" {
		// No date means "the next start"; today is the earliest day that can hold it.
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}
