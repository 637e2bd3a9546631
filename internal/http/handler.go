// Package http provides the Gin handlers and router for the taxi data service.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/taxi-data-service/internal/domain/dto"
	"github.com/guttosm/taxi-data-service/internal/service"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// Handler provides HTTP handlers for trip routes.
type Handler struct {
	trips service.TripService
}

// NewHandler creates a new Handler instance.
func NewHandler(trips service.TripService) *Handler {
	return &Handler{trips: trips}
}

// CreateTrip handles POST /trips/.
// Returns 200 with the created record, or 400 on validation failure.
func (h *Handler) CreateTrip(c *gin.Context) {
	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewError("Invalid request body: "+err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewError(err.Error()))
		return
	}

	trip, err := h.trips.CreateTrip(c.Request.Context(), req.ToCreate())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// ListTrips handles GET /trips/?skip=&limit=.
func (h *Handler) ListTrips(c *gin.Context) {
	skip, ok := queryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", defaultListLimit)
	if !ok {
		return
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}

	trips, err := h.trips.ListTrips(c.Request.Context(), skip, limit)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GetTrip handles GET /trips/{id}.
func (h *Handler) GetTrip(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}

	trip, err := h.trips.GetTrip(c.Request.Context(), id)
	if err != nil {
		h.tripError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{id}. The body is a partial update: absent
// fields leave stored values untouched.
func (h *Handler) UpdateTrip(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}

	var req dto.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewError("Invalid request body: "+err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewError(err.Error()))
		return
	}

	trip, err := h.trips.UpdateTrip(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		h.tripError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DeleteTrip handles DELETE /trips/{id}. Returns the deleted record.
func (h *Handler) DeleteTrip(c *gin.Context) {
	id, ok := tripID(c)
	if !ok {
		return
	}

	trip, err := h.trips.DeleteTrip(c.Request.Context(), id)
	if err != nil {
		h.tripError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// PassengerStats handles GET /trips/stats/by-passenger-count.
//
// gin's router cannot register a static "stats" segment alongside the ":id"
// parameter at the same depth, so this handler is bound to
// "/:id/by-passenger-count" and requires the parameter to read "stats".
func (h *Handler) PassengerStats(c *gin.Context) {
	if c.Param("id") != "stats" {
		c.JSON(http.StatusNotFound, dto.NewError("Not found"))
		return
	}

	stats, err := h.trips.PassengerStats(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// tripID parses the :id path parameter, writing a 400 response on failure.
func tripID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewError("Invalid trip id"))
		return 0, false
	}
	return id, true
}

// queryInt parses an integer query parameter, writing a 400 response on failure.
func queryInt(c *gin.Context, name string, defaultValue int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewError("Invalid query parameter: "+name))
		return 0, false
	}
	return v, true
}

// tripError maps service errors on id-scoped operations to responses.
func (h *Handler) tripError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrTripNotFound) {
		c.JSON(http.StatusNotFound, dto.NewError(dto.DetailTripNotFound))
		return
	}
	h.serverError(c, err)
}

// serverError records the error for the logging middleware and writes a 500.
func (h *Handler) serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, dto.NewError(dto.DetailInternalError))
}
