// README: Trip handlers: generate, list, read, save, favourite, status, delete.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"trippo/internal/http/middleware"
	"trippo/internal/modules/itinerary"
	"trippo/internal/modules/trip"
	"trippo/internal/types"
)

type Planner interface {
	Create(ctx context.Context, session types.Session, req itinerary.TripRequest) (*trip.Trip, error)
}

type TripService interface {
	Get(ctx context.Context, owner, id string) (*trip.Trip, error)
	List(ctx context.Context, owner string, f trip.Filter) ([]trip.Trip, error)
	Save(ctx context.Context, owner, id, title string) (*trip.Trip, error)
	SetFavorite(ctx context.Context, owner, id string, favorite bool) (*trip.Trip, error)
	SetStatus(ctx context.Context, owner, id string, to trip.Status) (*trip.Trip, error)
	Delete(ctx context.Context, owner, id string) error
}

type TripHandler struct {
	planner Planner
	trips   TripService
}

func NewTripHandler(planner Planner, trips TripService) *TripHandler {
	return &TripHandler{planner: planner, trips: trips}
}

// tripRequestBody is the onboarding payload. Dates are "YYYY-MM-DD" or RFC 3339.
type tripRequestBody struct {
	Destination     string   `json:"destination"`
	StayingPeriod   int      `json:"staying_period"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Foods           []string `json:"foods"`
	Personalities   []string `json:"personalities"`
	TravelerName    string   `json:"traveler_name"`
	TravelerAge     int      `json:"traveler_age"`
	CurrentLocation string   `json:"current_location"`
}

func (b tripRequestBody) toRequest() (itinerary.TripRequest, bool) {
	start, okStart := parseDate(b.StartDate)
	end, okEnd := parseDate(b.EndDate)
	if !okStart || !okEnd {
		return itinerary.TripRequest{}, false
	}
	return itinerary.TripRequest{
		Destination:     b.Destination,
		StayingPeriod:   b.StayingPeriod,
		StartDate:       start,
		EndDate:         end,
		Foods:           b.Foods,
		Personalities:   b.Personalities,
		TravelerName:    b.TravelerName,
		TravelerAge:     b.TravelerAge,
		CurrentLocation: b.CurrentLocation,
	}, true
}

func parseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (h *TripHandler) Create(c *gin.Context) {
	var body tripRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req, ok := body.toRequest()
	if !ok {
		writeError(c, http.StatusBadRequest, "start_date and end_date must be YYYY-MM-DD")
		return
	}
	t, err := h.planner.Create(c.Request.Context(), middleware.CallerSession(c), req)
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, t)
}

func (h *TripHandler) List(c *gin.Context) {
	var f trip.Filter
	if v := c.Query("status"); v != "" {
		s, ok := trip.ParseStatus(v)
		if !ok {
			writeError(c, http.StatusBadRequest, "status must be upcoming or completed")
			return
		}
		f.Status = &s
	}
	var ok bool
	if f.Favorite, ok = boolQuery(c, "favorite"); !ok {
		writeError(c, http.StatusBadRequest, "favorite must be true or false")
		return
	}
	if f.Saved, ok = boolQuery(c, "saved"); !ok {
		writeError(c, http.StatusBadRequest, "saved must be true or false")
		return
	}

	trips, err := h.trips.List(c.Request.Context(), middleware.CallerUID(c), f)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": trips})
}

func (h *TripHandler) Get(c *gin.Context) {
	t, err := h.trips.Get(c.Request.Context(), middleware.CallerUID(c), c.Param("id"))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TripHandler) Save(c *gin.Context) {
	var body struct {
		Title string `json:"title"`
	}
	if !bindOptionalJSON(c, &body) {
		return
	}
	t, err := h.trips.Save(c.Request.Context(), middleware.CallerUID(c), c.Param("id"), body.Title)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TripHandler) SetFavorite(c *gin.Context) {
	var body struct {
		Favorite *bool `json:"favorite"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Favorite == nil {
		writeError(c, http.StatusBadRequest, "favorite is required")
		return
	}
	t, err := h.trips.SetFavorite(c.Request.Context(), middleware.CallerUID(c), c.Param("id"), *body.Favorite)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TripHandler) SetStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	t, err := h.trips.SetStatus(c.Request.Context(), middleware.CallerUID(c), c.Param("id"), trip.Status(body.Status))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TripHandler) Delete(c *gin.Context) {
	if err := h.trips.Delete(c.Request.Context(), middleware.CallerUID(c), c.Param("id")); err != nil {
		writeTripError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func boolQuery(c *gin.Context, key string) (*bool, bool) {
	v := c.Query(key)
	if v == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, false
	}
	return &b, true
}

// bindOptionalJSON accepts an empty body; it writes 400 and returns false on bad JSON.
func bindOptionalJSON(c *gin.Context, v any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(v); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}
