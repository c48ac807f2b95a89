// README: Handler tests: request decoding, status codes and error bodies.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trippo/internal/http/handlers"
	"trippo/internal/http/middleware"
	"trippo/internal/infra"
	"trippo/internal/modules/aiusage"
	"trippo/internal/modules/generation"
	"trippo/internal/modules/itinerary"
	"trippo/internal/modules/packing"
	"trippo/internal/modules/trip"
	"trippo/internal/types"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, raw string) (infra.Identity, error) {
	return infra.Identity{UID: "uid-" + raw}, nil
}

type mockPlanner struct {
	create func(ctx context.Context, s types.Session, req itinerary.TripRequest) (*trip.Trip, error)
}

func (m *mockPlanner) Create(ctx context.Context, s types.Session, req itinerary.TripRequest) (*trip.Trip, error) {
	return m.create(ctx, s, req)
}

// mockTrips implements handlers.TripService with per-test funcs.
type mockTrips struct {
	get         func(owner, id string) (*trip.Trip, error)
	list        func(owner string, f trip.Filter) ([]trip.Trip, error)
	save        func(owner, id, title string) (*trip.Trip, error)
	setFavorite func(owner, id string, fav bool) (*trip.Trip, error)
	setStatus   func(owner, id string, to trip.Status) (*trip.Trip, error)
	del         func(owner, id string) error
}

var _ handlers.TripService = (*mockTrips)(nil)

func (m *mockTrips) Get(_ context.Context, owner, id string) (*trip.Trip, error) {
	return m.get(owner, id)
}
func (m *mockTrips) List(_ context.Context, owner string, f trip.Filter) ([]trip.Trip, error) {
	return m.list(owner, f)
}
func (m *mockTrips) Save(_ context.Context, owner, id, title string) (*trip.Trip, error) {
	return m.save(owner, id, title)
}
func (m *mockTrips) SetFavorite(_ context.Context, owner, id string, fav bool) (*trip.Trip, error) {
	return m.setFavorite(owner, id, fav)
}
func (m *mockTrips) SetStatus(_ context.Context, owner, id string, to trip.Status) (*trip.Trip, error) {
	return m.setStatus(owner, id, to)
}
func (m *mockTrips) Delete(_ context.Context, owner, id string) error {
	return m.del(owner, id)
}

type mockPacking struct {
	get    func(owner, tripID string) (*packing.List, error)
	add    func(owner, tripID, text string) (*packing.List, error)
	toggle func(owner, tripID, itemID string) (*packing.List, error)
}

func (m *mockPacking) Get(_ context.Context, owner, tripID string) (*packing.List, error) {
	return m.get(owner, tripID)
}
func (m *mockPacking) Replace(context.Context, string, string, []packing.Item) (*packing.List, error) {
	return nil, packing.ErrBadRequest
}
func (m *mockPacking) AddItem(_ context.Context, owner, tripID, text string) (*packing.List, error) {
	return m.add(owner, tripID, text)
}
func (m *mockPacking) ToggleItem(_ context.Context, owner, tripID, itemID string) (*packing.List, error) {
	return m.toggle(owner, tripID, itemID)
}
func (m *mockPacking) RemoveItem(context.Context, string, string, string) (*packing.List, error) {
	return nil, packing.ErrNotFound
}
func (m *mockPacking) Reset(context.Context, string, string) error { return nil }

type mockUsage struct{}

func (mockUsage) Usage(_ context.Context, uid string) (aiusage.Usage, error) {
	return aiusage.Usage{Month: "2026-06", Limit: 20, Remaining: 7}, nil
}

func buildRouter(planner handlers.Planner, trips handlers.TripService, pk handlers.PackingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", middleware.Auth(stubVerifier{}))
	th := handlers.NewTripHandler(planner, trips)
	api.POST("/trips", th.Create)
	api.GET("/trips", th.List)
	api.GET("/trips/:id", th.Get)
	api.PATCH("/trips/:id/save", th.Save)
	api.PATCH("/trips/:id/favorite", th.SetFavorite)
	api.PATCH("/trips/:id/status", th.SetStatus)
	api.DELETE("/trips/:id", th.Delete)
	ph := handlers.NewPackingHandler(pk)
	api.GET("/trips/:id/packing-list", ph.Get)
	api.POST("/trips/:id/packing-list/items", ph.AddItem)
	api.PATCH("/trips/:id/packing-list/items/:itemId", ph.ToggleItem)
	api.GET("/usage", handlers.NewUsageHandler(mockUsage{}).Get)
	api.POST("/prompts/preview", handlers.PreviewPrompt)
	return r
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer alex")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

var parisBody = map[string]any{
	"destination":      "Paris, France",
	"staying_period":   3,
	"start_date":       "2026-06-01",
	"end_date":         "2026-06-03",
	"foods":            []string{"Pizza"},
	"personalities":    []string{"Foodie"},
	"traveler_name":    "Alex",
	"traveler_age":     32,
	"current_location": "New York, USA",
}

func TestCreateTrip_PassesSessionAndRequest(t *testing.T) {
	var gotSession types.Session
	var gotReq itinerary.TripRequest
	planner := &mockPlanner{create: func(_ context.Context, s types.Session, req itinerary.TripRequest) (*trip.Trip, error) {
		gotSession, gotReq = s, req
		return &trip.Trip{ID: "t1", OwnerID: s.UID, Destination: req.Destination, Status: trip.StatusUpcoming}, nil
	}}
	w := doRequest(buildRouter(planner, nil, nil), http.MethodPost, "/api/trips", parisBody)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, types.Session{UID: "uid-alex", Token: "alex"}, gotSession)
	assert.Equal(t, 3, gotReq.StayingPeriod)
	assert.Equal(t, 2026, gotReq.StartDate.Year())
	assert.Equal(t, "t1", decode(t, w)["id"])
}

func TestCreateTrip_BadDates(t *testing.T) {
	body := map[string]any{"destination": "Paris", "start_date": "June 1", "end_date": "2026-06-03"}
	w := doRequest(buildRouter(&mockPlanner{}, nil, nil), http.MethodPost, "/api/trips", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTrip_ErrorMapping(t *testing.T) {
	cases := []struct {
		err       error
		status    int
		code      string
		retryable bool
	}{
		{fmt.Errorf("%w: destination is required", itinerary.ErrInvalidRequest), http.StatusBadRequest, "invalid_request", false},
		{aiusage.ErrInsufficientTokens, http.StatusTooManyRequests, "quota_exhausted", false},
		{generation.ErrInFlight, http.StatusConflict, "generation_in_flight", true},
		{fmt.Errorf("%w: 503", itinerary.ErrTransportFailure), http.StatusBadGateway, "transport_failure", true},
		{fmt.Errorf("wrap: %w", itinerary.ErrNoJSONFound), http.StatusUnprocessableEntity, "no_json_found", true},
		{itinerary.ErrDayCountMismatch, http.StatusUnprocessableEntity, "day_count_mismatch", true},
		{itinerary.ErrAttractionNotGrounded, http.StatusUnprocessableEntity, "attraction_not_grounded", true},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			planner := &mockPlanner{create: func(context.Context, types.Session, itinerary.TripRequest) (*trip.Trip, error) {
				return nil, tc.err
			}}
			w := doRequest(buildRouter(planner, nil, nil), http.MethodPost, "/api/trips", parisBody)
			require.Equal(t, tc.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, tc.code, body["code"])
			assert.NotEmpty(t, body["error"])
			if tc.retryable {
				assert.Equal(t, true, body["retryable"])
			} else {
				assert.NotContains(t, body, "retryable")
			}
		})
	}
}

func TestListTrips_Filters(t *testing.T) {
	var got trip.Filter
	trips := &mockTrips{list: func(owner string, f trip.Filter) ([]trip.Trip, error) {
		assert.Equal(t, "uid-alex", owner)
		got = f
		return []trip.Trip{{ID: "a"}, {ID: "b"}}, nil
	}}
	r := buildRouter(nil, trips, nil)

	w := doRequest(r, http.MethodGet, "/api/trips?status=completed&favorite=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Status)
	assert.Equal(t, trip.StatusCompleted, *got.Status)
	require.NotNil(t, got.Favorite)
	assert.True(t, *got.Favorite)
	assert.Nil(t, got.Saved)
	assert.Len(t, decode(t, w)["trips"], 2)

	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/api/trips?status=archived", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/api/trips?saved=maybe", nil).Code)
}

func TestTripMutations(t *testing.T) {
	trips := &mockTrips{
		get: func(_, id string) (*trip.Trip, error) {
			return nil, trip.ErrNotFound
		},
		save: func(_, id, title string) (*trip.Trip, error) {
			return &trip.Trip{ID: id, Title: title, IsSaved: true}, nil
		},
		setFavorite: func(_, id string, fav bool) (*trip.Trip, error) {
			return &trip.Trip{ID: id, IsFavorite: fav}, nil
		},
		setStatus: func(_, _ string, to trip.Status) (*trip.Trip, error) {
			if to != trip.StatusCompleted {
				return nil, trip.ErrInvalidState
			}
			return &trip.Trip{Status: to}, nil
		},
		del: func(string, string) error { return nil },
	}
	r := buildRouter(nil, trips, nil)

	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/api/trips/x", nil).Code)

	w := doRequest(r, http.MethodPatch, "/api/trips/t1/save", map[string]string{"title": "Summer"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Summer", decode(t, w)["title"])

	req := httptest.NewRequest(http.MethodPatch, "/api/trips/t1/save", nil)
	req.Header.Set("Authorization", "Bearer alex")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodPatch, "/api/trips/t1/favorite", map[string]any{}).Code)
	w = doRequest(r, http.MethodPatch, "/api/trips/t1/favorite", map[string]any{"favorite": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["isFavorite"])

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPatch, "/api/trips/t1/status", map[string]string{"status": "completed"}).Code)
	assert.Equal(t, http.StatusConflict, doRequest(r, http.MethodPatch, "/api/trips/t1/status", map[string]string{"status": "upcoming"}).Code)

	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodDelete, "/api/trips/t1", nil).Code)
}

func TestPackingRoutes(t *testing.T) {
	pk := &mockPacking{
		get: func(owner, tripID string) (*packing.List, error) {
			return &packing.List{TripID: tripID, Items: []packing.Item{{ID: "default-1", Text: "Passport / ID"}}}, nil
		},
		add: func(_, tripID, text string) (*packing.List, error) {
			if text == "" {
				return nil, packing.ErrBadRequest
			}
			return &packing.List{ID: "l1", TripID: tripID, Items: []packing.Item{{ID: "i1", Text: text}}}, nil
		},
		toggle: func(string, string, string) (*packing.List, error) {
			return nil, trip.ErrNotFound
		},
	}
	r := buildRouter(nil, nil, pk)

	w := doRequest(r, http.MethodGet, "/api/trips/t1/packing-list", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "t1", decode(t, w)["tripId"])

	assert.Equal(t, http.StatusCreated, doRequest(r, http.MethodPost, "/api/trips/t1/packing-list/items", map[string]string{"text": "Hat"}).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodPost, "/api/trips/t1/packing-list/items", map[string]string{"text": ""}).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodPatch, "/api/trips/t1/packing-list/items/i1", nil).Code)
}

func TestUsage(t *testing.T) {
	w := doRequest(buildRouter(nil, nil, nil), http.MethodGet, "/api/usage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"month":"2026-06","limit":20,"remaining":7}`, w.Body.String())
}

func TestPreviewPrompt(t *testing.T) {
	r := buildRouter(nil, nil, nil)

	w := doRequest(r, http.MethodPost, "/api/prompts/preview", parisBody)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Contains(t, body["prompt"], "Paris, France")
	assert.Contains(t, body["schema"], "topAttractions")

	bad := map[string]any{"destination": "", "start_date": "2026-06-01", "end_date": "2026-06-03", "traveler_name": "A", "current_location": "B"}
	w = doRequest(r, http.MethodPost, "/api/prompts/preview", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode(t, w)["code"])
}

func TestPreviewPrompt_RejectsOutOfRangePeriod(t *testing.T) {
	r := buildRouter(nil, nil, nil)

	for _, period := range []int{0, 500} {
		body := map[string]any{}
		for k, v := range parisBody {
			body[k] = v
		}
		body["staying_period"] = period

		w := doRequest(r, http.MethodPost, "/api/prompts/preview", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "period %d", period)
		assert.Equal(t, "invalid_request", decode(t, w)["code"])
	}
}
