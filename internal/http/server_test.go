package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"trippo/internal/infra"
	"trippo/internal/log"
)

type rejectAll struct{}

func (rejectAll) Verify(context.Context, string) (infra.Identity, error) {
	return infra.Identity{}, errors.New("expired")
}

func TestRoutes_HealthIsPublicAndAPIRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewServer(ServerDeps{Verifier: rejectAll{}, Logger: log.Discard(), CORSOrigins: []string{"*"}}).Routes()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	for _, path := range []string{"/api/trips", "/api/usage", "/api/trips/abc/packing-list"} {
		w = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer stale")
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
