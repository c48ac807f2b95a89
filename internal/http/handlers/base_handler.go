// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trippo/internal/modules/aiusage"
	"trippo/internal/modules/generation"
	"trippo/internal/modules/itinerary"
	"trippo/internal/modules/packing"
	"trippo/internal/modules/trip"
	"trippo/internal/service"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeTripError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrInvalidState):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writePackingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, packing.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, packing.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeTripError(c, err)
	}
}

// writeGenerationError tells clients whether asking again can help.
func writeGenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, itinerary.ErrInvalidRequest):
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: itinerary.Kind(err)})
	case errors.Is(err, aiusage.ErrInsufficientTokens):
		writeJSON(c, http.StatusTooManyRequests, errorResponse{Error: "monthly trip generation limit reached", Code: "quota_exhausted"})
	case errors.Is(err, generation.ErrInFlight):
		writeJSON(c, http.StatusConflict, errorResponse{Error: err.Error(), Code: "generation_in_flight", Retryable: true})
	case errors.Is(err, itinerary.ErrTransportFailure):
		writeJSON(c, http.StatusBadGateway, errorResponse{Error: "itinerary service unavailable", Code: itinerary.Kind(err), Retryable: true})
	case itinerary.IsContentError(err):
		writeJSON(c, http.StatusUnprocessableEntity, errorResponse{Error: "generated itinerary was unusable", Code: itinerary.Kind(err), Retryable: true})
	default:
		writeTripError(c, err)
	}
}
