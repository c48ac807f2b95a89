// README: Usage and prompt-preview handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"trippo/internal/http/middleware"
	"trippo/internal/modules/aiusage"
	"trippo/internal/modules/itinerary"
)

type UsageService interface {
	Usage(ctx context.Context, uid string) (aiusage.Usage, error)
}

type UsageHandler struct {
	usage UsageService
}

func NewUsageHandler(svc UsageService) *UsageHandler {
	return &UsageHandler{usage: svc}
}

func (h *UsageHandler) Get(c *gin.Context) {
	u, err := h.usage.Usage(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, u)
}

// PreviewPrompt returns the prompt a trip request would produce without calling a provider.
func PreviewPrompt(c *gin.Context) {
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
	if err := req.Validate(); err != nil {
		writeGenerationError(c, err)
		return
	}
	prompt, err := itinerary.BuildPrompt(req)
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"prompt": prompt, "schema": itinerary.OutputSchema(req)})
}
