// README: Packing list handlers nested under a trip.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"trippo/internal/http/middleware"
	"trippo/internal/modules/packing"
)

type PackingService interface {
	Get(ctx context.Context, owner, tripID string) (*packing.List, error)
	Replace(ctx context.Context, owner, tripID string, items []packing.Item) (*packing.List, error)
	AddItem(ctx context.Context, owner, tripID, text string) (*packing.List, error)
	ToggleItem(ctx context.Context, owner, tripID, itemID string) (*packing.List, error)
	RemoveItem(ctx context.Context, owner, tripID, itemID string) (*packing.List, error)
	Reset(ctx context.Context, owner, tripID string) error
}

type PackingHandler struct {
	packing PackingService
}

func NewPackingHandler(svc PackingService) *PackingHandler {
	return &PackingHandler{packing: svc}
}

func (h *PackingHandler) Get(c *gin.Context) {
	l, err := h.packing.Get(c.Request.Context(), middleware.CallerUID(c), c.Param("id"))
	h.respond(c, l, err)
}

func (h *PackingHandler) Replace(c *gin.Context) {
	var body struct {
		Items []packing.Item `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	l, err := h.packing.Replace(c.Request.Context(), middleware.CallerUID(c), c.Param("id"), body.Items)
	h.respond(c, l, err)
}

func (h *PackingHandler) AddItem(c *gin.Context) {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	l, err := h.packing.AddItem(c.Request.Context(), middleware.CallerUID(c), c.Param("id"), body.Text)
	if err != nil {
		writePackingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, l)
}

func (h *PackingHandler) ToggleItem(c *gin.Context) {
	l, err := h.packing.ToggleItem(c.Request.Context(), middleware.CallerUID(c), c.Param("id"), c.Param("itemId"))
	h.respond(c, l, err)
}

func (h *PackingHandler) RemoveItem(c *gin.Context) {
	l, err := h.packing.RemoveItem(c.Request.Context(), middleware.CallerUID(c), c.Param("id"), c.Param("itemId"))
	h.respond(c, l, err)
}

func (h *PackingHandler) Reset(c *gin.Context) {
	if err := h.packing.Reset(c.Request.Context(), middleware.CallerUID(c), c.Param("id")); err != nil {
		writePackingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PackingHandler) respond(c *gin.Context, l *packing.List, err error) {
	if err != nil {
		writePackingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, l)
}
