// README: API gateway; registers gin routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trippo/internal/http/handlers"
	"trippo/internal/http/middleware"
	"trippo/internal/infra"
	"trippo/internal/log"
)

type ServerDeps struct {
	Planner     handlers.Planner
	Trips       handlers.TripService
	Packing     handlers.PackingService
	Usage       handlers.UsageService
	Verifier    infra.TokenVerifier
	Logger      *log.Logger
	CORSOrigins []string
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(s.deps.Logger), middleware.Logging(s.deps.Logger), middleware.CORS(s.deps.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.Auth(s.deps.Verifier))

	tripHandler := handlers.NewTripHandler(s.deps.Planner, s.deps.Trips)
	api.POST("/trips", tripHandler.Create)
	api.GET("/trips", tripHandler.List)
	api.GET("/trips/:id", tripHandler.Get)
	api.PATCH("/trips/:id/save", tripHandler.Save)
	api.PATCH("/trips/:id/favorite", tripHandler.SetFavorite)
	api.PATCH("/trips/:id/status", tripHandler.SetStatus)
	api.DELETE("/trips/:id", tripHandler.Delete)

	packingHandler := handlers.NewPackingHandler(s.deps.Packing)
	api.GET("/trips/:id/packing-list", packingHandler.Get)
	api.PUT("/trips/:id/packing-list", packingHandler.Replace)
	api.DELETE("/trips/:id/packing-list", packingHandler.Reset)
	api.POST("/trips/:id/packing-list/items", packingHandler.AddItem)
	api.PATCH("/trips/:id/packing-list/items/:itemId", packingHandler.ToggleItem)
	api.DELETE("/trips/:id/packing-list/items/:itemId", packingHandler.RemoveItem)

	api.GET("/usage", handlers.NewUsageHandler(s.deps.Usage).Get)
	api.POST("/prompts/preview", handlers.PreviewPrompt)

	return r
}
