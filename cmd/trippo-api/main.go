// README: Entry point; loads config, runs migrations, wires services and serves the HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"trippo/internal/ai"
	"trippo/internal/config"
	httptransport "trippo/internal/http"
	"trippo/internal/infra"
	"trippo/internal/log"
	"trippo/internal/maps"
	"trippo/internal/modules/aiusage"
	"trippo/internal/modules/generation"
	"trippo/internal/modules/packing"
	"trippo/internal/modules/trip"
	"trippo/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger settings live in cfg, so report with defaults.
		fallback, _ := log.New(config.LoggingConfig{Level: "info", Format: "text"})
		fallback.WithError(err).Fatal("load config")
	}
	logger, err := log.New(cfg.Log)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		logger.Fatal("TRIPPO_FIREBASE_PROJECT_ID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.WithError(err).Fatal("firebase init")
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.WithError(err).Fatal("connect postgres")
	}
	defer dbPool.Close()

	applied, err := infra.Migrate(ctx, dbPool)
	if err != nil {
		logger.WithError(err).Fatal("migrate")
	}
	logger.LogSystem("postgres", "migrate", true, log.Fields{"applied": applied})

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.WithError(err).Fatal("connect redis")
	}
	defer redisClient.Close()

	completer, err := ai.New(ctx, ai.Settings{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey(),
		Model:    cfg.LLM.Model(),
		ProxyURL: cfg.LLM.ProxyURL,
	})
	if err != nil {
		logger.WithError(err).Fatal("completion provider")
	}
	if g, ok := completer.(*ai.GeminiProvider); ok {
		defer g.Close()
	}

	var venues service.VenueFinder
	if cfg.LLM.MapsKey != "" {
		places, err := maps.NewPlacesService(cfg.LLM.MapsKey)
		if err != nil {
			logger.WithError(err).Fatal("places client")
		}
		venues = places
	}

	tripSvc := trip.NewService(trip.NewStore(dbPool))
	packingSvc := packing.NewService(packing.NewStore(dbPool), tripSvc)
	usageSvc := aiusage.NewService(aiusage.NewStore(dbPool), cfg.LLM.MonthlyTrips)
	locker := generation.NewLocker(redisClient, cfg.LLM.Timeout+time.Minute)

	planner := service.NewTripPlanner(completer, usageSvc, locker, venues, tripSvc, logger, service.PlannerOptions{
		MaxRetries: uint64(cfg.LLM.MaxRetries),
		Timeout:    cfg.LLM.Timeout,
	})

	gin.SetMode(gin.ReleaseMode)
	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner:     planner,
		Trips:       tripSvc,
		Packing:     packingSvc,
		Usage:       usageSvc,
		Verifier:    verifier,
		Logger:      logger,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.LogSystem("http", "listen", true, log.Fields{"addr": cfg.HTTP.Addr, "provider": cfg.LLM.Provider})
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("http server")
	}
}
