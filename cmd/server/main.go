// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/stylist/internal/api"
	"github.com/tomtom215/stylist/internal/config"
	"github.com/tomtom215/stylist/internal/database"
	"github.com/tomtom215/stylist/internal/history"
	"github.com/tomtom215/stylist/internal/logging"
	"github.com/tomtom215/stylist/internal/metrics"
	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/outfit/analyzers"
	"github.com/tomtom215/stylist/internal/supervisor"
	"github.com/tomtom215/stylist/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logger := logging.Logger()

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Msg("Starting Stylist with supervisor tree")

	// === STORAGE ===

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	// breaker -> cache -> duckdb
	var source outfit.WardrobeSource = db
	var cacheInvalidator api.CacheInvalidator
	if cfg.Cache.Enabled {
		cached, err := database.NewCachedSource(db, database.CacheConfig{
			TTL:         cfg.Cache.TTL,
			NumCounters: cfg.Cache.NumCounters,
			MaxCost:     cfg.Cache.MaxCost,
		}, logger)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create wardrobe cache")
		}
		defer cached.Close()
		source = cached
		cacheInvalidator = cached
		logging.Info().Dur("ttl", cfg.Cache.TTL).Msg("Wardrobe read cache enabled")
	}
	breaker := database.NewBreakerSource(source, database.BreakerConfig{
		MaxFailures: cfg.Database.BreakerMaxFailures,
		Timeout:     cfg.Database.BreakerTimeout,
	}, logger)

	historyStore, err := history.Open(history.Config{
		Path:           cfg.History.Path,
		InMemory:       cfg.History.InMemory,
		RetainOutfits:  cfg.History.RetainOutfits,
		SessionTTL:     cfg.History.SessionTTL,
		GCDiscardRatio: cfg.History.GCDiscardRatio,
	}, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open history store")
	}
	defer func() {
		if err := historyStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing history store")
		}
	}()
	logging.Info().
		Str("path", cfg.History.Path).
		Bool("in_memory", cfg.History.InMemory).
		Msg("History store opened")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === ANALYTICS ===

	analyticsComponents, err := InitAnalytics(ctx, &cfg.Analytics)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize analytics")
	}

	// === ENGINE ===

	engineCfg, err := cfg.OutfitConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid engine configuration")
	}
	engine, err := outfit.NewEngine(engineCfg, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create outfit engine")
	}
	for _, a := range analyzers.Defaults(engineCfg, logger) {
		engine.RegisterAnalyzer(a)
	}
	engine.SetWardrobeSource(breaker)
	engine.SetHistoryStore(historyStore)
	engine.SetFeedbackStore(db)
	engine.SetDiversityHistory(historyStore)
	engine.SetRotationState(historyStore)
	engine.SetObserver(metrics.EngineObserver{})
	if sink := analyticsComponents.Sink(); sink != nil {
		engine.SetAnalyticsSink(sink)
	}
	logging.Info().Int("strategies", len(engine.Strategies())).Msg("Outfit engine ready")

	// === HTTP ===

	handler := api.NewHandler(engine, db, historyStore, cacheInvalidator, api.HandlerConfig{
		GenerateBudget: cfg.Server.GenerateBudget,
		MaxBodyBytes:   cfg.Security.MaxBodyBytes,
		Version:        version,
	}, logger)
	handler.AddHealthCheck("database", db.Ping)
	handler.AddHealthCheck("wardrobe_breaker", func(context.Context) error {
		if breaker.State() == "open" {
			return errors.New("wardrobe circuit open")
		}
		return nil
	})
	if analyticsComponents != nil {
		handler.AddHealthCheck("analytics", analyticsComponents.Check)
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)))
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// === SUPERVISOR TREE ===

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.WithComponent("supervisor")), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.History.GCInterval > 0 {
		compactor := history.NewCompactor(historyStore, cfg.History.GCInterval)
		tree.AddDataService(services.NewLifecycleService("history-compactor", compactor))
		logging.Info().Dur("interval", cfg.History.GCInterval).Msg("History compactor added to supervisor tree")
	}
	if sink := analyticsComponents.Sink(); sink != nil {
		tree.AddMessagingService(services.NewLifecycleService("analytics-sink", sink))
		logging.Info().Msg("Analytics sink added to supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	analyticsComponents.Shutdown(shutdownCtx)
	shutdownCancel()

	stats := engine.Stats()
	logging.Info().
		Int64("requests", stats.Requests).
		Int64("emergencies", stats.Emergencies).
		Msg("Application stopped gracefully")
}
