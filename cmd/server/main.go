// Package main is the entry point for the Pathwise financial planning service.
// It manages user financial profiles, savings goals, projections, spending
// analytics and coaching, backed by a three-database SQLite architecture.
//
// The application follows clean architecture principles:
// - Domain layer is pure (no infrastructure dependencies)
// - Dependency injection via DI container
// - Repository pattern for data access
// - Service layer for business logic
// - HTTP handlers for API endpoints
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pathwise/pathwise/internal/config"
	"github.com/pathwise/pathwise/internal/di"
	"github.com/pathwise/pathwise/internal/scheduler"
	"github.com/pathwise/pathwise/internal/server"
	"github.com/pathwise/pathwise/pkg/logger"
)

// main orchestrates the startup sequence:
// 1. Load configuration from environment variables
// 2. Initialize logging
// 3. Wire all dependencies via the DI container (databases, repositories, services)
// 4. Register and start background jobs (anomaly sweep, monthly reports)
// 5. Start the HTTP server
// 6. Wait for a shutdown signal and shut down gracefully
//
// The application uses a 3-database architecture:
// - core.db: Declared financial profile and savings goals
// - ledger.db: Append-only financial history (transactions, simulations, anomalies, reports, advice)
// - cache.db: Ephemeral operational data (coach sessions)
func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Pathwise")

	container, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	// Closing flushes WAL checkpoints, so it must run even on panic.
	defer container.Close()

	// Background jobs
	sched := scheduler.New(log)
	if err := di.RegisterJobs(container, sched, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register background jobs")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Container: container,
		Scheduler: sched,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// In-flight requests get up to 10 seconds to finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
