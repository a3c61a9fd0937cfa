// Package server provides the HTTP server and routing for Pathwise.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/config"
	"github.com/pathwise/pathwise/internal/di"
	"github.com/pathwise/pathwise/internal/identity"
	anomalyhandlers "github.com/pathwise/pathwise/internal/modules/anomaly/handlers"
	coachhandlers "github.com/pathwise/pathwise/internal/modules/coach/handlers"
	goalshandlers "github.com/pathwise/pathwise/internal/modules/goals/handlers"
	profilehandlers "github.com/pathwise/pathwise/internal/modules/profile/handlers"
	projectionhandlers "github.com/pathwise/pathwise/internal/modules/projection/handlers"
	reportshandlers "github.com/pathwise/pathwise/internal/modules/reports/handlers"
	simulationhandlers "github.com/pathwise/pathwise/internal/modules/simulation/handlers"
	transactionshandlers "github.com/pathwise/pathwise/internal/modules/transactions/handlers"
	"github.com/pathwise/pathwise/internal/scheduler"
)

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	Config    *config.Config
	Container *di.Container
	Scheduler *scheduler.Scheduler
	Port      int
	DevMode   bool
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	container      *di.Container
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		cfg:       cfg.Config,
		container: cfg.Container,
		systemHandlers: NewSystemHandlers(cfg.Log, cfg.Container, cfg.Scheduler,
			scheduler.NewAnomalyScanJob(cfg.Container.ProfileRepo, cfg.Container.AnomalyService, cfg.Log),
			scheduler.NewMonthlyReportJob(cfg.Container.ProfileRepo, cfg.Container.ReportService, cfg.Log)),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", identity.Header},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	profileHandler := profilehandlers.NewHandler(s.container.ProfileService, s.log)
	goalsHandler := goalshandlers.NewHandler(s.container.GoalService, s.log)
	projectionHandler := projectionhandlers.NewHandler(s.container.ProjectionService, s.log)
	simulationHandler := simulationhandlers.NewHandler(s.container.SimulationService, s.log)
	transactionsHandler := transactionshandlers.NewHandler(s.container.TransactionService, s.log)
	anomalyHandler := anomalyhandlers.NewHandler(s.container.AnomalyService, s.log)
	reportsHandler := reportshandlers.NewHandler(s.container.ReportService, s.log)
	coachHandler := coachhandlers.NewHandler(s.container.CoachService, s.log)

	s.router.Route("/api", func(r chi.Router) {
		// Registration is the only route that works without an identity.
		profileHandler.RegisterPublicRoutes(r)

		// Everything else acts on behalf of one user.
		r.Group(func(r chi.Router) {
			r.Use(identity.Middleware)

			profileHandler.RegisterRoutes(r)
			goalsHandler.RegisterRoutes(r)
			projectionHandler.RegisterRoutes(r)
			simulationHandler.RegisterRoutes(r)
			transactionsHandler.RegisterRoutes(r)
			anomalyHandler.RegisterRoutes(r)
			reportsHandler.RegisterRoutes(r)
			coachHandler.RegisterRoutes(r)
		})

		// System monitoring and manual job triggers
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
			r.Get("/database/stats", s.systemHandlers.HandleDatabaseStats)
		})
		r.Route("/jobs", func(r chi.Router) {
			r.Post("/anomaly-scan", s.systemHandlers.HandleTriggerAnomalyScan)
			r.Post("/monthly-report", s.systemHandlers.HandleTriggerMonthlyReport)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
