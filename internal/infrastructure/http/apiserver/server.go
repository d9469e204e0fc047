// Package apiserver provides the JSON API HTTP server exposing the prep
// engine's run and audit-history operations.
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trayline/v1/internal/infrastructure/config"
	"github.com/trayline/v1/internal/infrastructure/http/middleware"
	"github.com/trayline/v1/internal/infrastructure/monitoring"
	"github.com/trayline/v1/internal/ports/inbound"
	"github.com/trayline/v1/pkg/healthcheck"
	"go.uber.org/zap"
)

// APIServer serves the prep engine over HTTP. Triggering cadence lives with
// external callers (cron, the prep CLI); the server only exposes the run and
// audit operations.
type APIServer struct {
	config      *config.Config
	logger      *zap.Logger
	server      *http.Server
	router      *chi.Mux
	prepService inbound.PrepService
	metrics     *monitoring.PrepMetrics
	health      *healthcheck.HealthCheck
	registry    *prometheus.Registry
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	prepService inbound.PrepService,
	metrics *monitoring.PrepMetrics,
	health *healthcheck.HealthCheck,
	registry *prometheus.Registry,
) *APIServer {
	s := &APIServer{
		config:      cfg,
		logger:      log.Named("apiserver"),
		prepService: prepService,
		metrics:     metrics,
		health:      health,
		registry:    registry,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRoutes configures the JSON API routes
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", s.health.Handler())
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/prep/{slot}", s.handleExecutePrep)
		r.Get("/prep/executions", s.handleListExecutions)
	})

	return r
}

// Start begins listening for HTTP requests
func (s *APIServer) Start(ctx context.Context) error {
	s.logger.Info("Starting API server", zap.String("addr", s.server.Addr))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("API server stopped unexpectedly", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the server
func (s *APIServer) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server")
	return s.server.Shutdown(ctx)
}

// Router exposes the configured router, mainly for tests.
func (s *APIServer) Router() http.Handler {
	return s.router
}
