// Package api provides the HTTP API for JetSweep.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/TaylorONeal/jetsweep/internal/airport"
	"github.com/TaylorONeal/jetsweep/internal/api/handler"
	"github.com/TaylorONeal/jetsweep/internal/api/middleware"
	"github.com/TaylorONeal/jetsweep/internal/api/response"
	"github.com/TaylorONeal/jetsweep/internal/recent"
	"github.com/TaylorONeal/jetsweep/internal/resilience"
	"github.com/TaylorONeal/jetsweep/internal/timeline"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	BuildTime string
	Logger    zerolog.Logger

	// Tracer for request spans (default: global tracer).
	Tracer trace.Tracer

	// Metrics records HTTP metrics (optional).
	Metrics *middleware.Metrics

	// Timelines computes itineraries. Required.
	Timelines *timeline.Service

	// Airports backs the catalog endpoints (default: built-in catalog).
	Airports *airport.Registry

	// Recents stores recent searches. Required.
	Recents *recent.Service

	// Health reports guarded dependency state (optional).
	Health *resilience.Registry

	// Location reads wall-clock timestamps (default: time.Local).
	Location *time.Location

	// Clock is the current time for display ages and ops responses
	// (default: the timeline service clock).
	Clock func() time.Time

	// AllowedOrigins enables CORS for the browser UI when non-empty.
	AllowedOrigins []string

	// RequireTLS rejects proxied plain-HTTP requests.
	RequireTLS bool

	// ComputeRateLimit is the per-IP requests per minute on the compute endpoint.
	// Default: 120
	ComputeRateLimit int
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if cfg.ComputeRateLimit <= 0 {
		cfg.ComputeRateLimit = 120
	}
	if cfg.Clock == nil {
		cfg.Clock = cfg.Timelines.Now
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(cfg.Tracer))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
	}
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS(cfg.RequireTLS))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "no route matches "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, r, "method "+r.Method+" is not supported on "+r.URL.Path)
	})

	// Initialize handlers
	var store handler.Pinger
	if cfg.Recents != nil {
		store = cfg.Recents
	}
	var health handler.HealthReporter
	if cfg.Health != nil {
		health = cfg.Health
	}

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, store, health, cfg.Clock)
	timelineHandler := handler.NewTimelineHandler(cfg.Timelines, cfg.Recents, cfg.Location)
	airportHandler := handler.NewAirportHandler(cfg.Airports, cfg.Timelines)
	conditionsHandler := handler.NewConditionsHandler(cfg.Timelines, cfg.Location)
	recentHandler := handler.NewRecentHandler(cfg.Recents, cfg.Clock)

	computeRateLimit := middleware.RateLimitByIP(middleware.PerMinute(cfg.ComputeRateLimit))
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		r.With(computeRateLimit, middleware.RequireJSON).Post("/timeline:compute", timelineHandler.Compute)

		r.Group(func(r chi.Router) {
			r.Use(standardRateLimit)

			r.Get("/airports", airportHandler.List)
			r.Get("/airports/{query}", airportHandler.Resolve)
			r.Get("/conditions", conditionsHandler.Analyze)

			r.Get("/recent-searches", recentHandler.List)
			r.Delete("/recent-searches", recentHandler.Clear)
		})
	})

	return r
}
