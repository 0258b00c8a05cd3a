// Package api provides the HTTP API for the AQI dashboard.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/shashankpm7/aqi-dashboard/internal/api/handler"
	"github.com/shashankpm7/aqi-dashboard/internal/api/middleware"
	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
	"github.com/shashankpm7/aqi-dashboard/internal/dataset/remotecsv"
	"github.com/shashankpm7/aqi-dashboard/internal/featureflags"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version            string
	BuildTime          string
	Logger             zerolog.Logger
	ServiceName        string
	Metrics            *middleware.Metrics
	IngestMetrics      *middleware.IngestMetrics
	Store              *dataset.Store
	FeatureFlagService *featureflags.Service
	Fetcher            *remotecsv.Client
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "aqi-dashboard-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)

	// Initialize handlers
	var sources []handler.HealthReporter
	if cfg.Fetcher != nil {
		sources = append(sources, cfg.Fetcher)
	}
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Store, cfg.FeatureFlagService, sources...)
	datasetHandler := handler.NewDatasetHandler(cfg.Store, cfg.FeatureFlagService, cfg.Fetcher, cfg.IngestMetrics, cfg.Logger)
	dashboardHandler := handler.NewDashboardHandler(cfg.Store, cfg.Logger)
	metadataHandler := handler.NewMetadataHandler()
	featureFlagsHandler := handler.NewFeatureFlagsHandler(cfg.FeatureFlagService, cfg.Logger)

	// Create rate limit middleware for different endpoint categories
	ingestRateLimit := middleware.RateLimitByIP(middleware.IngestRateLimit) // 10 req/min
	exportRateLimit := middleware.RateLimitByIP(middleware.ExportRateLimit) // 30 req/min
	queryRateLimit := middleware.RateLimitByIP(middleware.QueryRateLimit)   // 120 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Dataset lifecycle - loading replaces the whole session dataset,
		// so mutations are rate limited aggressively
		r.Route("/dataset", func(r chi.Router) {
			r.With(queryRateLimit, middleware.ContentTypeJSON).Get("/", datasetHandler.Get)
			r.With(ingestRateLimit).Post("/", datasetHandler.Upload)
			r.With(ingestRateLimit).Delete("/", datasetHandler.Delete)
			r.With(ingestRateLimit, middleware.ContentTypeJSON).Post("/generate", datasetHandler.Generate)
			r.With(ingestRateLimit, middleware.ContentTypeJSON, middleware.RequireJSON).Post("/fetch", datasetHandler.Fetch)
		})

		// Dashboard views over the loaded dataset
		r.Route("/dashboard", func(r chi.Router) {
			r.With(queryRateLimit, middleware.ContentTypeJSON).Get("/summary", dashboardHandler.Summary)
			r.With(queryRateLimit, middleware.ContentTypeJSON).Get("/records", dashboardHandler.Records)
			r.With(exportRateLimit).Get("/export", dashboardHandler.Export)
		})

		// Metadata endpoints
		r.Route("/metadata", func(r chi.Router) {
			r.Use(queryRateLimit)
			r.Use(middleware.ContentTypeJSON)
			r.Get("/categories", metadataHandler.Categories)
		})

		// Admin endpoints - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(queryRateLimit)
			r.Use(middleware.ContentTypeJSON)

			// Feature flags management
			r.Route("/feature-flags", func(r chi.Router) {
				r.Get("/", featureFlagsHandler.ListFeatureFlags)
				r.With(middleware.RequireJSON).Put("/", featureFlagsHandler.UpsertFeatureFlags)
				r.Delete("/{key}", featureFlagsHandler.DeleteFeatureFlag)
			})
		})
	})

	return r
}
