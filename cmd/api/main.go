// Package main provides the entrypoint for the AQI dashboard API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shashankpm7/aqi-dashboard/internal/api"
	"github.com/shashankpm7/aqi-dashboard/internal/api/middleware"
	"github.com/shashankpm7/aqi-dashboard/internal/dataset"
	"github.com/shashankpm7/aqi-dashboard/internal/dataset/remotecsv"
	"github.com/shashankpm7/aqi-dashboard/internal/featureflags"
	"github.com/shashankpm7/aqi-dashboard/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "aqi-dashboard-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AQI dashboard API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	ingestMetrics, err := middleware.NewIngestMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize ingest metrics")
		os.Exit(1)
	}

	// Initialize the in-memory dataset store
	store := dataset.NewStore(log)
	log.Info().Msg("dataset store initialized")

	// Initialize feature flags repository and service
	ffService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: featureflags.NewMemoryRepository(),
		Logger:     log,
	})
	log.Info().Msg("feature flags service initialized")

	// Initialize the remote CSV fetcher
	fetcher := remotecsv.NewClient(remotecsv.ClientConfig{
		Logger: log,
	})
	log.Info().Msg("remote csv fetcher initialized")

	// Optionally preload the sample dataset so the dashboard has data on boot
	if os.Getenv("PRELOAD_SAMPLE_DATA") == "true" {
		ds := dataset.GenerateSample(dataset.DefaultGeneratorConfig())
		store.Replace(ds)
		log.Info().
			Str("dataset_id", ds.ID).
			Int("records", ds.Len()).
			Msg("sample dataset preloaded")
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            metrics,
		IngestMetrics:      ingestMetrics,
		Store:              store,
		FeatureFlagService: ffService,
		Fetcher:            fetcher,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
