package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/shashankpm7/aqi-dashboard/internal/api/middleware"

// Metrics holds the OpenTelemetry metrics instruments.
type Metrics struct {
	requestDuration  metric.Float64Histogram
	requestTotal     metric.Int64Counter
	requestsInFlight metric.Int64UpDownCounter
	responseSize     metric.Int64Histogram
}

// NewMetrics creates a new Metrics instance with initialized instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("Duration of HTTP server requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP server requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	requestsInFlight, err := meter.Int64UpDownCounter(
		"http.server.requests_in_flight",
		metric.WithDescription("Number of HTTP requests currently being processed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	responseSize, err := meter.Int64Histogram(
		"http.server.response.size",
		metric.WithDescription("Size of HTTP server responses in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		requestsInFlight: requestsInFlight,
		responseSize:     responseSize,
	}, nil
}

// Middleware returns an HTTP middleware that records metrics for each request.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			attrs := []attribute.KeyValue{
				attribute.String("http.method", r.Method),
				attribute.String("http.route", r.URL.Path),
			}
			m.requestsInFlight.Add(r.Context(), 1, metric.WithAttributes(attrs...))
			defer m.requestsInFlight.Add(r.Context(), -1, metric.WithAttributes(attrs...))

			wrapped := newMetricsResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()

			attrs = append(attrs, attribute.String("http.status_code", strconv.Itoa(wrapped.statusCode)))
			if wrapped.statusCode >= 400 {
				attrs = append(attrs, attribute.Bool("error", true))
			}

			m.requestDuration.Record(r.Context(), duration, metric.WithAttributes(attrs...))
			m.requestTotal.Add(r.Context(), 1, metric.WithAttributes(attrs...))
			m.responseSize.Record(r.Context(), wrapped.written, metric.WithAttributes(attrs...))
		})
	}
}

// metricsResponseWriter wraps http.ResponseWriter to capture response metadata.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *metricsResponseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// IngestMetrics holds metrics for dataset loading operations.
type IngestMetrics struct {
	ingestDuration  metric.Float64Histogram
	datasetsLoaded  metric.Int64Counter
	recordsIngested metric.Int64Counter
	rowsDropped     metric.Int64Counter
}

// NewIngestMetrics creates metrics for monitoring dataset loads.
func NewIngestMetrics() (*IngestMetrics, error) {
	meter := otel.Meter(meterName)

	ingestDuration, err := meter.Float64Histogram(
		"dataset.ingest.duration",
		metric.WithDescription("Duration of dataset loads in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	datasetsLoaded, err := meter.Int64Counter(
		"dataset.loaded.total",
		metric.WithDescription("Total number of datasets loaded"),
		metric.WithUnit("{dataset}"),
	)
	if err != nil {
		return nil, err
	}

	recordsIngested, err := meter.Int64Counter(
		"dataset.records.total",
		metric.WithDescription("Total number of records ingested"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	rowsDropped, err := meter.Int64Counter(
		"dataset.rows_dropped.total",
		metric.WithDescription("Total number of input rows dropped during ingestion"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, err
	}

	return &IngestMetrics{
		ingestDuration:  ingestDuration,
		datasetsLoaded:  datasetsLoaded,
		recordsIngested: recordsIngested,
		rowsDropped:     rowsDropped,
	}, nil
}

// RecordLoad records metrics for one dataset load attempt.
func (m *IngestMetrics) RecordLoad(source string, records, dropped int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("dataset.source", source),
	}
	if err != nil {
		attrs = append(attrs, attribute.Bool("error", true))
	}

	// Background context keeps metric recording alive past request cancellation.
	ctx := context.TODO()
	m.ingestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	if err == nil {
		m.datasetsLoaded.Add(ctx, 1, metric.WithAttributes(attrs...))
		m.recordsIngested.Add(ctx, int64(records), metric.WithAttributes(attrs...))
		m.rowsDropped.Add(ctx, int64(dropped), metric.WithAttributes(attrs...))
	}
}
