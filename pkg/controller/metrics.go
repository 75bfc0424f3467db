package controller

import (
	"fmt"
	"net/http"
	"time"

	"calculator/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// WithMetrics returns a middleware that records per-request count and latency
// using the provided OpenTelemetry meter provider. Metrics are exported
// through the Prometheus exporter registered by the API server.
func WithMetrics(mp metric.MeterProvider, next http.Handler) (http.Handler, error) {
	meter := mp.Meter("calculator/http")

	reqCount, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Total number of handled HTTP requests"))
	if err != nil {
		return nil, fmt.Errorf("could not create request counter: %w", err)
	}

	reqDuration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request latency in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create request duration histogram: %w", err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		attrs := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.Int("status", rec.status),
		)
		reqCount.Add(r.Context(), 1, attrs)
		reqDuration.Record(r.Context(), time.Since(start).Seconds(), attrs)
	}), nil
}
