package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "github.com/JosueCumpa/crud-personas"

type Metrics struct {
	requests metric.Int64Counter
	duration metric.Int64Histogram
	errors   metric.Int64Counter
}

// NewPrometheus creates a meter exported through a dedicated prometheus registry,
// together with the http handler that serves it
func NewPrometheus() (metric.Meter, http.Handler, error) {
	registry := prom.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return provider.Meter(meterName), handler, nil
}

func New(meter metric.Meter) (*Metrics, error) {
	requests, err := meter.Int64Counter("http_requests_total", metric.WithDescription("handled http requests"))
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	duration, err := meter.Int64Histogram("http_request_duration_ms", metric.WithDescription("http request duration"), metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_ms histogram: %w", err)
	}

	errors, err := meter.Int64Counter("errors_total", metric.WithDescription("requests that ended in an error response"))
	if err != nil {
		return nil, fmt.Errorf("failed to create errors_total counter: %w", err)
	}

	return &Metrics{
		requests: requests,
		duration: duration,
		errors:   errors,
	}, nil
}

// RecordRequest is a no-op on a nil receiver
func (m *Metrics) RecordRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Milliseconds(), attrs)
}

// RecordError is a no-op on a nil receiver
func (m *Metrics) RecordError(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
