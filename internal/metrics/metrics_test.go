package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JosueCumpa/crud-personas/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	m, err := metrics.New(meter)
	require.NoError(t, err)

	m.RecordRequest(ctx, http.MethodGet, "/api/personas", http.StatusOK, 5*time.Millisecond)
	m.RecordRequest(ctx, http.MethodPost, "/api/personas", http.StatusConflict, time.Millisecond)
	m.RecordError(ctx, "duplicate_email")

	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	totals := map[string]int64{}
	for _, md := range rm.ScopeMetrics[0].Metrics {
		if sum, ok := md.Data.(metricdata.Sum[int64]); ok {
			for _, dp := range sum.DataPoints {
				totals[md.Name] += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), totals["http_requests_total"])
	assert.Equal(t, int64(1), totals["errors_total"])
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest(context.Background(), http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.RecordError(context.Background(), "unexpected")
	})
}

func TestNewPrometheus(t *testing.T) {
	meter, handler, err := metrics.NewPrometheus()
	require.NoError(t, err)

	m, err := metrics.New(meter)
	require.NoError(t, err)
	m.RecordError(context.Background(), "not_found")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "errors_total")
}
