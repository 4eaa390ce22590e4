package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JosueCumpa/crud-personas/internal/application"
	"github.com/JosueCumpa/crud-personas/internal/infrastructure/repository"
	handlers "github.com/JosueCumpa/crud-personas/internal/interfaces/http"
	"github.com/JosueCumpa/crud-personas/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error {
	return p.err
}

func TestRouter_RateLimit(t *testing.T) {
	log, _ := test.NewNullLogger()
	app := handlers.NewRouter(handlers.RouterConfig{
		PersonaService: application.NewPersonaService(repository.NewMemoryPersonaRepository(), log),
		Log:            log,
		RateLimiter:    application.NewRateLimiter(time.Minute, 1),
	})

	first := httptest.NewRequest(http.MethodPost, "/api/personas", strings.NewReader(`{"nombre":"Juan","email":"juan@example.com"}`))
	first.Header.Set("Content-Type", "application/json")
	firstResp, err := app.Test(first, -1)
	require.NoError(t, err)
	firstResp.Body.Close()
	assert.Equal(t, http.StatusCreated, firstResp.StatusCode)
	assert.Equal(t, "0", firstResp.Header.Get("X-RateLimit-Remaining"))

	req := httptest.NewRequest(http.MethodPost, "/api/personas", strings.NewReader(`{"nombre":"Ana","email":"ana@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.Equal(t, "Demasiadas solicitudes, intente mas tarde", message(t, data))

	status, _ := do(t, app, http.MethodGet, "/api/personas", "")
	assert.Equal(t, http.StatusOK, status, "reads are not limited")
}

func TestRouter_RequestIDAndCORS(t *testing.T) {
	app := newApp(t, repository.NewMemoryPersonaRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/personas", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	_, err = uuid.Parse(resp.Header.Get("X-Request-ID"))
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:4200", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestRouter_Health(t *testing.T) {
	log, _ := test.NewNullLogger()
	service := application.NewPersonaService(repository.NewMemoryPersonaRepository(), log)

	t.Run("healthy", func(t *testing.T) {
		app := handlers.NewRouter(handlers.RouterConfig{PersonaService: service, Log: log, Pinger: stubPinger{}})
		status, data := do(t, app, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"status":"ok"}`, string(data))
	})

	t.Run("database down", func(t *testing.T) {
		app := handlers.NewRouter(handlers.RouterConfig{PersonaService: service, Log: log, Pinger: stubPinger{err: errors.New("down")}})
		status, _ := do(t, app, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, status)
	})
}

func TestRouter_MetricsAndErrorLogging(t *testing.T) {
	log, hook := test.NewNullLogger()
	meter, metricsHandler, err := metrics.NewPrometheus()
	require.NoError(t, err)
	m, err := metrics.New(meter)
	require.NoError(t, err)

	app := handlers.NewRouter(handlers.RouterConfig{
		PersonaService: application.NewPersonaService(failingRepository{}, log),
		Log:            log,
		Metrics:        m,
		MetricsHandler: metricsHandler,
	})

	status, _ := do(t, app, http.MethodGet, "/api/personas", "")
	require.Equal(t, http.StatusInternalServerError, status)

	var logged bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel && entry.Message == "error inesperado" {
			logged = true
			assert.ErrorContains(t, entry.Data[logrus.ErrorKey].(error), "DB down")
		}
	}
	assert.True(t, logged, "unexpected errors are logged with their cause")

	status, data := do(t, app, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(data), "errors_total")
	assert.Contains(t, string(data), "http_requests_total")
}
