package http

import (
	"strconv"
	"time"

	"github.com/JosueCumpa/crud-personas/internal/application"
	"github.com/JosueCumpa/crud-personas/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// requestObserver registra cada solicitud en el log y en las métricas. Los
// errores de la cadena se resuelven aquí para conocer el status final
func requestObserver(log logrus.FieldLogger, m *metrics.Metrics, errorHandler fiber.ErrorHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := errorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		m.RecordRequest(c.UserContext(), c.Method(), route, status, elapsed)

		entry := log.WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"route":      route,
			"status":     status,
			"latency_ms": elapsed.Milliseconds(),
			"ip":         c.IP(),
			"request_id": c.GetRespHeader(headerRequestID),
		})
		if status >= fiber.StatusInternalServerError {
			entry.Warn("request completed with server error")
		} else {
			entry.Debug("request completed")
		}

		return nil
	}
}

const headerRateLimitRemaining = "X-RateLimit-Remaining"

// rateLimit aplica el limitador solo a las solicitudes que modifican datos
func rateLimit(limiter *application.RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		default:
			return c.Next()
		}

		allowed, retryAfter := limiter.Allow(c.IP())
		if !allowed {
			seconds := int(retryAfter.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
			c.Set(headerRateLimitRemaining, "0")
			return fiber.NewError(fiber.StatusTooManyRequests, msgRateLimited)
		}
		c.Set(headerRateLimitRemaining, strconv.Itoa(limiter.Remaining(c.IP())))
		return c.Next()
	}
}
