package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger es cualquier almacenamiento que puede verificar su conexión, como *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	pinger Pinger
}

// NewHealthHandler crea el handler de salud. pinger puede ser nil cuando no hay base de datos
func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if h.pinger != nil {
		if err := h.pinger.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
