package http

import (
	"net/http"
	"strings"

	"github.com/JosueCumpa/crud-personas/internal/application"
	"github.com/JosueCumpa/crud-personas/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	PersonaService *application.PersonaService
	Pinger         Pinger
	Log            logrus.FieldLogger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	CORSOrigins    []string
	// RateLimiter es opcional; nil desactiva el límite
	RateLimiter *application.RateLimiter
}

// NewRouter arma la aplicación fiber con middleware y rutas
func NewRouter(cfg RouterConfig) *fiber.App {
	log := cfg.Log.WithField("component", "http")
	errorHandler := NewErrorHandler(log, cfg.Metrics)

	app := fiber.New(fiber.Config{
		AppName:               "crud-personas",
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{
		Header:    headerRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(requestObserver(log, cfg.Metrics, errorHandler))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       86400,
	}))

	health := NewHealthHandler(cfg.Pinger)
	app.Get("/health", health.Health)
	if cfg.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.MetricsHandler))
	}

	api := app.Group("/api")
	if cfg.RateLimiter != nil {
		api.Use(rateLimit(cfg.RateLimiter))
	}

	personaHandler := NewPersonaHandler(cfg.PersonaService, NewRequestValidator())

	// Rutas de personas
	personas := api.Group("/personas")
	personas.Get("/", personaHandler.GetAll)
	personas.Get("/page", personaHandler.GetPage)
	personas.Post("/", personaHandler.Create)
	personas.Put("/:id", personaHandler.Update)
	personas.Delete("/:id", personaHandler.Delete)

	return app
}
