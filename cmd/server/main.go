package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JosueCumpa/crud-personas/internal/application"
	"github.com/JosueCumpa/crud-personas/internal/config"
	"github.com/JosueCumpa/crud-personas/internal/domain"
	"github.com/JosueCumpa/crud-personas/internal/infrastructure/repository"
	handlers "github.com/JosueCumpa/crud-personas/internal/interfaces/http"
	"github.com/JosueCumpa/crud-personas/internal/logger"
	"github.com/JosueCumpa/crud-personas/internal/metrics"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Error loading config: %v", err)
	}

	log, err := logger.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("Error creating logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	meter, metricsHandler, err := metrics.NewPrometheus()
	if err != nil {
		log.WithError(err).Fatal("setting up metrics exporter")
	}
	m, err := metrics.New(meter)
	if err != nil {
		log.WithError(err).Fatal("creating metric instruments")
	}

	personaRepo, pinger, closeDB := newPersonaRepository(ctx, cfg, log)
	defer closeDB()

	// Personas
	personaService := application.NewPersonaService(personaRepo, log)

	var limiter *application.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = application.NewRateLimiter(time.Minute, cfg.RateLimit)
		go limiter.Run(ctx)
	}

	app := handlers.NewRouter(handlers.RouterConfig{
		PersonaService: personaService,
		Pinger:         pinger,
		Log:            log,
		Metrics:        m,
		MetricsHandler: metricsHandler,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimiter:    limiter,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			log.WithError(err).Error("shutting down server")
		}
	}()

	log.WithFields(logrus.Fields{"port": cfg.ServerPort, "driver": cfg.DBDriver}).Info("server starting")
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.WithError(err).Fatal("starting server")
	}
}

// newPersonaRepository elige el almacenamiento según el driver configurado
func newPersonaRepository(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (domain.PersonaRepository, handlers.Pinger, func()) {
	if cfg.DBDriver == config.DriverMemory {
		log.Warn("using in-memory store, data is lost on restart")
		return repository.NewMemoryPersonaRepository(), nil, func() {}
	}

	db, err := repository.OpenDB(ctx, cfg.DBDriver, cfg.GetDBConnString())
	if err != nil {
		log.WithError(err).Fatal("connecting to database")
	}

	if err := repository.EnsureSchema(ctx, db); err != nil {
		log.WithError(err).Fatal("preparing database schema")
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Error("closing database")
		}
	}

	return repository.NewPersonaRepository(db), db, closeDB
}
