package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverMemory   = "memory"
)

type Config struct {
	ServerPort      string
	DBDriver        string
	DBDSN           string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSSLMode       string
	CORSOrigins     []string
	LogFormat       string
	LogLevel        string
	RateLimit       int
	ShutdownTimeout time.Duration
}

// LoadConfig lee el archivo .env (si existe), las variables de entorno y los flags del proceso
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error al leer .env: %w", err)
	}
	return Load(os.Args[1:])
}

// Load construye la configuración a partir de los argumentos dados, usando el entorno como valores por defecto
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("crud-personas", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerPort, "port", envOrDefault("SERVER_PORT", "8080"), "Port to listen on")
	fs.StringVar(&cfg.DBDriver, "db-driver", envOrDefault("DB_DRIVER", DriverPostgres), "Store driver (postgres, pgx or memory)")
	fs.StringVar(&cfg.DBDSN, "db-dsn", os.Getenv("DATABASE_URL"), "Full database DSN, overrides the individual db flags")
	fs.StringVar(&cfg.DBHost, "db-host", envOrDefault("DB_HOST", "localhost"), "Database host")
	fs.StringVar(&cfg.DBPort, "db-port", envOrDefault("DB_PORT", "5432"), "Database port")
	fs.StringVar(&cfg.DBUser, "db-user", envOrDefault("DB_USER", "postgres"), "Database user")
	fs.StringVar(&cfg.DBPassword, "db-password", envOrDefault("DB_PASSWORD", "postgres"), "Database password")
	fs.StringVar(&cfg.DBName, "db-name", envOrDefault("DB_NAME", "crud_personas"), "Database name")
	fs.StringVar(&cfg.DBSSLMode, "db-sslmode", envOrDefault("DB_SSLMODE", "disable"), "Database sslmode")
	fs.StringSliceVar(&cfg.CORSOrigins, "cors-origins", splitEnv("CORS_ORIGINS", ",", []string{"http://localhost:4200", "http://localhost:4202"}), "Allowed CORS origins (comma separated)")
	fs.StringVar(&cfg.LogFormat, "log-format", envOrDefault("LOG_FORMAT", "json"), "which log format to use")
	fs.StringVar(&cfg.LogLevel, "log-level", envOrDefault("LOG_LEVEL", "info"), "which log level to output")
	fs.IntVar(&cfg.RateLimit, "rate-limit", intEnv("RATE_LIMIT_PER_MINUTE", 0), "Max mutating requests per client per minute, 0 disables")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second), "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate verifica que los valores enumerados sean conocidos
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverPgx, DriverMemory:
	default:
		return fmt.Errorf("invalid db driver: %q", c.DBDriver)
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %q", c.LogFormat)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative: %d", c.RateLimit)
	}

	return nil
}

// GetDBConnString retorna el DSN de PostgreSQL
func (c *Config) GetDBConnString() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func envOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitEnv(key, sep string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return strings.Split(value, sep)
	}
	return fallback
}
