package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

// SQLSTATE de PostgreSQL para violación de restricción única
const uniqueViolationCode = "23505"

//go:embed schema.sql
var schemaSQL string

// OpenDB abre la conexión con el driver indicado ("postgres" es lib/pq, "pgx" es pgx) y verifica que responda
func OpenDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error al abrir la base de datos: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error al conectar con la base de datos: %w", err)
	}

	return db, nil
}

// EnsureSchema crea la tabla personas y su índice único si todavía no existen
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("error al crear el esquema: %w", err)
	}
	return nil
}

// isUniqueViolation reconoce la violación de restricción única de ambos drivers
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}

	return false
}
