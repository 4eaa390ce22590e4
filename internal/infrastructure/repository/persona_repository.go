package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/JosueCumpa/crud-personas/internal/domain"
)

type personaRepository struct {
	db *sql.DB
}

// NewPersonaRepository crea una nueva instancia del repositorio de personas sobre PostgreSQL
func NewPersonaRepository(db *sql.DB) domain.PersonaRepository {
	return &personaRepository{db: db}
}

// FindAll obtiene todas las personas ordenadas por ID
func (r *personaRepository) FindAll(ctx context.Context) ([]domain.Persona, error) {
	query := `SELECT id, nombre, email FROM personas ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error al consultar personas: %w", err)
	}
	defer rows.Close()

	return scanPersonas(rows)
}

// FindAllPaged obtiene una página de personas y el total de registros
func (r *personaRepository) FindAllPaged(ctx context.Context, req domain.PageRequest) (domain.Page, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM personas`).Scan(&total); err != nil {
		return domain.Page{}, fmt.Errorf("error al contar personas: %w", err)
	}

	query := `SELECT id, nombre, email FROM personas ORDER BY id ASC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, req.Size, req.Offset())
	if err != nil {
		return domain.Page{}, fmt.Errorf("error al consultar página de personas: %w", err)
	}
	defer rows.Close()

	personas, err := scanPersonas(rows)
	if err != nil {
		return domain.Page{}, err
	}

	return domain.NewPage(personas, req, total), nil
}

// FindByID busca una persona por su ID
func (r *personaRepository) FindByID(ctx context.Context, id int64) (*domain.Persona, error) {
	query := `SELECT id, nombre, email FROM personas WHERE id = $1`

	persona := &domain.Persona{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&persona.ID, &persona.Nombre, &persona.Email)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("error al obtener persona: %w", err)
	}

	return persona, nil
}

// Save inserta una persona nueva o actualiza nombre y email de una existente
func (r *personaRepository) Save(ctx context.Context, persona domain.Persona) (domain.Persona, error) {
	if persona.IsNew() {
		return r.insert(ctx, persona)
	}
	return r.update(ctx, persona)
}

func (r *personaRepository) insert(ctx context.Context, persona domain.Persona) (domain.Persona, error) {
	query := `INSERT INTO personas (nombre, email) VALUES ($1, $2) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, persona.Nombre, persona.Email).Scan(&persona.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Persona{}, fmt.Errorf("error al crear persona: %w", domain.ErrUniqueViolation)
		}
		return domain.Persona{}, fmt.Errorf("error al crear persona: %w", err)
	}

	return persona, nil
}

func (r *personaRepository) update(ctx context.Context, persona domain.Persona) (domain.Persona, error) {
	query := `UPDATE personas SET nombre = $1, email = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, persona.Nombre, persona.Email, persona.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Persona{}, fmt.Errorf("error al actualizar persona: %w", domain.ErrUniqueViolation)
		}
		return domain.Persona{}, fmt.Errorf("error al actualizar persona: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Persona{}, fmt.Errorf("error al verificar actualización: %w", err)
	}

	if rowsAffected == 0 {
		return domain.Persona{}, fmt.Errorf("persona con ID %d: %w", persona.ID, domain.ErrRecordNotFound)
	}

	return persona, nil
}

// ExistsByEmail indica si el email ya está registrado
func (r *personaRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM personas WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("error al verificar email: %w", err)
	}

	return exists, nil
}

// ExistsByEmailExcludingID indica si el email está registrado por una persona distinta de id
func (r *personaRepository) ExistsByEmailExcludingID(ctx context.Context, email string, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM personas WHERE email = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("error al verificar email: %w", err)
	}

	return exists, nil
}

// DeleteByID elimina una persona por su ID
func (r *personaRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM personas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error al eliminar persona: %w", err)
	}
	return nil
}

func scanPersonas(rows *sql.Rows) ([]domain.Persona, error) {
	personas := []domain.Persona{}
	for rows.Next() {
		var p domain.Persona
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Email); err != nil {
			return nil, fmt.Errorf("error al leer persona: %w", err)
		}
		personas = append(personas, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error al recorrer personas: %w", err)
	}

	return personas, nil
}
