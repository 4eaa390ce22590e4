package domain

import "context"

// Persona representa una persona registrada en el sistema
type Persona struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

// NewPersona crea una persona aún no persistida (sin ID)
func NewPersona(nombre, email string) Persona {
	return Persona{Nombre: nombre, Email: email}
}

// WithNombreAndEmail devuelve una copia con nuevo nombre y email, conservando el ID
func (p Persona) WithNombreAndEmail(nombre, email string) Persona {
	return Persona{ID: p.ID, Nombre: nombre, Email: email}
}

// IsNew indica si la persona todavía no tiene ID asignado por el repositorio
func (p Persona) IsNew() bool {
	return p.ID == 0
}

// PersonaRepository define las operaciones de persistencia de personas
type PersonaRepository interface {
	// FindAll obtiene todas las personas ordenadas por ID ascendente
	FindAll(ctx context.Context) ([]Persona, error)
	// FindAllPaged obtiene una página de personas ordenadas por ID ascendente
	FindAllPaged(ctx context.Context, req PageRequest) (Page, error)
	// FindByID busca una persona por su ID. Devuelve nil, nil si no existe
	FindByID(ctx context.Context, id int64) (*Persona, error)
	// Save inserta la persona si no tiene ID o la sobrescribe si ya lo tiene.
	// Devuelve ErrUniqueViolation si el email ya existe en otro registro
	Save(ctx context.Context, persona Persona) (Persona, error)
	// ExistsByEmail indica si alguna persona tiene el email dado
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ExistsByEmailExcludingID indica si otra persona distinta de id tiene el email dado
	ExistsByEmailExcludingID(ctx context.Context, email string, id int64) (bool, error)
	// DeleteByID elimina la persona con el ID dado
	DeleteByID(ctx context.Context, id int64) error
}
