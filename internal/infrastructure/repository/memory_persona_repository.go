package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/JosueCumpa/crud-personas/internal/domain"
)

// memoryPersonaRepository guarda las personas en memoria. El email único se
// verifica bajo el mismo lock que la escritura
type memoryPersonaRepository struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]domain.Persona
}

// NewMemoryPersonaRepository crea un repositorio de personas en memoria
func NewMemoryPersonaRepository() domain.PersonaRepository {
	return &memoryPersonaRepository{
		nextID:  1,
		records: make(map[int64]domain.Persona),
	}
}

func (r *memoryPersonaRepository) FindAll(_ context.Context) ([]domain.Persona, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(), nil
}

func (r *memoryPersonaRepository) FindAllPaged(_ context.Context, req domain.PageRequest) (domain.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sorted()
	start := req.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if req.Size < end-start {
		end = start + req.Size
	}

	return domain.NewPage(all[start:end], req, int64(len(all))), nil
}

func (r *memoryPersonaRepository) FindByID(_ context.Context, id int64) (*domain.Persona, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memoryPersonaRepository) Save(_ context.Context, persona domain.Persona) (domain.Persona, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !persona.IsNew() {
		if _, ok := r.records[persona.ID]; !ok {
			return domain.Persona{}, fmt.Errorf("persona con ID %d: %w", persona.ID, domain.ErrRecordNotFound)
		}
	}

	if r.emailTaken(persona.Email, persona.ID) {
		return domain.Persona{}, fmt.Errorf("error al guardar persona: %w", domain.ErrUniqueViolation)
	}

	if persona.IsNew() {
		persona.ID = r.nextID
		r.nextID++
	}
	r.records[persona.ID] = persona

	return persona, nil
}

func (r *memoryPersonaRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.emailTaken(email, 0), nil
}

func (r *memoryPersonaRepository) ExistsByEmailExcludingID(_ context.Context, email string, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.emailTaken(email, id), nil
}

func (r *memoryPersonaRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, id)
	return nil
}

// emailTaken debe llamarse con el lock tomado
func (r *memoryPersonaRepository) emailTaken(email string, excludeID int64) bool {
	for id, p := range r.records {
		if id != excludeID && p.Email == email {
			return true
		}
	}
	return false
}

func (r *memoryPersonaRepository) sorted() []domain.Persona {
	personas := make([]domain.Persona, 0, len(r.records))
	for _, p := range r.records {
		personas = append(personas, p)
	}
	sort.Slice(personas, func(i, j int) bool { return personas[i].ID < personas[j].ID })
	return personas
}
