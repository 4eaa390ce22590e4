package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/JosueCumpa/crud-personas/internal/domain"
	"github.com/sirupsen/logrus"
)

type PersonaService struct {
	personaRepo domain.PersonaRepository
	log         logrus.FieldLogger
}

// NewPersonaService crea una nueva instancia del servicio de personas
func NewPersonaService(personaRepo domain.PersonaRepository, log logrus.FieldLogger) *PersonaService {
	return &PersonaService{
		personaRepo: personaRepo,
		log:         log.WithField("component", "persona_service"),
	}
}

// ListAll obtiene todas las personas ordenadas por ID
func (s *PersonaService) ListAll(ctx context.Context) ([]domain.Persona, error) {
	personas, err := s.personaRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error al listar personas: %w", err)
	}
	return personas, nil
}

// ListPage obtiene una página de personas. Una página fuera de rango devuelve contenido vacío
func (s *PersonaService) ListPage(ctx context.Context, req domain.PageRequest) (domain.Page, error) {
	page, err := s.personaRepo.FindAllPaged(ctx, req)
	if err != nil {
		return domain.Page{}, fmt.Errorf("error al listar página de personas: %w", err)
	}
	return page, nil
}

// Create registra una persona nueva si su email no está en uso
func (s *PersonaService) Create(ctx context.Context, candidate domain.Persona) (domain.Persona, error) {
	exists, err := s.personaRepo.ExistsByEmail(ctx, candidate.Email)
	if err != nil {
		return domain.Persona{}, fmt.Errorf("error al crear persona: %w", err)
	}
	if exists {
		s.log.WithField("email", candidate.Email).Info("email duplicado al crear persona")
		return domain.Persona{}, domain.NewDuplicateEmailError(candidate.Email)
	}

	created, err := s.save(ctx, domain.NewPersona(candidate.Nombre, candidate.Email))
	if err != nil {
		return domain.Persona{}, err
	}

	s.log.WithField("persona_id", created.ID).Info("persona creada")
	return created, nil
}

// Update reemplaza nombre y email de la persona con el ID dado. El ID del candidato se ignora
func (s *PersonaService) Update(ctx context.Context, id int64, candidate domain.Persona) (domain.Persona, error) {
	current, err := s.personaRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Persona{}, fmt.Errorf("error al actualizar persona: %w", err)
	}
	if current == nil {
		return domain.Persona{}, domain.NewNotFoundError(id)
	}

	exists, err := s.personaRepo.ExistsByEmailExcludingID(ctx, candidate.Email, id)
	if err != nil {
		return domain.Persona{}, fmt.Errorf("error al actualizar persona: %w", err)
	}
	if exists {
		s.log.WithFields(logrus.Fields{"persona_id": id, "email": candidate.Email}).Info("email duplicado al actualizar persona")
		return domain.Persona{}, domain.NewDuplicateEmailError(candidate.Email)
	}

	updated, err := s.save(ctx, current.WithNombreAndEmail(candidate.Nombre, candidate.Email))
	if err != nil {
		return domain.Persona{}, err
	}

	s.log.WithField("persona_id", updated.ID).Info("persona actualizada")
	return updated, nil
}

// Delete elimina la persona con el ID dado
func (s *PersonaService) Delete(ctx context.Context, id int64) error {
	current, err := s.personaRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error al eliminar persona: %w", err)
	}
	if current == nil {
		return domain.NewNotFoundError(id)
	}

	if err := s.personaRepo.DeleteByID(ctx, current.ID); err != nil {
		return fmt.Errorf("error al eliminar persona: %w", err)
	}

	s.log.WithField("persona_id", current.ID).Info("persona eliminada")
	return nil
}

// save traduce las señales del repositorio: la restricción única cubre la
// carrera entre la verificación previa y la escritura
func (s *PersonaService) save(ctx context.Context, persona domain.Persona) (domain.Persona, error) {
	saved, err := s.personaRepo.Save(ctx, persona)
	switch {
	case err == nil:
		return saved, nil
	case errors.Is(err, domain.ErrUniqueViolation):
		s.log.WithField("email", persona.Email).Warn("restricción única rechazó el email tras la verificación previa")
		return domain.Persona{}, domain.NewDuplicateEmailError(persona.Email)
	case errors.Is(err, domain.ErrRecordNotFound):
		return domain.Persona{}, domain.NewNotFoundError(persona.ID)
	default:
		return domain.Persona{}, fmt.Errorf("error al guardar persona: %w", err)
	}
}
