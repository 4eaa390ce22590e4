package application_test

import (
	"context"

	"github.com/JosueCumpa/crud-personas/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockPersonaRepository struct {
	mock.Mock
}

var _ domain.PersonaRepository = &mockPersonaRepository{}

func (m *mockPersonaRepository) FindAll(ctx context.Context) ([]domain.Persona, error) {
	args := m.Called(ctx)
	personas, _ := args.Get(0).([]domain.Persona)
	return personas, args.Error(1)
}

func (m *mockPersonaRepository) FindAllPaged(ctx context.Context, req domain.PageRequest) (domain.Page, error) {
	args := m.Called(ctx, req)
	page, _ := args.Get(0).(domain.Page)
	return page, args.Error(1)
}

func (m *mockPersonaRepository) FindByID(ctx context.Context, id int64) (*domain.Persona, error) {
	args := m.Called(ctx, id)
	persona, _ := args.Get(0).(*domain.Persona)
	return persona, args.Error(1)
}

func (m *mockPersonaRepository) Save(ctx context.Context, persona domain.Persona) (domain.Persona, error) {
	args := m.Called(ctx, persona)
	saved, _ := args.Get(0).(domain.Persona)
	return saved, args.Error(1)
}

func (m *mockPersonaRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockPersonaRepository) ExistsByEmailExcludingID(ctx context.Context, email string, id int64) (bool, error) {
	args := m.Called(ctx, email, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockPersonaRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
