package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/slotfleet/maintenance-service/internal/domain"
	"github.com/slotfleet/maintenance-service/internal/repository"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// TechnicianService coordinates technician CRUD.
type TechnicianService struct {
	technicians repository.TechnicianRepository
}

// NewTechnicianService constructs the service.
func NewTechnicianService(technicians repository.TechnicianRepository) *TechnicianService {
	return &TechnicianService{technicians: technicians}
}

// TechnicianCreateInput describes a technician payload.
type TechnicianCreateInput struct {
	Name      string
	Email     string
	Phone     string
	Specialty string
}

// TechnicianUpdateInput is a merge-patch; nil fields are left untouched.
type TechnicianUpdateInput struct {
	Name      *string
	Email     *string
	Phone     *string
	Specialty *string
	Active    *bool
}

// List returns every technician.
func (s *TechnicianService) List(ctx context.Context) ([]domain.Technician, error) {
	technicians, err := s.technicians.List(ctx)
	if err != nil {
		return nil, err
	}
	if technicians == nil {
		technicians = []domain.Technician{}
	}
	return technicians, nil
}

// Get loads one technician.
func (s *TechnicianService) Get(ctx context.Context, id int64) (*domain.Technician, error) {
	tech, err := s.technicians.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Técnico no encontrado")
		}
		return nil, err
	}
	return tech, nil
}

// Create validates required fields before insert.
func (s *TechnicianService) Create(ctx context.Context, input TechnicianCreateInput) (*domain.Technician, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("Faltan campos obligatorios: nombre")
	}

	tech := &domain.Technician{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Specialty: strings.TrimSpace(input.Specialty),
		Active:    true,
	}
	if err := s.technicians.Create(ctx, tech); err != nil {
		return nil, err
	}
	return tech, nil
}

// Update applies the provided fields.
func (s *TechnicianService) Update(ctx context.Context, id int64, input TechnicianUpdateInput) (*domain.Technician, error) {
	tech, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tech.Name = *input.Name
	}
	if input.Email != nil {
		tech.Email = *input.Email
	}
	if input.Phone != nil {
		tech.Phone = *input.Phone
	}
	if input.Specialty != nil {
		tech.Specialty = *input.Specialty
	}
	if input.Active != nil {
		tech.Active = *input.Active
	}

	if err := s.technicians.Update(ctx, tech); err != nil {
		return nil, err
	}
	return tech, nil
}

// Delete removes a technician, returning the removed row.
func (s *TechnicianService) Delete(ctx context.Context, id int64) (*domain.Technician, error) {
	tech, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.technicians.Delete(ctx, id); err != nil {
		return nil, err
	}
	return tech, nil
}
