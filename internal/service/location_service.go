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

// LocationService coordinates venue CRUD.
type LocationService struct {
	locations repository.LocationRepository
}

// NewLocationService constructs the service.
func NewLocationService(locations repository.LocationRepository) *LocationService {
	return &LocationService{locations: locations}
}

// LocationCreateInput describes a venue payload.
type LocationCreateInput struct {
	Name    string
	Address string
	City    string
}

// LocationUpdateInput is a merge-patch; nil fields are left untouched.
type LocationUpdateInput struct {
	Name    *string
	Address *string
	City    *string
	Active  *bool
}

// List returns every venue.
func (s *LocationService) List(ctx context.Context) ([]domain.Location, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []domain.Location{}
	}
	return locations, nil
}

// Get loads one venue.
func (s *LocationService) Get(ctx context.Context, id int64) (*domain.Location, error) {
	location, err := s.locations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ubicación no encontrada")
		}
		return nil, err
	}
	return location, nil
}

// Create validates required fields before insert.
func (s *LocationService) Create(ctx context.Context, input LocationCreateInput) (*domain.Location, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Address) == "" {
		return nil, apperrors.NewValidationError("Faltan campos obligatorios: nombre, direccion")
	}

	location := &domain.Location{
		Name:    strings.TrimSpace(input.Name),
		Address: strings.TrimSpace(input.Address),
		City:    strings.TrimSpace(input.City),
		Active:  true,
	}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Update applies the provided fields.
func (s *LocationService) Update(ctx context.Context, id int64, input LocationUpdateInput) (*domain.Location, error) {
	location, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		location.Name = *input.Name
	}
	if input.Address != nil {
		location.Address = *input.Address
	}
	if input.City != nil {
		location.City = *input.City
	}
	if input.Active != nil {
		location.Active = *input.Active
	}

	if err := s.locations.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete removes a venue, returning the removed row.
func (s *LocationService) Delete(ctx context.Context, id int64) (*domain.Location, error) {
	location, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.locations.Delete(ctx, id); err != nil {
		return nil, err
	}
	return location, nil
}
