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

// PartService coordinates spare-part catalog CRUD.
type PartService struct {
	parts     repository.PartRepository
	suppliers repository.SupplierRepository
}

// NewPartService constructs the service.
func NewPartService(parts repository.PartRepository, suppliers repository.SupplierRepository) *PartService {
	return &PartService{parts: parts, suppliers: suppliers}
}

// PartCreateInput describes a spare-part payload.
type PartCreateInput struct {
	Code        string
	Name        string
	Description string
	UnitPrice   float64
	SupplierID  *int64
}

// PartUpdateInput is a merge-patch; nil fields are left untouched.
type PartUpdateInput struct {
	Code        *string
	Name        *string
	Description *string
	UnitPrice   *float64
	SupplierID  *int64
}

// List returns every catalog entry.
func (s *PartService) List(ctx context.Context) ([]domain.Part, error) {
	parts, err := s.parts.List(ctx)
	if err != nil {
		return nil, err
	}
	if parts == nil {
		parts = []domain.Part{}
	}
	return parts, nil
}

// Get loads one catalog entry.
func (s *PartService) Get(ctx context.Context, id int64) (*domain.Part, error) {
	part, err := s.parts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Repuesto no encontrado")
		}
		return nil, err
	}
	return part, nil
}

// Create validates required fields and the supplier reference before insert.
func (s *PartService) Create(ctx context.Context, input PartCreateInput) (*domain.Part, error) {
	if strings.TrimSpace(input.Code) == "" || strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("Faltan campos obligatorios: codigo, nombre")
	}
	if input.UnitPrice < 0 {
		return nil, apperrors.NewValidationError("El precio unitario no puede ser negativo")
	}
	if err := s.checkSupplier(ctx, input.SupplierID); err != nil {
		return nil, err
	}

	part := &domain.Part{
		Code:        strings.TrimSpace(input.Code),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		UnitPrice:   input.UnitPrice,
		SupplierID:  input.SupplierID,
	}
	if err := s.parts.Create(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// Update applies the provided fields.
func (s *PartService) Update(ctx context.Context, id int64, input PartUpdateInput) (*domain.Part, error) {
	part, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Code != nil {
		part.Code = *input.Code
	}
	if input.Name != nil {
		part.Name = *input.Name
	}
	if input.Description != nil {
		part.Description = *input.Description
	}
	if input.UnitPrice != nil {
		if *input.UnitPrice < 0 {
			return nil, apperrors.NewValidationError("El precio unitario no puede ser negativo")
		}
		part.UnitPrice = *input.UnitPrice
	}
	if input.SupplierID != nil {
		if err := s.checkSupplier(ctx, input.SupplierID); err != nil {
			return nil, err
		}
		part.SupplierID = input.SupplierID
	}

	if err := s.parts.Update(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// Delete removes a catalog entry, returning the removed row.
func (s *PartService) Delete(ctx context.Context, id int64) (*domain.Part, error) {
	part, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.parts.Delete(ctx, id); err != nil {
		return nil, err
	}
	return part, nil
}

func (s *PartService) checkSupplier(ctx context.Context, supplierID *int64) error {
	if supplierID == nil {
		return nil
	}
	if _, err := s.suppliers.GetByID(ctx, *supplierID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("Proveedor no encontrado")
		}
		return err
	}
	return nil
}
