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

// SupplierService coordinates supplier CRUD.
type SupplierService struct {
	suppliers repository.SupplierRepository
}

// NewSupplierService constructs the service.
func NewSupplierService(suppliers repository.SupplierRepository) *SupplierService {
	return &SupplierService{suppliers: suppliers}
}

// SupplierCreateInput describes a supplier payload.
type SupplierCreateInput struct {
	Name    string
	TaxID   string
	Phone   string
	Email   string
	Address string
}

// SupplierUpdateInput is a merge-patch; nil fields are left untouched.
type SupplierUpdateInput struct {
	Name    *string
	TaxID   *string
	Phone   *string
	Email   *string
	Address *string
}

// List returns every supplier.
func (s *SupplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	return suppliers, nil
}

// Get loads one supplier.
func (s *SupplierService) Get(ctx context.Context, id int64) (*domain.Supplier, error) {
	supplier, err := s.suppliers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Proveedor no encontrado")
		}
		return nil, err
	}
	return supplier, nil
}

// Create validates required fields before insert.
func (s *SupplierService) Create(ctx context.Context, input SupplierCreateInput) (*domain.Supplier, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("Faltan campos obligatorios: nombre")
	}

	supplier := &domain.Supplier{
		Name:    strings.TrimSpace(input.Name),
		TaxID:   strings.TrimSpace(input.TaxID),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
	}
	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Update applies the provided fields.
func (s *SupplierService) Update(ctx context.Context, id int64, input SupplierUpdateInput) (*domain.Supplier, error) {
	supplier, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.TaxID != nil {
		supplier.TaxID = *input.TaxID
	}
	if input.Phone != nil {
		supplier.Phone = *input.Phone
	}
	if input.Email != nil {
		supplier.Email = *input.Email
	}
	if input.Address != nil {
		supplier.Address = *input.Address
	}

	if err := s.suppliers.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete removes a supplier after nulling out references held by machines and
// parts, returning the removed row.
func (s *SupplierService) Delete(ctx context.Context, id int64) (*domain.Supplier, error) {
	supplier, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.suppliers.DeleteWithReferences(ctx, id); err != nil {
		return nil, err
	}
	return supplier, nil
}
