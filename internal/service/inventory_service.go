package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/slotfleet/maintenance-service/internal/domain"
	"github.com/slotfleet/maintenance-service/internal/repository"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// InventoryService coordinates spare-part stock CRUD.
type InventoryService struct {
	inventory repository.InventoryRepository
	parts     repository.PartRepository
	locations repository.LocationRepository
}

// NewInventoryService constructs the service.
func NewInventoryService(
	inventory repository.InventoryRepository,
	parts repository.PartRepository,
	locations repository.LocationRepository,
) *InventoryService {
	return &InventoryService{inventory: inventory, parts: parts, locations: locations}
}

// InventoryCreateInput describes a stock payload.
type InventoryCreateInput struct {
	PartID      int64
	LocationID  int64
	Quantity    int
	MinQuantity int
}

// InventoryUpdateInput is a merge-patch; nil fields are left untouched.
type InventoryUpdateInput struct {
	Quantity    *int
	MinQuantity *int
}

// List returns all stock records.
func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.InventoryItem{}
	}
	return items, nil
}

// Get loads one stock record.
func (s *InventoryService) Get(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	item, err := s.inventory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Registro de inventario no encontrado")
		}
		return nil, err
	}
	return item, nil
}

// Create validates both references, rejecting a duplicate part+location pair.
func (s *InventoryService) Create(ctx context.Context, input InventoryCreateInput) (*domain.InventoryItem, error) {
	if input.Quantity < 0 || input.MinQuantity < 0 {
		return nil, apperrors.NewValidationError("Las cantidades no pueden ser negativas")
	}
	if _, err := s.parts.GetByID(ctx, input.PartID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("Repuesto no encontrado")
		}
		return nil, err
	}
	if _, err := s.locations.GetByID(ctx, input.LocationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("Ubicación no encontrada")
		}
		return nil, err
	}
	if _, err := s.inventory.GetByPartAndLocation(ctx, input.PartID, input.LocationID); err == nil {
		return nil, apperrors.NewConflict("Ya existe inventario para ese repuesto en esa ubicación")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	item := &domain.InventoryItem{
		PartID:      input.PartID,
		LocationID:  input.LocationID,
		Quantity:    input.Quantity,
		MinQuantity: input.MinQuantity,
	}
	if err := s.inventory.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies the provided fields.
func (s *InventoryService) Update(ctx context.Context, id int64, input InventoryUpdateInput) (*domain.InventoryItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, apperrors.NewValidationError("Las cantidades no pueden ser negativas")
		}
		item.Quantity = *input.Quantity
	}
	if input.MinQuantity != nil {
		if *input.MinQuantity < 0 {
			return nil, apperrors.NewValidationError("Las cantidades no pueden ser negativas")
		}
		item.MinQuantity = *input.MinQuantity
	}

	if err := s.inventory.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a stock record, returning the removed row.
func (s *InventoryService) Delete(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.inventory.Delete(ctx, id); err != nil {
		return nil, err
	}
	return item, nil
}
