package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/slotfleet/maintenance-service/internal/domain"
	"github.com/slotfleet/maintenance-service/internal/repository"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// MachineService coordinates fleet CRUD.
type MachineService struct {
	machines  repository.MachineRepository
	locations repository.LocationRepository
	suppliers repository.SupplierRepository
	users     repository.UserRepository
}

// NewMachineService constructs the service.
func NewMachineService(
	machines repository.MachineRepository,
	locations repository.LocationRepository,
	suppliers repository.SupplierRepository,
	users repository.UserRepository,
) *MachineService {
	return &MachineService{machines: machines, locations: locations, suppliers: suppliers, users: users}
}

// MachineCreateInput describes machine creation payload.
type MachineCreateInput struct {
	SerialNumber string
	Brand        string
	Model        string
	Type         domain.MachineType
	Status       domain.MachineStatus
	LocationID   *int64
	SupplierID   *int64
	OwnerID      *int64
	AcquiredAt   *time.Time
}

// MachineUpdateInput is a merge-patch; nil fields are left untouched.
type MachineUpdateInput struct {
	SerialNumber *string
	Brand        *string
	Model        *string
	Type         *domain.MachineType
	Status       *domain.MachineStatus
	LocationID   *int64
	SupplierID   *int64
	OwnerID      *int64
	AcquiredAt   *time.Time
}

// List returns machines, scoped to the owner when the caller is a cliente.
func (s *MachineService) List(ctx context.Context, filter repository.MachineFilter) ([]domain.Machine, error) {
	machines, err := s.machines.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if machines == nil {
		machines = []domain.Machine{}
	}
	return machines, nil
}

// Get loads one machine.
func (s *MachineService) Get(ctx context.Context, id int64) (*domain.Machine, error) {
	machine, err := s.machines.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Máquina no encontrada")
		}
		return nil, err
	}
	return machine, nil
}

// Create validates required fields and foreign references before insert.
func (s *MachineService) Create(ctx context.Context, input MachineCreateInput) (*domain.Machine, error) {
	if strings.TrimSpace(input.SerialNumber) == "" || strings.TrimSpace(input.Model) == "" {
		return nil, apperrors.NewValidationError("Faltan campos obligatorios: numero_serie, modelo")
	}
	if input.Type == "" {
		input.Type = domain.MachineTypeSlot
	}
	if input.Status == "" {
		input.Status = domain.MachineStatusOperational
	}
	if err := s.checkReferences(ctx, input.LocationID, input.SupplierID, input.OwnerID); err != nil {
		return nil, err
	}

	machine := &domain.Machine{
		SerialNumber: strings.TrimSpace(input.SerialNumber),
		Brand:        strings.TrimSpace(input.Brand),
		Model:        strings.TrimSpace(input.Model),
		Type:         input.Type,
		Status:       input.Status,
		LocationID:   input.LocationID,
		SupplierID:   input.SupplierID,
		OwnerID:      input.OwnerID,
		AcquiredAt:   input.AcquiredAt,
	}
	if err := s.machines.Create(ctx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

// Update applies the provided fields and stamps updated-at.
func (s *MachineService) Update(ctx context.Context, id int64, input MachineUpdateInput) (*domain.Machine, error) {
	machine, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SerialNumber != nil {
		machine.SerialNumber = *input.SerialNumber
	}
	if input.Brand != nil {
		machine.Brand = *input.Brand
	}
	if input.Model != nil {
		machine.Model = *input.Model
	}
	if input.Type != nil {
		machine.Type = *input.Type
	}
	if input.Status != nil {
		machine.Status = *input.Status
	}
	if input.LocationID != nil {
		machine.LocationID = input.LocationID
	}
	if input.SupplierID != nil {
		machine.SupplierID = input.SupplierID
	}
	if input.OwnerID != nil {
		machine.OwnerID = input.OwnerID
	}
	if input.AcquiredAt != nil {
		machine.AcquiredAt = input.AcquiredAt
	}

	if err := s.checkReferences(ctx, machine.LocationID, machine.SupplierID, machine.OwnerID); err != nil {
		return nil, err
	}
	if err := s.machines.Update(ctx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

// Delete removes a machine, returning the removed row.
func (s *MachineService) Delete(ctx context.Context, id int64) (*domain.Machine, error) {
	machine, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.machines.Delete(ctx, id); err != nil {
		return nil, err
	}
	return machine, nil
}

func (s *MachineService) checkReferences(ctx context.Context, locationID, supplierID, ownerID *int64) error {
	if locationID != nil {
		if _, err := s.locations.GetByID(ctx, *locationID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError("Ubicación no encontrada")
			}
			return err
		}
	}
	if supplierID != nil {
		if _, err := s.suppliers.GetByID(ctx, *supplierID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError("Proveedor no encontrado")
			}
			return err
		}
	}
	if ownerID != nil {
		owner, err := s.users.GetByID(ctx, *ownerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError("Cliente no encontrado")
			}
			return err
		}
		if owner.Role != domain.RoleCliente {
			return apperrors.NewValidationError("El propietario debe tener rol cliente")
		}
	}
	return nil
}
