package dto

import (
	"time"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// CreateMachineRequest payload.
type CreateMachineRequest struct {
	SerialNumber string               `json:"numero_serie"`
	Brand        string               `json:"marca"`
	Model        string               `json:"modelo"`
	Type         domain.MachineType   `json:"tipo"`
	Status       domain.MachineStatus `json:"estado"`
	LocationID   *int64               `json:"ubicacion_id"`
	SupplierID   *int64               `json:"proveedor_id"`
	OwnerID      *int64               `json:"cliente_id"`
	AcquiredAt   *time.Time           `json:"fecha_adquisicion"`
}

// UpdateMachineRequest carries a merge-patch; absent fields stay nil.
type UpdateMachineRequest struct {
	SerialNumber *string               `json:"numero_serie"`
	Brand        *string               `json:"marca"`
	Model        *string               `json:"modelo"`
	Type         *domain.MachineType   `json:"tipo"`
	Status       *domain.MachineStatus `json:"estado"`
	LocationID   *int64                `json:"ubicacion_id"`
	SupplierID   *int64                `json:"proveedor_id"`
	OwnerID      *int64                `json:"cliente_id"`
	AcquiredAt   *time.Time            `json:"fecha_adquisicion"`
}

// MachineResponse response.
type MachineResponse struct {
	ID           int64                `json:"id"`
	SerialNumber string               `json:"numero_serie"`
	Brand        string               `json:"marca"`
	Model        string               `json:"modelo"`
	Type         domain.MachineType   `json:"tipo"`
	Status       domain.MachineStatus `json:"estado"`
	LocationID   *int64               `json:"ubicacion_id"`
	SupplierID   *int64               `json:"proveedor_id"`
	OwnerID      *int64               `json:"cliente_id"`
	AcquiredAt   *time.Time           `json:"fecha_adquisicion"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// NewMachineResponse maps the domain machine.
func NewMachineResponse(machine *domain.Machine) MachineResponse {
	return MachineResponse{
		ID:           machine.ID,
		SerialNumber: machine.SerialNumber,
		Brand:        machine.Brand,
		Model:        machine.Model,
		Type:         machine.Type,
		Status:       machine.Status,
		LocationID:   machine.LocationID,
		SupplierID:   machine.SupplierID,
		OwnerID:      machine.OwnerID,
		AcquiredAt:   machine.AcquiredAt,
		CreatedAt:    machine.CreatedAt,
		UpdatedAt:    machine.UpdatedAt,
	}
}
