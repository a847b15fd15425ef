package dto

import (
	"time"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// CreatePartRequest payload.
type CreatePartRequest struct {
	Code        string  `json:"codigo"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	UnitPrice   float64 `json:"precio_unitario"`
	SupplierID  *int64  `json:"proveedor_id"`
}

// UpdatePartRequest carries a merge-patch; absent fields stay nil.
type UpdatePartRequest struct {
	Code        *string  `json:"codigo"`
	Name        *string  `json:"nombre"`
	Description *string  `json:"descripcion"`
	UnitPrice   *float64 `json:"precio_unitario"`
	SupplierID  *int64   `json:"proveedor_id"`
}

// PartResponse response.
type PartResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"codigo"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	UnitPrice   float64   `json:"precio_unitario"`
	SupplierID  *int64    `json:"proveedor_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPartResponse maps the domain part.
func NewPartResponse(part *domain.Part) PartResponse {
	return PartResponse{
		ID:          part.ID,
		Code:        part.Code,
		Name:        part.Name,
		Description: part.Description,
		UnitPrice:   part.UnitPrice,
		SupplierID:  part.SupplierID,
		CreatedAt:   part.CreatedAt,
		UpdatedAt:   part.UpdatedAt,
	}
}

// CreateInventoryRequest payload.
type CreateInventoryRequest struct {
	PartID      int64 `json:"repuesto_id"`
	LocationID  int64 `json:"ubicacion_id"`
	Quantity    int   `json:"cantidad"`
	MinQuantity int   `json:"cantidad_minima"`
}

// UpdateInventoryRequest carries a merge-patch; absent fields stay nil.
type UpdateInventoryRequest struct {
	Quantity    *int `json:"cantidad"`
	MinQuantity *int `json:"cantidad_minima"`
}

// InventoryResponse response.
type InventoryResponse struct {
	ID          int64     `json:"id"`
	PartID      int64     `json:"repuesto_id"`
	LocationID  int64     `json:"ubicacion_id"`
	Quantity    int       `json:"cantidad"`
	MinQuantity int       `json:"cantidad_minima"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewInventoryResponse maps the domain stock record.
func NewInventoryResponse(item *domain.InventoryItem) InventoryResponse {
	return InventoryResponse{
		ID:          item.ID,
		PartID:      item.PartID,
		LocationID:  item.LocationID,
		Quantity:    item.Quantity,
		MinQuantity: item.MinQuantity,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
