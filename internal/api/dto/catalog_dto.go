package dto

import (
	"time"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// CreateSupplierRequest payload.
type CreateSupplierRequest struct {
	Name    string `json:"nombre"`
	TaxID   string `json:"ruc"`
	Phone   string `json:"telefono"`
	Email   string `json:"email"`
	Address string `json:"direccion"`
}

// UpdateSupplierRequest carries a merge-patch; absent fields stay nil.
type UpdateSupplierRequest struct {
	Name    *string `json:"nombre"`
	TaxID   *string `json:"ruc"`
	Phone   *string `json:"telefono"`
	Email   *string `json:"email"`
	Address *string `json:"direccion"`
}

// SupplierResponse response.
type SupplierResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nombre"`
	TaxID     string    `json:"ruc"`
	Phone     string    `json:"telefono"`
	Email     string    `json:"email"`
	Address   string    `json:"direccion"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSupplierResponse maps the domain supplier.
func NewSupplierResponse(supplier *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        supplier.ID,
		Name:      supplier.Name,
		TaxID:     supplier.TaxID,
		Phone:     supplier.Phone,
		Email:     supplier.Email,
		Address:   supplier.Address,
		CreatedAt: supplier.CreatedAt,
		UpdatedAt: supplier.UpdatedAt,
	}
}

// CreateLocationRequest payload.
type CreateLocationRequest struct {
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
	City    string `json:"ciudad"`
}

// UpdateLocationRequest carries a merge-patch; absent fields stay nil.
type UpdateLocationRequest struct {
	Name    *string `json:"nombre"`
	Address *string `json:"direccion"`
	City    *string `json:"ciudad"`
	Active  *bool   `json:"activo"`
}

// LocationResponse response.
type LocationResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nombre"`
	Address   string    `json:"direccion"`
	City      string    `json:"ciudad"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLocationResponse maps the domain location.
func NewLocationResponse(location *domain.Location) LocationResponse {
	return LocationResponse{
		ID:        location.ID,
		Name:      location.Name,
		Address:   location.Address,
		City:      location.City,
		Active:    location.Active,
		CreatedAt: location.CreatedAt,
		UpdatedAt: location.UpdatedAt,
	}
}

// CreateTechnicianRequest payload.
type CreateTechnicianRequest struct {
	Name      string `json:"nombre"`
	Email     string `json:"email"`
	Phone     string `json:"telefono"`
	Specialty string `json:"especialidad"`
}

// UpdateTechnicianRequest carries a merge-patch; absent fields stay nil.
type UpdateTechnicianRequest struct {
	Name      *string `json:"nombre"`
	Email     *string `json:"email"`
	Phone     *string `json:"telefono"`
	Specialty *string `json:"especialidad"`
	Active    *bool   `json:"activo"`
}

// TechnicianResponse response.
type TechnicianResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefono"`
	Specialty string    `json:"especialidad"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTechnicianResponse maps the domain technician.
func NewTechnicianResponse(tech *domain.Technician) TechnicianResponse {
	return TechnicianResponse{
		ID:        tech.ID,
		Name:      tech.Name,
		Email:     tech.Email,
		Phone:     tech.Phone,
		Specialty: tech.Specialty,
		Active:    tech.Active,
		CreatedAt: tech.CreatedAt,
		UpdatedAt: tech.UpdatedAt,
	}
}
