package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/slotfleet/maintenance-service/internal/api/dto"
	"github.com/slotfleet/maintenance-service/internal/service"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// SuppliersHandler manages supplier endpoints.
type SuppliersHandler struct {
	service *service.SupplierService
}

// NewSuppliersHandler constructs handler.
func NewSuppliersHandler(supplierService *service.SupplierService) *SuppliersHandler {
	return &SuppliersHandler{service: supplierService}
}

// List GET /api/proveedor.
func (h *SuppliersHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		items = append(items, dto.NewSupplierResponse(&suppliers[i]))
	}
	return c.JSON(items)
}

// Get GET /api/proveedor/:id.
func (h *SuppliersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	supplier, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSupplierResponse(supplier))
}

// Create POST /api/proveedor.
func (h *SuppliersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}
	supplier, err := h.service.Create(c.Context(), service.SupplierCreateInput{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewSupplierResponse(supplier))
}

// Update PUT /api/proveedor/:id.
func (h *SuppliersHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}
	supplier, err := h.service.Update(c.Context(), id, service.SupplierUpdateInput{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSupplierResponse(supplier))
}

// Delete DELETE /api/proveedor/:id. Machines and parts referencing the
// supplier are detached before the row is removed.
func (h *SuppliersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	supplier, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSupplierResponse(supplier))
}

// LocationsHandler manages venue endpoints.
type LocationsHandler struct {
	service *service.LocationService
}

// NewLocationsHandler constructs handler.
func NewLocationsHandler(locationService *service.LocationService) *LocationsHandler {
	return &LocationsHandler{service: locationService}
}

// List GET /api/ubicaciones.
func (h *LocationsHandler) List(c *fiber.Ctx) error {
	locations, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.LocationResponse, 0, len(locations))
	for i := range locations {
		items = append(items, dto.NewLocationResponse(&locations[i]))
	}
	return c.JSON(items)
}

// Get GET /api/ubicaciones/:id.
func (h *LocationsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	location, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewLocationResponse(location))
}

// Create POST /api/ubicaciones.
func (h *LocationsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}
	location, err := h.service.Create(c.Context(), service.LocationCreateInput{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewLocationResponse(location))
}

// Update PUT /api/ubicaciones/:id.
func (h *LocationsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}
	location, err := h.service.Update(c.Context(), id, service.LocationUpdateInput{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Active:  req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewLocationResponse(location))
}

// Delete DELETE /api/ubicaciones/:id.
func (h *LocationsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	location, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewLocationResponse(location))
}

// TechniciansHandler manages technician roster endpoints.
type TechniciansHandler struct {
	service *service.TechnicianService
}

// NewTechniciansHandler constructs handler.
func NewTechniciansHandler(technicianService *service.TechnicianService) *TechniciansHandler {
	return &TechniciansHandler{service: technicianService}
}

// List GET /api/tecnicos.
func (h *TechniciansHandler) List(c *fiber.Ctx) error {
	technicians, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TechnicianResponse, 0, len(technicians))
	for i := range technicians {
		items = append(items, dto.NewTechnicianResponse(&technicians[i]))
	}
	return c.JSON(items)
}

// Get GET /api/tecnicos/:id.
func (h *TechniciansHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	tech, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTechnicianResponse(tech))
}

// Create POST /api/tecnicos.
func (h *TechniciansHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}
	tech, err := h.service.Create(c.Context(), service.TechnicianCreateInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTechnicianResponse(tech))
}

// Update PUT /api/tecnicos/:id.
func (h *TechniciansHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}
	tech, err := h.service.Update(c.Context(), id, service.TechnicianUpdateInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
		Active:    req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTechnicianResponse(tech))
}

// Delete DELETE /api/tecnicos/:id.
func (h *TechniciansHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	tech, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTechnicianResponse(tech))
}
