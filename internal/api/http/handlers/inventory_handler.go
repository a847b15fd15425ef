package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/slotfleet/maintenance-service/internal/api/dto"
	"github.com/slotfleet/maintenance-service/internal/service"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// PartsHandler manages spare-part catalog endpoints.
type PartsHandler struct {
	service *service.PartService
}

// NewPartsHandler constructs handler.
func NewPartsHandler(partService *service.PartService) *PartsHandler {
	return &PartsHandler{service: partService}
}

// List GET /api/repuesto.
func (h *PartsHandler) List(c *fiber.Ctx) error {
	parts, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PartResponse, 0, len(parts))
	for i := range parts {
		items = append(items, dto.NewPartResponse(&parts[i]))
	}
	return c.JSON(items)
}

// Get GET /api/repuesto/:id.
func (h *PartsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	part, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPartResponse(part))
}

// Create POST /api/repuesto.
func (h *PartsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}
	part, err := h.service.Create(c.Context(), service.PartCreateInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		SupplierID:  req.SupplierID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewPartResponse(part))
}

// Update PUT /api/repuesto/:id.
func (h *PartsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}
	part, err := h.service.Update(c.Context(), id, service.PartUpdateInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		SupplierID:  req.SupplierID,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPartResponse(part))
}

// Delete DELETE /api/repuesto/:id.
func (h *PartsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	part, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPartResponse(part))
}

// InventoryHandler manages per-venue stock endpoints.
type InventoryHandler struct {
	service *service.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: inventoryService}
}

// List GET /api/inventario.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	records, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.InventoryResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewInventoryResponse(&records[i]))
	}
	return c.JSON(items)
}

// Get GET /api/inventario/:id.
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryResponse(item))
}

// Create POST /api/inventario.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}
	item, err := h.service.Create(c.Context(), service.InventoryCreateInput{
		PartID:      req.PartID,
		LocationID:  req.LocationID,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewInventoryResponse(item))
}

// Update PUT /api/inventario/:id.
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}
	item, err := h.service.Update(c.Context(), id, service.InventoryUpdateInput{
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryResponse(item))
}

// Delete DELETE /api/inventario/:id.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryResponse(item))
}
