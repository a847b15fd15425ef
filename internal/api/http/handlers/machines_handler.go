package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/slotfleet/maintenance-service/internal/api/dto"
	"github.com/slotfleet/maintenance-service/internal/domain"
	"github.com/slotfleet/maintenance-service/internal/repository"
	"github.com/slotfleet/maintenance-service/internal/service"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// MachinesHandler manages fleet endpoints.
type MachinesHandler struct {
	service *service.MachineService
}

// NewMachinesHandler constructs handler.
func NewMachinesHandler(machineService *service.MachineService) *MachinesHandler {
	return &MachinesHandler{service: machineService}
}

// List GET /api/inventario/maquinas. A cliente only sees machines they own.
func (h *MachinesHandler) List(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	filter := repository.MachineFilter{}
	if principal.Role == domain.RoleCliente {
		filter.OwnerID = &principal.UserID
	}
	if estado := c.Query("estado"); estado != "" {
		status := domain.MachineStatus(estado)
		filter.Status = &status
	}
	if ubicacion := c.Query("ubicacion_id"); ubicacion != "" {
		if id, err := strconv.ParseInt(ubicacion, 10, 64); err == nil {
			filter.LocationID = &id
		}
	}

	machines, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.MachineResponse, 0, len(machines))
	for i := range machines {
		items = append(items, dto.NewMachineResponse(&machines[i]))
	}
	return c.JSON(items)
}

// Get GET /api/inventario/maquinas/:id.
func (h *MachinesHandler) Get(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	machine, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	if principal.Role == domain.RoleCliente {
		if machine.OwnerID == nil || *machine.OwnerID != principal.UserID {
			return apperrors.NewForbidden("No tiene permisos para acceder a este recurso")
		}
	}
	return c.JSON(dto.NewMachineResponse(machine))
}

// Create POST /api/inventario/maquinas.
func (h *MachinesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMachineRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}

	machine, err := h.service.Create(c.Context(), service.MachineCreateInput{
		SerialNumber: req.SerialNumber,
		Brand:        req.Brand,
		Model:        req.Model,
		Type:         req.Type,
		Status:       req.Status,
		LocationID:   req.LocationID,
		SupplierID:   req.SupplierID,
		OwnerID:      req.OwnerID,
		AcquiredAt:   req.AcquiredAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewMachineResponse(machine))
}

// Update PUT /api/inventario/maquinas/:id.
func (h *MachinesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateMachineRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}

	machine, err := h.service.Update(c.Context(), id, service.MachineUpdateInput{
		SerialNumber: req.SerialNumber,
		Brand:        req.Brand,
		Model:        req.Model,
		Type:         req.Type,
		Status:       req.Status,
		LocationID:   req.LocationID,
		SupplierID:   req.SupplierID,
		OwnerID:      req.OwnerID,
		AcquiredAt:   req.AcquiredAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMachineResponse(machine))
}

// Delete DELETE /api/inventario/maquinas/:id.
func (h *MachinesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	machine, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMachineResponse(machine))
}
