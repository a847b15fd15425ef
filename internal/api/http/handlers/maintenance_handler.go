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

// MaintenanceHandler manages maintenance-record endpoints.
type MaintenanceHandler struct {
	service *service.MaintenanceService
}

// NewMaintenanceHandler constructs handler.
func NewMaintenanceHandler(maintenanceService *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: maintenanceService}
}

// List GET /api/mantenimientos.
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	filter := repository.MaintenanceFilter{}
	if tipo := c.Query("tipo"); tipo != "" {
		maintenanceType := domain.MaintenanceType(tipo)
		filter.Type = &maintenanceType
	}
	if orden := c.Query("orden_id"); orden != "" {
		if id, err := strconv.ParseInt(orden, 10, 64); err == nil {
			filter.WorkOrderID = &id
		}
	}
	if tecnico := c.Query("tecnico_id"); tecnico != "" {
		if id, err := strconv.ParseInt(tecnico, 10, 64); err == nil {
			filter.TechnicianID = &id
		}
	}

	records, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.MaintenanceResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewMaintenanceResponse(&records[i]))
	}
	return c.JSON(items)
}

// Get GET /api/mantenimientos/:id.
func (h *MaintenanceHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	record, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMaintenanceResponse(record))
}

// Create POST /api/mantenimientos.
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}

	record, err := h.service.Create(c.Context(), principal.UserID, service.MaintenanceCreateInput{
		WorkOrderID:   req.WorkOrderID,
		TechnicianID:  req.TechnicianID,
		Type:          req.Type,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		PerformedDate: req.PerformedDate,
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewMaintenanceResponse(record))
}

// Update PUT /api/mantenimientos/:id.
func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}

	record, err := h.service.Update(c.Context(), id, service.MaintenanceUpdateInput{
		Type:          req.Type,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		PerformedDate: req.PerformedDate,
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMaintenanceResponse(record))
}

// Delete DELETE /api/mantenimientos/:id.
func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	record, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMaintenanceResponse(record))
}
