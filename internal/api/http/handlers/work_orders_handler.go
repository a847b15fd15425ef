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

// WorkOrdersHandler manages work-order endpoints.
type WorkOrdersHandler struct {
	service *service.WorkOrderService
}

// NewWorkOrdersHandler constructs handler.
func NewWorkOrdersHandler(orderService *service.WorkOrderService) *WorkOrdersHandler {
	return &WorkOrdersHandler{service: orderService}
}

// List GET /api/ordenes-trabajo.
func (h *WorkOrdersHandler) List(c *fiber.Ctx) error {
	filter := repository.WorkOrderFilter{}
	if estado := c.Query("estado"); estado != "" {
		status := domain.WorkOrderStatus(estado)
		filter.Status = &status
	}
	if severidad := c.Query("severidad"); severidad != "" {
		severity := domain.Severity(severidad)
		filter.Severity = &severity
	}
	if maquina := c.Query("maquina_id"); maquina != "" {
		if id, err := strconv.ParseInt(maquina, 10, 64); err == nil {
			filter.MachineID = &id
		}
	}

	orders, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.WorkOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, dto.NewWorkOrderResponse(&orders[i]))
	}
	return c.JSON(items)
}

// Get GET /api/ordenes-trabajo/:id.
func (h *WorkOrdersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	order, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorkOrderResponse(order))
}

// Create POST /api/ordenes-trabajo.
func (h *WorkOrdersHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateWorkOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}

	order, err := h.service.Create(c.Context(), principal.UserID, service.WorkOrderCreateInput{
		MachineID:   req.MachineID,
		ReportID:    req.ReportID,
		Description: req.Description,
		Severity:    req.Severity,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewWorkOrderResponse(order))
}

// Update PUT /api/ordenes-trabajo/:id.
func (h *WorkOrdersHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateWorkOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}

	order, err := h.service.Update(c.Context(), id, service.WorkOrderUpdateInput{
		Description: req.Description,
		Severity:    req.Severity,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorkOrderResponse(order))
}

// Delete DELETE /api/ordenes-trabajo/:id.
func (h *WorkOrdersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	order, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorkOrderResponse(order))
}
