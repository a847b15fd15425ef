package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/slotfleet/maintenance-service/internal/api/dto"
	"github.com/slotfleet/maintenance-service/internal/domain"
	"github.com/slotfleet/maintenance-service/internal/repository"
	"github.com/slotfleet/maintenance-service/internal/service"
	apperrors "github.com/slotfleet/maintenance-service/pkg/util"
)

// FinanceHandler manages ledger and invoice endpoints.
type FinanceHandler struct {
	service *service.FinanceService
}

// NewFinanceHandler constructs handler.
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: financeService}
}

// List GET /api/finanzas. A cliente only sees their own entries.
func (h *FinanceHandler) List(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	filter := repository.FinanceFilter{}
	if principal.Role == domain.RoleCliente {
		filter.ClientID = &principal.UserID
	}
	if tipo := c.Query("tipo"); tipo != "" {
		entryType := domain.FinanceEntryType(tipo)
		filter.Type = &entryType
	}

	entries, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.FinanceResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewFinanceResponse(&entries[i]))
	}
	return c.JSON(items)
}

// Get GET /api/finanzas/:id.
func (h *FinanceHandler) Get(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	entry, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	if principal.Role == domain.RoleCliente {
		if entry.ClientID == nil || *entry.ClientID != principal.UserID {
			return apperrors.NewForbidden("No tiene permisos para acceder a este recurso")
		}
	}
	return c.JSON(dto.NewFinanceResponse(entry))
}

// Create POST /api/finanzas.
func (h *FinanceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateFinanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}
	entry, err := h.service.Create(c.Context(), service.FinanceCreateInput{
		Type:      req.Type,
		Concept:   req.Concept,
		Amount:    req.Amount,
		ClientID:  req.ClientID,
		MachineID: req.MachineID,
		EntryDate: req.EntryDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewFinanceResponse(entry))
}

// Update PUT /api/finanzas/:id.
func (h *FinanceHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateFinanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}
	entry, err := h.service.Update(c.Context(), id, service.FinanceUpdateInput{
		Type:      req.Type,
		Concept:   req.Concept,
		Amount:    req.Amount,
		ClientID:  req.ClientID,
		MachineID: req.MachineID,
		EntryDate: req.EntryDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFinanceResponse(entry))
}

// Delete DELETE /api/finanzas/:id.
func (h *FinanceHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	entry, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFinanceResponse(entry))
}

// Invoice GET /api/finanzas/:id/factura. Streams the rendered PDF; a
// cliente can only fetch invoices for their own entries.
func (h *FinanceHandler) Invoice(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var clientScope *int64
	if principal.Role == domain.RoleCliente {
		clientScope = &principal.UserID
	}

	document, err := h.service.Invoice(c.Context(), id, clientScope)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=factura-%d.pdf", id))
	return c.Send(document)
}
