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

// ReportsHandler manages client fault-report endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// List GET /api/reportes-cliente. A cliente only sees their own reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	filter := repository.ReportFilter{}
	if principal.Role == domain.RoleCliente {
		filter.ClientID = &principal.UserID
	}
	if estado := c.Query("estado"); estado != "" {
		status := domain.ReportStatus(estado)
		filter.Status = &status
	}
	if maquina := c.Query("maquina_id"); maquina != "" {
		if id, err := strconv.ParseInt(maquina, 10, 64); err == nil {
			filter.MachineID = &id
		}
	}

	reports, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, dto.NewReportResponse(&reports[i]))
	}
	return c.JSON(items)
}

// Get GET /api/reportes-cliente/:id.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	report, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	if principal.Role == domain.RoleCliente && report.ClientID != principal.UserID {
		return apperrors.NewForbidden("No tiene permisos para acceder a este recurso")
	}
	return c.JSON(dto.NewReportResponse(report))
}

// Create POST /api/reportes-cliente. The reporter is taken from the token.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}

	report, err := h.service.Create(c.Context(), principal.UserID, service.ReportCreateInput{
		MachineID:   req.MachineID,
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewReportResponse(report))
}

// Update PUT /api/reportes-cliente/:id.
func (h *ReportsHandler) Update(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Cuerpo de la petición inválido")
	}

	report, err := h.service.Update(c.Context(), id, principal.UserID, service.ReportUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReportResponse(report))
}

// Delete DELETE /api/reportes-cliente/:id.
func (h *ReportsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	report, err := h.service.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReportResponse(report))
}
