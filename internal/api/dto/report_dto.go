package dto

import (
	"time"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// CreateReportRequest payload.
type CreateReportRequest struct {
	MachineID   int64           `json:"maquina_id"`
	Title       string          `json:"titulo"`
	Description string          `json:"descripcion"`
	Severity    domain.Severity `json:"severidad"`
}

// UpdateReportRequest carries a merge-patch; absent fields stay nil.
type UpdateReportRequest struct {
	Title       *string              `json:"titulo"`
	Description *string              `json:"descripcion"`
	Severity    *domain.Severity     `json:"severidad"`
	Status      *domain.ReportStatus `json:"estado"`
}

// ReportResponse response.
type ReportResponse struct {
	ID             int64               `json:"id"`
	MachineID      int64               `json:"maquina_id"`
	ClientID       int64               `json:"cliente_id"`
	Title          string              `json:"titulo"`
	Description    string              `json:"descripcion"`
	Severity       domain.Severity     `json:"severidad"`
	Status         domain.ReportStatus `json:"estado"`
	ResolutionNote *string             `json:"nota_resolucion"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// NewReportResponse maps the domain report.
func NewReportResponse(report *domain.ClientReport) ReportResponse {
	return ReportResponse{
		ID:             report.ID,
		MachineID:      report.MachineID,
		ClientID:       report.ClientID,
		Title:          report.Title,
		Description:    report.Description,
		Severity:       report.Severity,
		Status:         report.Status,
		ResolutionNote: report.ResolutionNote,
		CreatedAt:      report.CreatedAt,
		UpdatedAt:      report.UpdatedAt,
	}
}
