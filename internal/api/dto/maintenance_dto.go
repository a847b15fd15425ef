package dto

import (
	"time"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// CreateMaintenanceRequest payload.
type CreateMaintenanceRequest struct {
	WorkOrderID   int64                  `json:"orden_id"`
	TechnicianID  int64                  `json:"tecnico_id"`
	Type          domain.MaintenanceType `json:"tipo"`
	Description   string                 `json:"descripcion"`
	ScheduledDate time.Time              `json:"fecha_programada"`
	PerformedDate *time.Time             `json:"fecha_realizacion"`
	EstimatedCost float64                `json:"costo_estimado"`
	ActualCost    float64                `json:"costo_real"`
	Notes         string                 `json:"notas"`
}

// UpdateMaintenanceRequest carries a merge-patch; absent fields stay nil.
type UpdateMaintenanceRequest struct {
	Type          *domain.MaintenanceType `json:"tipo"`
	Description   *string                 `json:"descripcion"`
	ScheduledDate *time.Time              `json:"fecha_programada"`
	PerformedDate *time.Time              `json:"fecha_realizacion"`
	EstimatedCost *float64                `json:"costo_estimado"`
	ActualCost    *float64                `json:"costo_real"`
	Notes         *string                 `json:"notas"`
}

// MaintenanceResponse response.
type MaintenanceResponse struct {
	ID            int64                  `json:"id"`
	WorkOrderID   int64                  `json:"orden_id"`
	TechnicianID  int64                  `json:"tecnico_id"`
	Type          domain.MaintenanceType `json:"tipo"`
	Description   string                 `json:"descripcion"`
	ScheduledDate time.Time              `json:"fecha_programada"`
	PerformedDate *time.Time             `json:"fecha_realizacion"`
	EstimatedCost float64                `json:"costo_estimado"`
	ActualCost    float64                `json:"costo_real"`
	Notes         string                 `json:"notas"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// NewMaintenanceResponse maps the domain record.
func NewMaintenanceResponse(record *domain.Maintenance) MaintenanceResponse {
	return MaintenanceResponse{
		ID:            record.ID,
		WorkOrderID:   record.WorkOrderID,
		TechnicianID:  record.TechnicianID,
		Type:          record.Type,
		Description:   record.Description,
		ScheduledDate: record.ScheduledDate,
		PerformedDate: record.PerformedDate,
		EstimatedCost: record.EstimatedCost,
		ActualCost:    record.ActualCost,
		Notes:         record.Notes,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}
