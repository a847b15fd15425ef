package dto

import (
	"time"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// CreateWorkOrderRequest payload.
type CreateWorkOrderRequest struct {
	MachineID   int64           `json:"maquina_id"`
	ReportID    *int64          `json:"reporte_id"`
	Description string          `json:"descripcion"`
	Severity    domain.Severity `json:"severidad"`
}

// UpdateWorkOrderRequest carries a merge-patch; absent fields stay nil.
type UpdateWorkOrderRequest struct {
	Description *string                 `json:"descripcion"`
	Severity    *domain.Severity        `json:"severidad"`
	Status      *domain.WorkOrderStatus `json:"estado"`
}

// WorkOrderResponse response.
type WorkOrderResponse struct {
	ID             int64                  `json:"id"`
	Code           string                 `json:"codigo"`
	MachineID      int64                  `json:"maquina_id"`
	ReportID       *int64                 `json:"reporte_id"`
	Description    string                 `json:"descripcion"`
	Severity       domain.Severity        `json:"severidad"`
	Status         domain.WorkOrderStatus `json:"estado"`
	EstimatedHours int                    `json:"horas_estimadas"`
	CreatedBy      *int64                 `json:"creado_por"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// NewWorkOrderResponse maps the domain work order.
func NewWorkOrderResponse(order *domain.WorkOrder) WorkOrderResponse {
	return WorkOrderResponse{
		ID:             order.ID,
		Code:           order.Code,
		MachineID:      order.MachineID,
		ReportID:       order.ReportID,
		Description:    order.Description,
		Severity:       order.Severity,
		Status:         order.Status,
		EstimatedHours: order.EstimatedHours,
		CreatedBy:      order.CreatedBy,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}
