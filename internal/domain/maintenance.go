package domain

import "time"

// MaintenanceType distinguishes planned from reactive work.
type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventivo"
	MaintenanceCorrective MaintenanceType = "correctivo"
)

// Maintenance records work performed under a work order.
type Maintenance struct {
	ID            int64
	WorkOrderID   int64
	TechnicianID  int64
	Type          MaintenanceType
	Description   string
	ScheduledDate time.Time
	PerformedDate *time.Time
	EstimatedCost float64
	ActualCost    float64
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
