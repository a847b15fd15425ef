package domain

import "time"

// WorkOrderStatus drives the repair lifecycle. Maintenance records can only be
// filed against an open order.
type WorkOrderStatus string

const (
	WorkOrderStatusOpen       WorkOrderStatus = "abierta"
	WorkOrderStatusInProgress WorkOrderStatus = "en_progreso"
	WorkOrderStatusCompleted  WorkOrderStatus = "completada"
	WorkOrderStatusCancelled  WorkOrderStatus = "cancelada"
)

// Severity grades how urgent a fault is.
type Severity string

const (
	SeverityLow      Severity = "baja"
	SeverityMedium   Severity = "media"
	SeverityHigh     Severity = "alta"
	SeverityCritical Severity = "critica"
)

// WorkOrder is a task record tracking repair execution against a machine.
type WorkOrder struct {
	ID             int64
	Code           string
	MachineID      int64
	ReportID       *int64
	Description    string
	Severity       Severity
	Status         WorkOrderStatus
	EstimatedHours int
	CreatedBy      *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
