package events

import (
	"time"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportCreated       EventType = "report_created"
	EventReportResolved      EventType = "report_resolved"
	EventWorkOrderCreated    EventType = "work_order_created"
	EventMaintenanceRecorded EventType = "maintenance_recorded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	ActorRole domain.Role `json:"actor_role"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportCreatedPayload payload.
type ReportCreatedPayload struct {
	ReportID  int64           `json:"report_id"`
	MachineID int64           `json:"machine_id"`
	Severity  domain.Severity `json:"severity"`
	Title     string          `json:"title"`
}

// ReportResolvedPayload payload.
type ReportResolvedPayload struct {
	ReportID  int64  `json:"report_id"`
	MachineID int64  `json:"machine_id"`
	Note      string `json:"note"`
}

// WorkOrderCreatedPayload payload.
type WorkOrderCreatedPayload struct {
	WorkOrderID int64           `json:"work_order_id"`
	Code        string          `json:"code"`
	MachineID   int64           `json:"machine_id"`
	Severity    domain.Severity `json:"severity"`
}

// MaintenanceRecordedPayload payload.
type MaintenanceRecordedPayload struct {
	MaintenanceID int64                  `json:"maintenance_id"`
	WorkOrderID   int64                  `json:"work_order_id"`
	TechnicianID  int64                  `json:"technician_id"`
	Type          domain.MaintenanceType `json:"type"`
}
