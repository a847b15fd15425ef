package domain

import "time"

// ReportStatus is the lifecycle of a client-submitted fault report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pendiente"
	ReportStatusInReview ReportStatus = "en_revision"
	ReportStatusResolved ReportStatus = "resuelto"
)

// ClientReport is a fault report filed by a machine's owning client.
// Resolving a report flips the linked machine back to Operativo.
type ClientReport struct {
	ID             int64
	MachineID      int64
	ClientID       int64
	Title          string
	Description    string
	Severity       Severity
	Status         ReportStatus
	ResolutionNote *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
