package dto

import (
	"time"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// CreateFinanceRequest payload.
type CreateFinanceRequest struct {
	Type      domain.FinanceEntryType `json:"tipo"`
	Concept   string                  `json:"concepto"`
	Amount    float64                 `json:"monto"`
	ClientID  *int64                  `json:"cliente_id"`
	MachineID *int64                  `json:"maquina_id"`
	EntryDate time.Time               `json:"fecha"`
}

// UpdateFinanceRequest carries a merge-patch; absent fields stay nil.
type UpdateFinanceRequest struct {
	Type      *domain.FinanceEntryType `json:"tipo"`
	Concept   *string                  `json:"concepto"`
	Amount    *float64                 `json:"monto"`
	ClientID  *int64                   `json:"cliente_id"`
	MachineID *int64                   `json:"maquina_id"`
	EntryDate *time.Time               `json:"fecha"`
}

// FinanceResponse response.
type FinanceResponse struct {
	ID        int64                   `json:"id"`
	Type      domain.FinanceEntryType `json:"tipo"`
	Concept   string                  `json:"concepto"`
	Amount    float64                 `json:"monto"`
	ClientID  *int64                  `json:"cliente_id"`
	MachineID *int64                  `json:"maquina_id"`
	EntryDate time.Time               `json:"fecha"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// NewFinanceResponse maps the domain ledger entry.
func NewFinanceResponse(entry *domain.FinanceEntry) FinanceResponse {
	return FinanceResponse{
		ID:        entry.ID,
		Type:      entry.Type,
		Concept:   entry.Concept,
		Amount:    entry.Amount,
		ClientID:  entry.ClientID,
		MachineID: entry.MachineID,
		EntryDate: entry.EntryDate,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
