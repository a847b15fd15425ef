package domain

import "time"

// FinanceEntryType separates income from expenses in the ledger.
type FinanceEntryType string

const (
	FinanceEntryIncome  FinanceEntryType = "ingreso"
	FinanceEntryExpense FinanceEntryType = "egreso"
)

// FinanceEntry is a row in the ledger. Client-linked entries are visible to
// that client; everything else is admin-only.
type FinanceEntry struct {
	ID          int64
	Type        FinanceEntryType
	Concept     string
	Amount      float64
	ClientID    *int64
	MachineID   *int64
	EntryDate   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
