package domain

import "time"

// Supplier provides machines and spare parts.
type Supplier struct {
	ID        int64
	Name      string
	TaxID     string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
