package domain

import "time"

// Technician is a field engineer who executes maintenance work.
type Technician struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Specialty string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
