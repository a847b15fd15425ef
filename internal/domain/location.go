package domain

import "time"

// Location is a venue where machines are installed.
type Location struct {
	ID        int64
	Name      string
	Address   string
	City      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
