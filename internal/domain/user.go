package domain

import "time"

// User is an account that can authenticate against the API.
// Clients own machines; technicians and admins operate the back office.
type User struct {
	ID           int64
	Username     string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
