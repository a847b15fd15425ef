package domain

import "time"

// MachineStatus tracks operational state of a machine on the floor.
// Values are the Spanish literals the dashboard renders verbatim.
type MachineStatus string

const (
	MachineStatusOperational MachineStatus = "Operativo"
	MachineStatusMaintenance MachineStatus = "En mantenimiento"
	MachineStatusOutOfOrder  MachineStatus = "Fuera de servicio"
)

// MachineType distinguishes the two fleet families.
type MachineType string

const (
	MachineTypeSlot  MachineType = "tragamonedas"
	MachineTypePoker MachineType = "poker"
)

// Machine is a slot or poker cabinet in the managed fleet.
type Machine struct {
	ID           int64
	SerialNumber string
	Brand        string
	Model        string
	Type         MachineType
	Status       MachineStatus
	LocationID   *int64
	SupplierID   *int64
	OwnerID      *int64
	AcquiredAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
