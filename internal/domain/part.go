package domain

import "time"

// Part is a spare-part catalog entry (repuesto).
type Part struct {
	ID          int64
	Code        string
	Name        string
	Description string
	UnitPrice   float64
	SupplierID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InventoryItem tracks stock of a part at a location.
type InventoryItem struct {
	ID          int64
	PartID      int64
	LocationID  int64
	Quantity    int
	MinQuantity int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
