package domain

import "time"

// Medication is a stocked drug. UnitPrice is in minor currency units.
// Quantity never goes below zero; it is only ever changed through the
// stock adjuster.
type Medication struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnitPrice   int64     `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
