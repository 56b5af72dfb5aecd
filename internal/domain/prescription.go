package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prescription groups line items for one customer. TotalAmount is a
// cached aggregate: at any quiescent point it equals the sum of
// count × unit_price over the prescription's live line items.
type Prescription struct {
	ID          uint                 `json:"id"`
	CustomerID  uint                 `json:"customer_id"`
	Note        string               `json:"note"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Details     []PrescriptionDetail `json:"prescription_details,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// PrescriptionDetail is one line item: a reservation of Count units of
// a medication against a prescription.
type PrescriptionDetail struct {
	ID             uint      `json:"id"`
	PrescriptionID uint      `json:"prescription_id"`
	MedicationID   uint      `json:"medication_id"`
	Count          int       `json:"count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LineTotal is the amount this line item contributes to the owning
// prescription's total.
func (d PrescriptionDetail) LineTotal(unitPrice int64) decimal.Decimal {
	return decimal.NewFromInt(int64(d.Count)).Mul(decimal.NewFromInt(unitPrice))
}
