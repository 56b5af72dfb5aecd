package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// PrescriptionPayload is the prescription shape accepted both on its own
// endpoint and nested inside customer creation. The total_amount field is
// accepted for backward compatibility but the stored total is always
// recomputed from the line items.
type PrescriptionPayload struct {
	Note        string          `json:"note"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Details     []DetailPayload `json:"prescription_details"`
}

func (p PrescriptionPayload) Validate() error {
	return validation.ValidateStruct(
		&p,
		validation.Field(&p.Note, validation.Length(0, 500)),
		validation.Field(&p.Details, validation.Required),
	)
}

type DetailPayload struct {
	MedicationID uint `json:"medication_id"`
	Count        int  `json:"count"`
}

func (d DetailPayload) Validate() error {
	return validation.ValidateStruct(
		&d,
		validation.Field(&d.MedicationID, validation.Required),
		validation.Field(&d.Count, validation.Required, validation.Min(1)),
	)
}

type CreatePrescriptionRequest struct {
	CustomerID uint `json:"customer_id"`
	PrescriptionPayload
}

func (req *CreatePrescriptionRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.CustomerID, validation.Required),
	); err != nil {
		return err
	}

	return req.PrescriptionPayload.Validate()
}

type UpdatePrescriptionRequest struct {
	Note string `json:"note"`
}

func (req *UpdatePrescriptionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Note, validation.Length(0, 500)),
	)
}
