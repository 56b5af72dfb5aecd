package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreatePrescriptionDetailRequest struct {
	PrescriptionID uint `json:"prescription_id"`
	MedicationID   uint `json:"medication_id"`
	Count          int  `json:"count"`
}

func (req *CreatePrescriptionDetailRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PrescriptionID, validation.Required),
		validation.Field(&req.MedicationID, validation.Required),
		validation.Field(&req.Count, validation.Required, validation.Min(1)),
	)
}

type UpdatePrescriptionDetailRequest struct {
	Count int `json:"count"`
}

func (req *UpdatePrescriptionDetailRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Count, validation.Required, validation.Min(1)),
	)
}
