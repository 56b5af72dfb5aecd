package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateMedicationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

func (req *CreateMedicationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 500)),
		validation.Field(&req.UnitPrice, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}

type UpdateMedicationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

func (req *UpdateMedicationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 500)),
		validation.Field(&req.UnitPrice, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}
