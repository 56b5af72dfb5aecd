package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCustomerRequest struct {
	Name          string                `json:"name"`
	NIC           string                `json:"nic"`
	Age           int                   `json:"age"`
	Mobile        string                `json:"mobile"`
	Address       string                `json:"address"`
	Prescriptions []PrescriptionPayload `json:"prescriptions"`
}

func (req *CreateCustomerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.NIC, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.Age, validation.Min(0), validation.Max(150)),
		validation.Field(&req.Mobile, validation.Required, validation.Length(7, 15)),
		validation.Field(&req.Address, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Prescriptions),
	)
}

type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	NIC     string `json:"nic"`
	Age     int    `json:"age"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

func (req *UpdateCustomerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.NIC, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.Age, validation.Min(0), validation.Max(150)),
		validation.Field(&req.Mobile, validation.Required, validation.Length(7, 15)),
		validation.Field(&req.Address, validation.Required, validation.Length(1, 200)),
	)
}
