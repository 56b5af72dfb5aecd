package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SignupRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     int    `json:"role"`
	Password string `json:"password"`
}

func (req *SignupRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Role, validation.Required, validation.In(1, 2, 3)),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 72)),
	)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required),
		validation.Field(&req.Password, validation.Required, validation.Length(8, 72)),
	)
}
