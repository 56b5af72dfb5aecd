package domain

import "time"

type Customer struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	NIC           string         `json:"nic"`
	Age           int            `json:"age"`
	Mobile        string         `json:"mobile"`
	Address       string         `json:"address"`
	Prescriptions []Prescription `json:"prescriptions,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
