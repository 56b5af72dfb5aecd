package dao

import (
	"errors"
	"fmt"
)

var (
	ErrUsernameExists             = errors.New("username already taken")
	ErrUserNotFound               = errors.New("user not found")
	ErrMedicationNotFound         = errors.New("medication not found")
	ErrCustomerNotFound           = errors.New("customer not found")
	ErrPrescriptionNotFound       = errors.New("prescription not found")
	ErrPrescriptionDetailNotFound = errors.New("prescription detail not found")
	ErrMedicationInUse            = errors.New("medication is referenced by a prescription")
)

// InsufficientStockError reports a stock reservation that would drive a
// medication's quantity below zero. The adjuster performs no write when
// returning it.
type InsufficientStockError struct {
	MedicationID uint
	Name         string
	Requested    int
	Available    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("medication %q (id %d) quantity not enough: requested %d, available %d",
		e.Name, e.MedicationID, e.Requested, e.Available)
}
