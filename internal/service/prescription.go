package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/repository"
)

// PrescriptionInput describes one prescription in an aggregate create.
// TotalAmount is what the caller believes the prescription is worth; the
// persisted total is always re-derived from the line items while they
// are processed, so a wrong hint cannot drift the cached aggregate.
type PrescriptionInput struct {
	Note        string
	TotalAmount decimal.Decimal
	Details     []DetailInput
}

// DetailInput is one line item of an aggregate create.
type DetailInput struct {
	MedicationID uint
	Count        int
}

type PrescriptionService struct {
	store repository.PharmacyStore
}

func NewPrescriptionService(store repository.PharmacyStore) *PrescriptionService {
	return &PrescriptionService{
		store: store,
	}
}

func (s *PrescriptionService) GetPrescriptionsByCustomer(ctx context.Context, customerID uint, includeDetails bool) ([]domain.Prescription, error) {
	if _, err := s.store.FindCustomerByID(ctx, customerID, false); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}

		return nil, fmt.Errorf("s.store.FindCustomerByID -> %w", err)
	}

	prescriptions, err := s.store.ListPrescriptionsByCustomer(ctx, customerID, includeDetails)
	if err != nil {
		return nil, fmt.Errorf("s.store.ListPrescriptionsByCustomer -> %w", err)
	}

	return prescriptions, nil
}

func (s *PrescriptionService) GetPrescription(ctx context.Context, id uint, includeDetails bool) (domain.Prescription, error) {
	prescription, err := s.store.FindPrescriptionByID(ctx, id, includeDetails)
	if err != nil {
		if errors.Is(err, repository.ErrPrescriptionNotFound) {
			return domain.Prescription{}, ErrPrescriptionNotFound
		}

		return domain.Prescription{}, fmt.Errorf("s.store.FindPrescriptionByID -> %w", err)
	}

	return prescription, nil
}

// CreatePrescription creates a prescription and all of its line items
// as one atomic unit. Every line item reserves stock through the
// adjuster; the first missing medication or shortfall rolls the whole
// prescription back.
func (s *PrescriptionService) CreatePrescription(ctx context.Context, customerID uint, input PrescriptionInput) (domain.Prescription, error) {
	var created domain.Prescription

	err := s.store.Atomically(ctx, func(store repository.PharmacyStore) error {
		if _, err := store.FindCustomerByID(ctx, customerID, false); err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return ErrCustomerNotFound
			}

			return fmt.Errorf("store.FindCustomerByID -> %w", err)
		}

		prescription, err := buildPrescription(ctx, store, customerID, input)
		if err != nil {
			return err
		}

		created = prescription
		return nil
	})
	if err != nil {
		return domain.Prescription{}, err
	}

	return created, nil
}

func (s *PrescriptionService) UpdatePrescriptionNote(ctx context.Context, id uint, note string) (domain.Prescription, error) {
	updated, err := s.store.UpdatePrescriptionNote(ctx, id, note)
	if err != nil {
		if errors.Is(err, repository.ErrPrescriptionNotFound) {
			return domain.Prescription{}, ErrPrescriptionNotFound
		}

		return domain.Prescription{}, fmt.Errorf("s.store.UpdatePrescriptionNote -> %w", err)
	}

	return updated, nil
}

// DeletePrescription removes a prescription and its line items, hard or
// soft per the caller's role. Stock reserved by the line items is not
// released; a deleted prescription represents dispensed medication.
func (s *PrescriptionService) DeletePrescription(ctx context.Context, id uint, role domain.Role) error {
	hard := domain.CanHardDelete(role)

	return s.store.Atomically(ctx, func(store repository.PharmacyStore) error {
		if _, err := store.FindPrescriptionByID(ctx, id, false); err != nil {
			if errors.Is(err, repository.ErrPrescriptionNotFound) {
				return ErrPrescriptionNotFound
			}

			return fmt.Errorf("store.FindPrescriptionByID -> %w", err)
		}

		if err := store.DeletePrescription(ctx, id, hard); err != nil {
			return fmt.Errorf("store.DeletePrescription -> %w", err)
		}

		return nil
	})
}

// buildPrescription inserts one prescription row and its line items on
// the transaction-bound store, reserving stock per item in request
// order. The persisted total is the running sum of count × unit_price;
// the caller-supplied hint is ignored. Stock and not-found errors are
// returned unwrapped so callers can map them to responses.
func buildPrescription(ctx context.Context, store repository.PharmacyStore, customerID uint, input PrescriptionInput) (domain.Prescription, error) {
	created, err := store.CreatePrescription(ctx, domain.Prescription{
		CustomerID:  customerID,
		Note:        input.Note,
		TotalAmount: decimal.Zero,
	})
	if err != nil {
		return domain.Prescription{}, fmt.Errorf("store.CreatePrescription -> %w", err)
	}

	total := decimal.Zero
	for _, item := range input.Details {
		if item.Count <= 0 {
			return domain.Prescription{}, ErrNonPositiveCount
		}

		medication, err := store.AdjustStock(ctx, item.MedicationID, -item.Count)
		if err != nil {
			return domain.Prescription{}, err
		}

		detail := domain.PrescriptionDetail{
			PrescriptionID: created.ID,
			MedicationID:   medication.ID,
			Count:          item.Count,
		}
		if _, err = store.CreatePrescriptionDetail(ctx, detail); err != nil {
			return domain.Prescription{}, fmt.Errorf("store.CreatePrescriptionDetail -> %w", err)
		}

		total = total.Add(detail.LineTotal(medication.UnitPrice))
	}

	if err = store.UpdatePrescriptionTotal(ctx, created.ID, total); err != nil {
		return domain.Prescription{}, fmt.Errorf("store.UpdatePrescriptionTotal -> %w", err)
	}

	created.TotalAmount = total
	return created, nil
}
