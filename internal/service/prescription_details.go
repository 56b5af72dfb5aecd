package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/repository"
)

// PrescriptionDetailService keeps medication stock and the owning
// prescription's cached total in step across every line-item mutation.
// Each operation runs as one transaction: the stock adjuster persists
// nothing on a shortfall, and any later failure rolls the whole unit
// back.
type PrescriptionDetailService struct {
	store repository.PharmacyStore
}

func NewPrescriptionDetailService(store repository.PharmacyStore) *PrescriptionDetailService {
	return &PrescriptionDetailService{
		store: store,
	}
}

func (s *PrescriptionDetailService) GetDetailsByPrescription(ctx context.Context, prescriptionID uint) ([]domain.PrescriptionDetail, error) {
	if _, err := s.store.FindPrescriptionByID(ctx, prescriptionID, false); err != nil {
		if errors.Is(err, repository.ErrPrescriptionNotFound) {
			return nil, ErrPrescriptionNotFound
		}

		return nil, fmt.Errorf("s.store.FindPrescriptionByID -> %w", err)
	}

	details, err := s.store.ListPrescriptionDetails(ctx, prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("s.store.ListPrescriptionDetails -> %w", err)
	}

	return details, nil
}

func (s *PrescriptionDetailService) GetDetail(ctx context.Context, id uint) (domain.PrescriptionDetail, error) {
	detail, err := s.store.FindPrescriptionDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPrescriptionDetailNotFound) {
			return domain.PrescriptionDetail{}, ErrPrescriptionDetailNotFound
		}

		return domain.PrescriptionDetail{}, fmt.Errorf("s.store.FindPrescriptionDetailByID -> %w", err)
	}

	return detail, nil
}

// CreateDetail reserves count units of the medication against the
// prescription: stock goes down by count, the prescription total goes
// up by count × unit_price, and the line item is inserted, atomically.
func (s *PrescriptionDetailService) CreateDetail(ctx context.Context, prescriptionID, medicationID uint, count int) (domain.PrescriptionDetail, error) {
	if count <= 0 {
		return domain.PrescriptionDetail{}, ErrNonPositiveCount
	}

	var created domain.PrescriptionDetail

	err := s.store.Atomically(ctx, func(store repository.PharmacyStore) error {
		prescription, err := store.FindPrescriptionByID(ctx, prescriptionID, false)
		if err != nil {
			if errors.Is(err, repository.ErrPrescriptionNotFound) {
				return ErrPrescriptionNotFound
			}

			return fmt.Errorf("store.FindPrescriptionByID -> %w", err)
		}

		medication, err := store.AdjustStock(ctx, medicationID, -count)
		if err != nil {
			return err
		}

		detail := domain.PrescriptionDetail{
			PrescriptionID: prescription.ID,
			MedicationID:   medication.ID,
			Count:          count,
		}

		newTotal := prescription.TotalAmount.Add(detail.LineTotal(medication.UnitPrice))
		if err = store.UpdatePrescriptionTotal(ctx, prescription.ID, newTotal); err != nil {
			return fmt.Errorf("store.UpdatePrescriptionTotal -> %w", err)
		}

		created, err = store.CreatePrescriptionDetail(ctx, detail)
		if err != nil {
			return fmt.Errorf("store.CreatePrescriptionDetail -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.PrescriptionDetail{}, err
	}

	return created, nil
}

// ResizeDetail changes a line item's count. Growing the count consumes
// more stock, shrinking releases it; the prescription total moves by
// diff × unit_price. Resizing to the current count is a no-op that
// writes nothing.
func (s *PrescriptionDetailService) ResizeDetail(ctx context.Context, id uint, newCount int) (domain.PrescriptionDetail, error) {
	if newCount <= 0 {
		return domain.PrescriptionDetail{}, ErrNonPositiveCount
	}

	var updated domain.PrescriptionDetail

	err := s.store.Atomically(ctx, func(store repository.PharmacyStore) error {
		detail, err := store.FindPrescriptionDetailByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrPrescriptionDetailNotFound) {
				return ErrPrescriptionDetailNotFound
			}

			return fmt.Errorf("store.FindPrescriptionDetailByID -> %w", err)
		}

		prescription, err := store.FindPrescriptionByID(ctx, detail.PrescriptionID, false)
		if err != nil {
			if errors.Is(err, repository.ErrPrescriptionNotFound) {
				return ErrPrescriptionNotFound
			}

			return fmt.Errorf("store.FindPrescriptionByID -> %w", err)
		}

		// Resolve the medication even when the count is unchanged; a
		// dangling reference must surface as not-found, not success.
		if _, err = store.FindMedicationByID(ctx, detail.MedicationID); err != nil {
			if errors.Is(err, repository.ErrMedicationNotFound) {
				return ErrMedicationNotFound
			}

			return fmt.Errorf("store.FindMedicationByID -> %w", err)
		}

		if detail.Count == newCount {
			updated = detail
			return nil
		}

		diff := newCount - detail.Count
		medication, err := store.AdjustStock(ctx, detail.MedicationID, -diff)
		if err != nil {
			return err
		}

		diffAmount := decimal.NewFromInt(int64(diff)).Mul(decimal.NewFromInt(medication.UnitPrice))
		newTotal := prescription.TotalAmount.Add(diffAmount)
		if err = store.UpdatePrescriptionTotal(ctx, prescription.ID, newTotal); err != nil {
			return fmt.Errorf("store.UpdatePrescriptionTotal -> %w", err)
		}

		updated, err = store.UpdatePrescriptionDetailCount(ctx, detail.ID, newCount)
		if err != nil {
			return fmt.Errorf("store.UpdatePrescriptionDetailCount -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.PrescriptionDetail{}, err
	}

	return updated, nil
}

// RemoveDetail releases the line item's stock reservation, deducts its
// contribution from the prescription total, and deletes the row (hard
// for the owner, soft otherwise). Releasing stock cannot fail the
// quantity check.
func (s *PrescriptionDetailService) RemoveDetail(ctx context.Context, id uint, role domain.Role) (domain.PrescriptionDetail, error) {
	hard := domain.CanHardDelete(role)

	var removed domain.PrescriptionDetail

	err := s.store.Atomically(ctx, func(store repository.PharmacyStore) error {
		detail, err := store.FindPrescriptionDetailByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrPrescriptionDetailNotFound) {
				return ErrPrescriptionDetailNotFound
			}

			return fmt.Errorf("store.FindPrescriptionDetailByID -> %w", err)
		}

		prescription, err := store.FindPrescriptionByID(ctx, detail.PrescriptionID, false)
		if err != nil {
			if errors.Is(err, repository.ErrPrescriptionNotFound) {
				return fmt.Errorf("prescription related to prescription detail %d: %w", detail.ID, ErrPrescriptionNotFound)
			}

			return fmt.Errorf("store.FindPrescriptionByID -> %w", err)
		}

		medication, err := store.AdjustStock(ctx, detail.MedicationID, detail.Count)
		if err != nil {
			if errors.Is(err, repository.ErrMedicationNotFound) {
				return fmt.Errorf("medication related to prescription detail %d: %w", detail.ID, ErrMedicationNotFound)
			}

			return err
		}

		newTotal := prescription.TotalAmount.Sub(detail.LineTotal(medication.UnitPrice))
		if err = store.UpdatePrescriptionTotal(ctx, prescription.ID, newTotal); err != nil {
			return fmt.Errorf("store.UpdatePrescriptionTotal -> %w", err)
		}

		if err = store.DeletePrescriptionDetail(ctx, detail.ID, hard); err != nil {
			return fmt.Errorf("store.DeletePrescriptionDetail -> %w", err)
		}

		removed = detail
		return nil
	})
	if err != nil {
		return domain.PrescriptionDetail{}, err
	}

	return removed, nil
}
