package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/repository"
)

var (
	ErrMedicationNotFound         = repository.ErrMedicationNotFound
	ErrCustomerNotFound           = repository.ErrCustomerNotFound
	ErrPrescriptionNotFound       = repository.ErrPrescriptionNotFound
	ErrPrescriptionDetailNotFound = repository.ErrPrescriptionDetailNotFound
	ErrMedicationInUse            = repository.ErrMedicationInUse
	ErrNonPositiveCount           = errors.New("count must be a positive integer")
)

type InsufficientStockError = repository.InsufficientStockError

type MedicationService struct {
	store repository.PharmacyStore
}

func NewMedicationService(store repository.PharmacyStore) *MedicationService {
	return &MedicationService{
		store: store,
	}
}

func (s *MedicationService) GetMedications(ctx context.Context) ([]domain.Medication, error) {
	medications, err := s.store.ListMedications(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.store.ListMedications -> %w", err)
	}

	return medications, nil
}

func (s *MedicationService) GetMedication(ctx context.Context, id uint) (domain.Medication, error) {
	medication, err := s.store.FindMedicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMedicationNotFound) {
			return domain.Medication{}, ErrMedicationNotFound
		}

		return domain.Medication{}, fmt.Errorf("s.store.FindMedicationByID -> %w", err)
	}

	return medication, nil
}

func (s *MedicationService) CreateMedication(ctx context.Context, medication domain.Medication) (domain.Medication, error) {
	created, err := s.store.CreateMedication(ctx, medication)
	if err != nil {
		return domain.Medication{}, fmt.Errorf("s.store.CreateMedication -> %w", err)
	}

	return created, nil
}

func (s *MedicationService) UpdateMedication(ctx context.Context, medication domain.Medication) (domain.Medication, error) {
	updated, err := s.store.UpdateMedication(ctx, medication)
	if err != nil {
		if errors.Is(err, repository.ErrMedicationNotFound) {
			return domain.Medication{}, ErrMedicationNotFound
		}

		return domain.Medication{}, fmt.Errorf("s.store.UpdateMedication -> %w", err)
	}

	return updated, nil
}

// DeleteMedication soft-deletes for managers and hard-deletes for the
// owner. A hard delete is refused while any live prescription detail
// still references the medication; a soft delete keeps the row
// recoverable, so the dangling reference is acceptable there.
func (s *MedicationService) DeleteMedication(ctx context.Context, id uint, role domain.Role) error {
	hard := domain.CanHardDelete(role)

	return s.store.Atomically(ctx, func(store repository.PharmacyStore) error {
		if _, err := store.FindMedicationByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrMedicationNotFound) {
				return ErrMedicationNotFound
			}

			return fmt.Errorf("store.FindMedicationByID -> %w", err)
		}

		if hard {
			inUse, err := store.MedicationInUse(ctx, id)
			if err != nil {
				return fmt.Errorf("store.MedicationInUse -> %w", err)
			}
			if inUse {
				return ErrMedicationInUse
			}
		}

		if err := store.DeleteMedication(ctx, id, hard); err != nil {
			return fmt.Errorf("store.DeleteMedication -> %w", err)
		}

		return nil
	})
}
