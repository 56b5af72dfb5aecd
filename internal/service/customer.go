package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/repository"
)

type CustomerService struct {
	store repository.PharmacyStore
}

func NewCustomerService(store repository.PharmacyStore) *CustomerService {
	return &CustomerService{
		store: store,
	}
}

func (s *CustomerService) GetCustomers(ctx context.Context, includePrescriptions bool) ([]domain.Customer, error) {
	customers, err := s.store.ListCustomers(ctx, includePrescriptions)
	if err != nil {
		return nil, fmt.Errorf("s.store.ListCustomers -> %w", err)
	}

	return customers, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id uint, includePrescriptions bool) (domain.Customer, error) {
	customer, err := s.store.FindCustomerByID(ctx, id, includePrescriptions)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return domain.Customer{}, ErrCustomerNotFound
		}

		return domain.Customer{}, fmt.Errorf("s.store.FindCustomerByID -> %w", err)
	}

	return customer, nil
}

// CreateCustomer creates the customer together with all of its
// prescriptions and their line items as one atomic unit. The first
// missing medication or stock shortfall rolls back the customer row and
// everything created after it.
func (s *CustomerService) CreateCustomer(ctx context.Context, customer domain.Customer, prescriptions []PrescriptionInput) (domain.Customer, error) {
	var created domain.Customer

	err := s.store.Atomically(ctx, func(store repository.PharmacyStore) error {
		c, err := store.CreateCustomer(ctx, customer)
		if err != nil {
			return fmt.Errorf("store.CreateCustomer -> %w", err)
		}

		for _, input := range prescriptions {
			prescription, err := buildPrescription(ctx, store, c.ID, input)
			if err != nil {
				return err
			}

			c.Prescriptions = append(c.Prescriptions, prescription)
		}

		created = c
		return nil
	})
	if err != nil {
		return domain.Customer{}, err
	}

	return created, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	updated, err := s.store.UpdateCustomer(ctx, customer)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return domain.Customer{}, ErrCustomerNotFound
		}

		return domain.Customer{}, fmt.Errorf("s.store.UpdateCustomer -> %w", err)
	}

	return updated, nil
}

// DeleteCustomer removes the customer and cascades to its prescriptions
// and their line items: hard for the owner, soft for managers.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint, role domain.Role) error {
	hard := domain.CanHardDelete(role)

	return s.store.Atomically(ctx, func(store repository.PharmacyStore) error {
		if _, err := store.FindCustomerByID(ctx, id, false); err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return ErrCustomerNotFound
			}

			return fmt.Errorf("store.FindCustomerByID -> %w", err)
		}

		if err := store.DeleteCustomer(ctx, id, hard); err != nil {
			return fmt.Errorf("store.DeleteCustomer -> %w", err)
		}

		return nil
	})
}
