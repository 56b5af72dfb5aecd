package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshanw/pharmacare-api/internal/domain"
)

func TestMedicationService_GetMedication(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	med := store.seedMedication("Paracetamol", 50, 10)

	svc := NewMedicationService(store)

	got, err := svc.GetMedication(ctx, med.ID)
	require.NoError(t, err)
	assert.Equal(t, med.Name, got.Name)

	_, err = svc.GetMedication(ctx, 999)
	assert.ErrorIs(t, err, ErrMedicationNotFound)
}

func TestMedicationService_DeleteMedication(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cannot hard-delete a referenced medication", func(t *testing.T) {
		store := newFakeStore()
		med := store.seedMedication("Paracetamol", 50, 10)
		customer := store.seedCustomer("Jane Perera")
		prescription := store.seedPrescription(customer.ID, decimal.Zero)
		store.seedDetail(prescription.ID, med.ID, 2)

		svc := NewMedicationService(store)
		err := svc.DeleteMedication(ctx, med.ID, domain.RoleOwner)

		assert.ErrorIs(t, err, ErrMedicationInUse)

		_, err = store.FindMedicationByID(ctx, med.ID)
		assert.NoError(t, err)
	})

	t.Run("manager may soft-delete a referenced medication", func(t *testing.T) {
		store := newFakeStore()
		med := store.seedMedication("Paracetamol", 50, 10)
		customer := store.seedCustomer("Jane Perera")
		prescription := store.seedPrescription(customer.ID, decimal.Zero)
		store.seedDetail(prescription.ID, med.ID, 2)

		svc := NewMedicationService(store)
		err := svc.DeleteMedication(ctx, med.ID, domain.RoleManager)

		require.NoError(t, err)
		assert.Contains(t, store.trashedMedications, med.ID)
	})

	t.Run("owner hard-deletes an unreferenced medication", func(t *testing.T) {
		store := newFakeStore()
		med := store.seedMedication("Paracetamol", 50, 10)

		svc := NewMedicationService(store)
		err := svc.DeleteMedication(ctx, med.ID, domain.RoleOwner)

		require.NoError(t, err)
		_, err = store.FindMedicationByID(ctx, med.ID)
		assert.ErrorIs(t, err, ErrMedicationNotFound)
		assert.NotContains(t, store.trashedMedications, med.ID)
	})

	t.Run("missing medication", func(t *testing.T) {
		store := newFakeStore()
		svc := NewMedicationService(store)

		err := svc.DeleteMedication(ctx, 999, domain.RoleOwner)
		assert.ErrorIs(t, err, ErrMedicationNotFound)
	})
}

func TestMedicationService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewMedicationService(store)

	created, err := svc.CreateMedication(ctx, domain.Medication{
		Name:        "Paracetamol",
		Description: "500mg tablets",
		UnitPrice:   50,
		Quantity:    100,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	created.Quantity = 80
	updated, err := svc.UpdateMedication(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 80, updated.Quantity)

	_, err = svc.UpdateMedication(ctx, domain.Medication{ID: 999})
	assert.ErrorIs(t, err, ErrMedicationNotFound)
}
