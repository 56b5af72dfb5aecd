package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/repository"
)

// fakeStore is an in-memory PharmacyStore. Atomically snapshots the
// whole state and restores it when fn fails, so the rollback behavior
// the services rely on is observable in tests. Soft-deleted rows move
// to the trashed maps instead of disappearing.
type fakeStore struct {
	nextID uint

	medications   map[uint]domain.Medication
	customers     map[uint]domain.Customer
	prescriptions map[uint]domain.Prescription
	details       map[uint]domain.PrescriptionDetail

	trashedMedications   map[uint]domain.Medication
	trashedCustomers     map[uint]domain.Customer
	trashedPrescriptions map[uint]domain.Prescription
	trashedDetails       map[uint]domain.PrescriptionDetail
}

var _ repository.PharmacyStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		medications:          map[uint]domain.Medication{},
		customers:            map[uint]domain.Customer{},
		prescriptions:        map[uint]domain.Prescription{},
		details:              map[uint]domain.PrescriptionDetail{},
		trashedMedications:   map[uint]domain.Medication{},
		trashedCustomers:     map[uint]domain.Customer{},
		trashedPrescriptions: map[uint]domain.Prescription{},
		trashedDetails:       map[uint]domain.PrescriptionDetail{},
	}
}

func (f *fakeStore) next() uint {
	f.nextID++
	return f.nextID
}

func copyMap[V any](m map[uint]V) map[uint]V {
	out := make(map[uint]V, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

func (f *fakeStore) snapshot() *fakeStore {
	return &fakeStore{
		nextID:               f.nextID,
		medications:          copyMap(f.medications),
		customers:            copyMap(f.customers),
		prescriptions:        copyMap(f.prescriptions),
		details:              copyMap(f.details),
		trashedMedications:   copyMap(f.trashedMedications),
		trashedCustomers:     copyMap(f.trashedCustomers),
		trashedPrescriptions: copyMap(f.trashedPrescriptions),
		trashedDetails:       copyMap(f.trashedDetails),
	}
}

func (f *fakeStore) restore(snap *fakeStore) {
	*f = *snap
}

func (f *fakeStore) Atomically(ctx context.Context, fn func(store repository.PharmacyStore) error) error {
	snap := f.snapshot()
	if err := fn(f); err != nil {
		f.restore(snap)
		return err
	}

	return nil
}

func (f *fakeStore) CreateMedication(ctx context.Context, medication domain.Medication) (domain.Medication, error) {
	medication.ID = f.next()
	f.medications[medication.ID] = medication
	return medication, nil
}

func (f *fakeStore) ListMedications(ctx context.Context) ([]domain.Medication, error) {
	out := make([]domain.Medication, 0, len(f.medications))
	for _, m := range f.medications {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (f *fakeStore) FindMedicationByID(ctx context.Context, id uint) (domain.Medication, error) {
	m, ok := f.medications[id]
	if !ok {
		return domain.Medication{}, repository.ErrMedicationNotFound
	}

	return m, nil
}

func (f *fakeStore) UpdateMedication(ctx context.Context, medication domain.Medication) (domain.Medication, error) {
	if _, ok := f.medications[medication.ID]; !ok {
		return domain.Medication{}, repository.ErrMedicationNotFound
	}
	f.medications[medication.ID] = medication

	return medication, nil
}

func (f *fakeStore) AdjustStock(ctx context.Context, medicationID uint, delta int) (domain.Medication, error) {
	m, ok := f.medications[medicationID]
	if !ok {
		return domain.Medication{}, repository.ErrMedicationNotFound
	}

	next := m.Quantity + delta
	if next < 0 {
		return domain.Medication{}, &repository.InsufficientStockError{
			MedicationID: m.ID,
			Name:         m.Name,
			Requested:    -delta,
			Available:    m.Quantity,
		}
	}

	m.Quantity = next
	f.medications[medicationID] = m

	return m, nil
}

func (f *fakeStore) MedicationInUse(ctx context.Context, medicationID uint) (bool, error) {
	for _, d := range f.details {
		if d.MedicationID == medicationID {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeStore) DeleteMedication(ctx context.Context, id uint, hard bool) error {
	m, ok := f.medications[id]
	if !ok {
		return repository.ErrMedicationNotFound
	}

	delete(f.medications, id)
	if !hard {
		f.trashedMedications[id] = m
	}

	return nil
}

func (f *fakeStore) CreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	customer.ID = f.next()
	customer.Prescriptions = nil
	f.customers[customer.ID] = customer

	return customer, nil
}

func (f *fakeStore) ListCustomers(ctx context.Context, includePrescriptions bool) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		if includePrescriptions {
			c.Prescriptions, _ = f.ListPrescriptionsByCustomer(ctx, c.ID, true)
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (f *fakeStore) FindCustomerByID(ctx context.Context, id uint, includePrescriptions bool) (domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return domain.Customer{}, repository.ErrCustomerNotFound
	}
	if includePrescriptions {
		c.Prescriptions, _ = f.ListPrescriptionsByCustomer(ctx, id, true)
	}

	return c, nil
}

func (f *fakeStore) UpdateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	if _, ok := f.customers[customer.ID]; !ok {
		return domain.Customer{}, repository.ErrCustomerNotFound
	}
	customer.Prescriptions = nil
	f.customers[customer.ID] = customer

	return customer, nil
}

func (f *fakeStore) DeleteCustomer(ctx context.Context, id uint, hard bool) error {
	c, ok := f.customers[id]
	if !ok {
		return repository.ErrCustomerNotFound
	}

	for pid, p := range f.prescriptions {
		if p.CustomerID != id {
			continue
		}
		if err := f.DeletePrescription(ctx, pid, hard); err != nil {
			return err
		}
	}

	// A hard delete purges previously soft-deleted children too.
	if hard {
		for pid, p := range f.trashedPrescriptions {
			if p.CustomerID != id {
				continue
			}
			for did, d := range f.trashedDetails {
				if d.PrescriptionID == pid {
					delete(f.trashedDetails, did)
				}
			}
			delete(f.trashedPrescriptions, pid)
		}
	}

	delete(f.customers, id)
	if !hard {
		f.trashedCustomers[id] = c
	}

	return nil
}

func (f *fakeStore) CreatePrescription(ctx context.Context, prescription domain.Prescription) (domain.Prescription, error) {
	prescription.ID = f.next()
	prescription.Details = nil
	f.prescriptions[prescription.ID] = prescription

	return prescription, nil
}

func (f *fakeStore) ListPrescriptionsByCustomer(ctx context.Context, customerID uint, includeDetails bool) ([]domain.Prescription, error) {
	var out []domain.Prescription
	for _, p := range f.prescriptions {
		if p.CustomerID != customerID {
			continue
		}
		if includeDetails {
			p.Details, _ = f.ListPrescriptionDetails(ctx, p.ID)
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (f *fakeStore) FindPrescriptionByID(ctx context.Context, id uint, includeDetails bool) (domain.Prescription, error) {
	p, ok := f.prescriptions[id]
	if !ok {
		return domain.Prescription{}, repository.ErrPrescriptionNotFound
	}
	if includeDetails {
		p.Details, _ = f.ListPrescriptionDetails(ctx, id)
	}

	return p, nil
}

func (f *fakeStore) UpdatePrescriptionNote(ctx context.Context, id uint, note string) (domain.Prescription, error) {
	p, ok := f.prescriptions[id]
	if !ok {
		return domain.Prescription{}, repository.ErrPrescriptionNotFound
	}
	p.Note = note
	f.prescriptions[id] = p

	return p, nil
}

func (f *fakeStore) UpdatePrescriptionTotal(ctx context.Context, id uint, total decimal.Decimal) error {
	p, ok := f.prescriptions[id]
	if !ok {
		return repository.ErrPrescriptionNotFound
	}
	p.TotalAmount = total
	f.prescriptions[id] = p

	return nil
}

func (f *fakeStore) DeletePrescription(ctx context.Context, id uint, hard bool) error {
	p, ok := f.prescriptions[id]
	if !ok {
		return repository.ErrPrescriptionNotFound
	}

	for did, d := range f.details {
		if d.PrescriptionID != id {
			continue
		}
		delete(f.details, did)
		if !hard {
			f.trashedDetails[did] = d
		}
	}

	delete(f.prescriptions, id)
	if !hard {
		f.trashedPrescriptions[id] = p
	}

	return nil
}

func (f *fakeStore) CreatePrescriptionDetail(ctx context.Context, detail domain.PrescriptionDetail) (domain.PrescriptionDetail, error) {
	detail.ID = f.next()
	f.details[detail.ID] = detail

	return detail, nil
}

func (f *fakeStore) ListPrescriptionDetails(ctx context.Context, prescriptionID uint) ([]domain.PrescriptionDetail, error) {
	var out []domain.PrescriptionDetail
	for _, d := range f.details {
		if d.PrescriptionID == prescriptionID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (f *fakeStore) FindPrescriptionDetailByID(ctx context.Context, id uint) (domain.PrescriptionDetail, error) {
	d, ok := f.details[id]
	if !ok {
		return domain.PrescriptionDetail{}, repository.ErrPrescriptionDetailNotFound
	}

	return d, nil
}

func (f *fakeStore) UpdatePrescriptionDetailCount(ctx context.Context, id uint, count int) (domain.PrescriptionDetail, error) {
	d, ok := f.details[id]
	if !ok {
		return domain.PrescriptionDetail{}, repository.ErrPrescriptionDetailNotFound
	}
	d.Count = count
	f.details[id] = d

	return d, nil
}

func (f *fakeStore) DeletePrescriptionDetail(ctx context.Context, id uint, hard bool) error {
	d, ok := f.details[id]
	if !ok {
		return repository.ErrPrescriptionDetailNotFound
	}

	delete(f.details, id)
	if !hard {
		f.trashedDetails[id] = d
	}

	return nil
}

// seedMedication is a convenience for tests that need stocked rows.
func (f *fakeStore) seedMedication(name string, unitPrice int64, quantity int) domain.Medication {
	m, _ := f.CreateMedication(context.Background(), domain.Medication{
		Name:        name,
		Description: name,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	})

	return m
}

func (f *fakeStore) seedCustomer(name string) domain.Customer {
	c, _ := f.CreateCustomer(context.Background(), domain.Customer{
		Name:    name,
		NIC:     "901234567V",
		Age:     34,
		Mobile:  "0771234567",
		Address: "12 Main St",
	})

	return c
}

func (f *fakeStore) seedPrescription(customerID uint, total decimal.Decimal) domain.Prescription {
	p, _ := f.CreatePrescription(context.Background(), domain.Prescription{
		CustomerID:  customerID,
		Note:        "seeded",
		TotalAmount: total,
	})

	return p
}

func (f *fakeStore) seedDetail(prescriptionID, medicationID uint, count int) domain.PrescriptionDetail {
	d, _ := f.CreatePrescriptionDetail(context.Background(), domain.PrescriptionDetail{
		PrescriptionID: prescriptionID,
		MedicationID:   medicationID,
		Count:          count,
	})

	return d
}
