package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oshanw/pharmacare-api/internal/domain"
	"github.com/oshanw/pharmacare-api/internal/repository/dao"
)

var (
	ErrMedicationNotFound         = dao.ErrMedicationNotFound
	ErrCustomerNotFound           = dao.ErrCustomerNotFound
	ErrPrescriptionNotFound       = dao.ErrPrescriptionNotFound
	ErrPrescriptionDetailNotFound = dao.ErrPrescriptionDetailNotFound
	ErrMedicationInUse            = dao.ErrMedicationInUse
)

// InsufficientStockError reports a stock adjustment that would have
// driven a medication's quantity negative.
type InsufficientStockError = dao.InsufficientStockError

// PharmacyStore is the record store the reconciliation services run
// against. Atomically executes fn against a store bound to a single
// transaction; every mutation inside either commits together or not at
// all. Implementations must not open nested transactions inside fn.
type PharmacyStore interface {
	Atomically(ctx context.Context, fn func(store PharmacyStore) error) error

	CreateMedication(ctx context.Context, medication domain.Medication) (domain.Medication, error)
	ListMedications(ctx context.Context) ([]domain.Medication, error)
	FindMedicationByID(ctx context.Context, id uint) (domain.Medication, error)
	UpdateMedication(ctx context.Context, medication domain.Medication) (domain.Medication, error)
	AdjustStock(ctx context.Context, medicationID uint, delta int) (domain.Medication, error)
	MedicationInUse(ctx context.Context, medicationID uint) (bool, error)
	DeleteMedication(ctx context.Context, id uint, hard bool) error

	CreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	ListCustomers(ctx context.Context, includePrescriptions bool) ([]domain.Customer, error)
	FindCustomerByID(ctx context.Context, id uint, includePrescriptions bool) (domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	DeleteCustomer(ctx context.Context, id uint, hard bool) error

	CreatePrescription(ctx context.Context, prescription domain.Prescription) (domain.Prescription, error)
	ListPrescriptionsByCustomer(ctx context.Context, customerID uint, includeDetails bool) ([]domain.Prescription, error)
	FindPrescriptionByID(ctx context.Context, id uint, includeDetails bool) (domain.Prescription, error)
	UpdatePrescriptionNote(ctx context.Context, id uint, note string) (domain.Prescription, error)
	UpdatePrescriptionTotal(ctx context.Context, id uint, total decimal.Decimal) error
	DeletePrescription(ctx context.Context, id uint, hard bool) error

	CreatePrescriptionDetail(ctx context.Context, detail domain.PrescriptionDetail) (domain.PrescriptionDetail, error)
	ListPrescriptionDetails(ctx context.Context, prescriptionID uint) ([]domain.PrescriptionDetail, error)
	FindPrescriptionDetailByID(ctx context.Context, id uint) (domain.PrescriptionDetail, error)
	UpdatePrescriptionDetailCount(ctx context.Context, id uint, count int) (domain.PrescriptionDetail, error)
	DeletePrescriptionDetail(ctx context.Context, id uint, hard bool) error
}

type PharmacyRepository struct {
	dao *dao.PharmacyDAO
}

func NewPharmacyRepository(dao *dao.PharmacyDAO) *PharmacyRepository {
	return &PharmacyRepository{
		dao: dao,
	}
}

func (r *PharmacyRepository) Atomically(ctx context.Context, fn func(store PharmacyStore) error) error {
	return r.dao.Transaction(ctx, func(txDAO *dao.PharmacyDAO) error {
		return fn(NewPharmacyRepository(txDAO))
	})
}

func (r *PharmacyRepository) CreateMedication(ctx context.Context, medication domain.Medication) (domain.Medication, error) {
	created, err := r.dao.InsertMedication(ctx, r.medicationDomainToDao(medication))
	if err != nil {
		return domain.Medication{}, fmt.Errorf("r.dao.InsertMedication -> %w", err)
	}

	return r.medicationDaoToDomain(created), nil
}

func (r *PharmacyRepository) ListMedications(ctx context.Context) ([]domain.Medication, error) {
	found, err := r.dao.ListMedications(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListMedications -> %w", err)
	}

	medications := make([]domain.Medication, len(found))
	for i, m := range found {
		medications[i] = r.medicationDaoToDomain(m)
	}

	return medications, nil
}

func (r *PharmacyRepository) FindMedicationByID(ctx context.Context, id uint) (domain.Medication, error) {
	found, err := r.dao.FindMedicationByID(ctx, id)
	if err != nil {
		return domain.Medication{}, fmt.Errorf("r.dao.FindMedicationByID -> %w", err)
	}

	return r.medicationDaoToDomain(found), nil
}

func (r *PharmacyRepository) UpdateMedication(ctx context.Context, medication domain.Medication) (domain.Medication, error) {
	updated, err := r.dao.UpdateMedication(ctx, r.medicationDomainToDao(medication))
	if err != nil {
		return domain.Medication{}, fmt.Errorf("r.dao.UpdateMedication -> %w", err)
	}

	return r.medicationDaoToDomain(updated), nil
}

func (r *PharmacyRepository) AdjustStock(ctx context.Context, medicationID uint, delta int) (domain.Medication, error) {
	adjusted, err := r.dao.AdjustStock(ctx, medicationID, delta)
	if err != nil {
		// Keep InsufficientStockError and the sentinels unwrapped so
		// callers can match on them.
		return domain.Medication{}, err
	}

	return r.medicationDaoToDomain(adjusted), nil
}

func (r *PharmacyRepository) MedicationInUse(ctx context.Context, medicationID uint) (bool, error) {
	inUse, err := r.dao.MedicationInUse(ctx, medicationID)
	if err != nil {
		return false, fmt.Errorf("r.dao.MedicationInUse -> %w", err)
	}

	return inUse, nil
}

func (r *PharmacyRepository) DeleteMedication(ctx context.Context, id uint, hard bool) error {
	if err := r.dao.DeleteMedication(ctx, id, hard); err != nil {
		return fmt.Errorf("r.dao.DeleteMedication -> %w", err)
	}

	return nil
}

func (r *PharmacyRepository) CreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	created, err := r.dao.InsertCustomer(ctx, r.customerDomainToDao(customer))
	if err != nil {
		return domain.Customer{}, fmt.Errorf("r.dao.InsertCustomer -> %w", err)
	}

	return r.customerDaoToDomain(created), nil
}

func (r *PharmacyRepository) ListCustomers(ctx context.Context, includePrescriptions bool) ([]domain.Customer, error) {
	found, err := r.dao.ListCustomers(ctx, includePrescriptions)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListCustomers -> %w", err)
	}

	customers := make([]domain.Customer, len(found))
	for i, c := range found {
		customers[i] = r.customerDaoToDomain(c)
	}

	return customers, nil
}

func (r *PharmacyRepository) FindCustomerByID(ctx context.Context, id uint, includePrescriptions bool) (domain.Customer, error) {
	found, err := r.dao.FindCustomerByID(ctx, id, includePrescriptions)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("r.dao.FindCustomerByID -> %w", err)
	}

	return r.customerDaoToDomain(found), nil
}

func (r *PharmacyRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	updated, err := r.dao.UpdateCustomer(ctx, r.customerDomainToDao(customer))
	if err != nil {
		return domain.Customer{}, fmt.Errorf("r.dao.UpdateCustomer -> %w", err)
	}

	return r.customerDaoToDomain(updated), nil
}

func (r *PharmacyRepository) DeleteCustomer(ctx context.Context, id uint, hard bool) error {
	if err := r.dao.DeleteCustomer(ctx, id, hard); err != nil {
		return fmt.Errorf("r.dao.DeleteCustomer -> %w", err)
	}

	return nil
}

func (r *PharmacyRepository) CreatePrescription(ctx context.Context, prescription domain.Prescription) (domain.Prescription, error) {
	created, err := r.dao.InsertPrescription(ctx, r.prescriptionDomainToDao(prescription))
	if err != nil {
		return domain.Prescription{}, fmt.Errorf("r.dao.InsertPrescription -> %w", err)
	}

	return r.prescriptionDaoToDomain(created), nil
}

func (r *PharmacyRepository) ListPrescriptionsByCustomer(ctx context.Context, customerID uint, includeDetails bool) ([]domain.Prescription, error) {
	found, err := r.dao.ListPrescriptionsByCustomer(ctx, customerID, includeDetails)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListPrescriptionsByCustomer -> %w", err)
	}

	prescriptions := make([]domain.Prescription, len(found))
	for i, p := range found {
		prescriptions[i] = r.prescriptionDaoToDomain(p)
	}

	return prescriptions, nil
}

func (r *PharmacyRepository) FindPrescriptionByID(ctx context.Context, id uint, includeDetails bool) (domain.Prescription, error) {
	found, err := r.dao.FindPrescriptionByID(ctx, id, includeDetails)
	if err != nil {
		return domain.Prescription{}, fmt.Errorf("r.dao.FindPrescriptionByID -> %w", err)
	}

	return r.prescriptionDaoToDomain(found), nil
}

func (r *PharmacyRepository) UpdatePrescriptionNote(ctx context.Context, id uint, note string) (domain.Prescription, error) {
	updated, err := r.dao.UpdatePrescriptionNote(ctx, id, note)
	if err != nil {
		return domain.Prescription{}, fmt.Errorf("r.dao.UpdatePrescriptionNote -> %w", err)
	}

	return r.prescriptionDaoToDomain(updated), nil
}

func (r *PharmacyRepository) UpdatePrescriptionTotal(ctx context.Context, id uint, total decimal.Decimal) error {
	if err := r.dao.UpdatePrescriptionTotal(ctx, id, total); err != nil {
		return fmt.Errorf("r.dao.UpdatePrescriptionTotal -> %w", err)
	}

	return nil
}

func (r *PharmacyRepository) DeletePrescription(ctx context.Context, id uint, hard bool) error {
	if err := r.dao.DeletePrescription(ctx, id, hard); err != nil {
		return fmt.Errorf("r.dao.DeletePrescription -> %w", err)
	}

	return nil
}

func (r *PharmacyRepository) CreatePrescriptionDetail(ctx context.Context, detail domain.PrescriptionDetail) (domain.PrescriptionDetail, error) {
	created, err := r.dao.InsertPrescriptionDetail(ctx, r.detailDomainToDao(detail))
	if err != nil {
		return domain.PrescriptionDetail{}, fmt.Errorf("r.dao.InsertPrescriptionDetail -> %w", err)
	}

	return r.detailDaoToDomain(created), nil
}

func (r *PharmacyRepository) ListPrescriptionDetails(ctx context.Context, prescriptionID uint) ([]domain.PrescriptionDetail, error) {
	found, err := r.dao.ListPrescriptionDetails(ctx, prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListPrescriptionDetails -> %w", err)
	}

	details := make([]domain.PrescriptionDetail, len(found))
	for i, d := range found {
		details[i] = r.detailDaoToDomain(d)
	}

	return details, nil
}

func (r *PharmacyRepository) FindPrescriptionDetailByID(ctx context.Context, id uint) (domain.PrescriptionDetail, error) {
	found, err := r.dao.FindPrescriptionDetailByID(ctx, id)
	if err != nil {
		return domain.PrescriptionDetail{}, fmt.Errorf("r.dao.FindPrescriptionDetailByID -> %w", err)
	}

	return r.detailDaoToDomain(found), nil
}

func (r *PharmacyRepository) UpdatePrescriptionDetailCount(ctx context.Context, id uint, count int) (domain.PrescriptionDetail, error) {
	updated, err := r.dao.UpdatePrescriptionDetailCount(ctx, id, count)
	if err != nil {
		return domain.PrescriptionDetail{}, fmt.Errorf("r.dao.UpdatePrescriptionDetailCount -> %w", err)
	}

	return r.detailDaoToDomain(updated), nil
}

func (r *PharmacyRepository) DeletePrescriptionDetail(ctx context.Context, id uint, hard bool) error {
	if err := r.dao.DeletePrescriptionDetail(ctx, id, hard); err != nil {
		return fmt.Errorf("r.dao.DeletePrescriptionDetail -> %w", err)
	}

	return nil
}

func (r *PharmacyRepository) medicationDomainToDao(m domain.Medication) dao.Medication {
	return dao.Medication{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *PharmacyRepository) medicationDaoToDomain(m dao.Medication) domain.Medication {
	return domain.Medication{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *PharmacyRepository) customerDomainToDao(c domain.Customer) dao.Customer {
	return dao.Customer{
		ID:      c.ID,
		Name:    c.Name,
		NIC:     c.NIC,
		Age:     c.Age,
		Mobile:  c.Mobile,
		Address: c.Address,
	}
}

func (r *PharmacyRepository) customerDaoToDomain(c dao.Customer) domain.Customer {
	customer := domain.Customer{
		ID:        c.ID,
		Name:      c.Name,
		NIC:       c.NIC,
		Age:       c.Age,
		Mobile:    c.Mobile,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	if len(c.Prescriptions) > 0 {
		customer.Prescriptions = make([]domain.Prescription, len(c.Prescriptions))
		for i, p := range c.Prescriptions {
			customer.Prescriptions[i] = r.prescriptionDaoToDomain(p)
		}
	}

	return customer
}

func (r *PharmacyRepository) prescriptionDomainToDao(p domain.Prescription) dao.Prescription {
	return dao.Prescription{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		Note:        p.Note,
		TotalAmount: p.TotalAmount,
	}
}

func (r *PharmacyRepository) prescriptionDaoToDomain(p dao.Prescription) domain.Prescription {
	prescription := domain.Prescription{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		Note:        p.Note,
		TotalAmount: p.TotalAmount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if len(p.Details) > 0 {
		prescription.Details = make([]domain.PrescriptionDetail, len(p.Details))
		for i, d := range p.Details {
			prescription.Details[i] = r.detailDaoToDomain(d)
		}
	}

	return prescription
}

func (r *PharmacyRepository) detailDomainToDao(d domain.PrescriptionDetail) dao.PrescriptionDetail {
	return dao.PrescriptionDetail{
		ID:             d.ID,
		PrescriptionID: d.PrescriptionID,
		MedicationID:   d.MedicationID,
		Count:          d.Count,
	}
}

func (r *PharmacyRepository) detailDaoToDomain(d dao.PrescriptionDetail) domain.PrescriptionDetail {
	return domain.PrescriptionDetail{
		ID:             d.ID,
		PrescriptionID: d.PrescriptionID,
		MedicationID:   d.MedicationID,
		Count:          d.Count,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
