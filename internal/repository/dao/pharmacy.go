package dao

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PharmacyDAO holds the gorm handle for the four pharmacy tables.
// Transaction produces a DAO bound to a tx handle, so every method
// composes inside an ambient transaction without opening its own.
type PharmacyDAO struct {
	db *gorm.DB
}

func NewPharmacyDAO(db *gorm.DB) *PharmacyDAO {
	return &PharmacyDAO{
		db: db,
	}
}

func (d *PharmacyDAO) Transaction(ctx context.Context, fn func(txDAO *PharmacyDAO) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPharmacyDAO(tx))
	})
}

// AdjustStock applies a signed delta to a medication's quantity.
// Negative deltas reserve stock, positive deltas release it. The row is
// locked for the rest of the transaction, so concurrent reservations
// against the same medication serialize here. No write happens when the
// delta would drive the quantity negative.
func (d *PharmacyDAO) AdjustStock(ctx context.Context, medicationID uint, delta int) (Medication, error) {
	var medication Medication
	result := d.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&medication, medicationID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Medication{}, ErrMedicationNotFound
		}

		return Medication{}, result.Error
	}

	next := medication.Quantity + delta
	if next < 0 {
		return Medication{}, &InsufficientStockError{
			MedicationID: medication.ID,
			Name:         medication.Name,
			Requested:    -delta,
			Available:    medication.Quantity,
		}
	}

	medication.Quantity = next
	if err := d.db.WithContext(ctx).Model(&medication).Update("quantity", next).Error; err != nil {
		return Medication{}, err
	}

	return medication, nil
}

func (d *PharmacyDAO) InsertMedication(ctx context.Context, medication Medication) (Medication, error) {
	if err := d.db.WithContext(ctx).Create(&medication).Error; err != nil {
		return Medication{}, err
	}

	return medication, nil
}

func (d *PharmacyDAO) FindMedicationByID(ctx context.Context, id uint) (Medication, error) {
	var medication Medication
	result := d.db.WithContext(ctx).First(&medication, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Medication{}, ErrMedicationNotFound
		}

		return Medication{}, result.Error
	}

	return medication, nil
}

func (d *PharmacyDAO) ListMedications(ctx context.Context) ([]Medication, error) {
	var medications []Medication
	if err := d.db.WithContext(ctx).Order("id").Find(&medications).Error; err != nil {
		return nil, err
	}

	return medications, nil
}

func (d *PharmacyDAO) UpdateMedication(ctx context.Context, medication Medication) (Medication, error) {
	result := d.db.WithContext(ctx).Model(&Medication{}).
		Where("id = ?", medication.ID).
		Updates(map[string]any{
			"name":        medication.Name,
			"description": medication.Description,
			"unit_price":  medication.UnitPrice,
			"quantity":    medication.Quantity,
		})
	if result.Error != nil {
		return Medication{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Medication{}, ErrMedicationNotFound
	}

	return d.FindMedicationByID(ctx, medication.ID)
}

// MedicationInUse reports whether any live prescription detail still
// references the medication.
func (d *PharmacyDAO) MedicationInUse(ctx context.Context, medicationID uint) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&PrescriptionDetail{}).
		Where("medication_id = ?", medicationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (d *PharmacyDAO) DeleteMedication(ctx context.Context, id uint, hard bool) error {
	tx := d.db.WithContext(ctx)
	if hard {
		tx = tx.Unscoped()
	}

	result := tx.Delete(&Medication{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMedicationNotFound
	}

	return nil
}

func (d *PharmacyDAO) InsertCustomer(ctx context.Context, customer Customer) (Customer, error) {
	if err := d.db.WithContext(ctx).Omit("Prescriptions").Create(&customer).Error; err != nil {
		return Customer{}, err
	}

	return customer, nil
}

func (d *PharmacyDAO) FindCustomerByID(ctx context.Context, id uint, includePrescriptions bool) (Customer, error) {
	var customer Customer

	tx := d.db.WithContext(ctx)
	if includePrescriptions {
		tx = tx.Preload("Prescriptions").Preload("Prescriptions.Details")
	}

	result := tx.First(&customer, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Customer{}, ErrCustomerNotFound
		}

		return Customer{}, result.Error
	}

	return customer, nil
}

func (d *PharmacyDAO) ListCustomers(ctx context.Context, includePrescriptions bool) ([]Customer, error) {
	var customers []Customer

	tx := d.db.WithContext(ctx).Order("id")
	if includePrescriptions {
		tx = tx.Preload("Prescriptions").Preload("Prescriptions.Details")
	}

	if err := tx.Find(&customers).Error; err != nil {
		return nil, err
	}

	return customers, nil
}

func (d *PharmacyDAO) UpdateCustomer(ctx context.Context, customer Customer) (Customer, error) {
	result := d.db.WithContext(ctx).Model(&Customer{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{
			"name":    customer.Name,
			"nic":     customer.NIC,
			"age":     customer.Age,
			"mobile":  customer.Mobile,
			"address": customer.Address,
		})
	if result.Error != nil {
		return Customer{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Customer{}, ErrCustomerNotFound
	}

	return d.FindCustomerByID(ctx, customer.ID, false)
}

// DeleteCustomer removes a customer together with its prescriptions and
// their line items. A hard delete purges soft-deleted children too, so
// no row can outlive its customer. Must run inside the caller's
// transaction.
func (d *PharmacyDAO) DeleteCustomer(ctx context.Context, id uint, hard bool) error {
	tx := d.db.WithContext(ctx)
	if hard {
		tx = tx.Unscoped()
	}

	var prescriptionIDs []uint
	pluckTx := d.db.WithContext(ctx)
	if hard {
		pluckTx = pluckTx.Unscoped()
	}
	err := pluckTx.Model(&Prescription{}).
		Where("customer_id = ?", id).
		Pluck("id", &prescriptionIDs).Error
	if err != nil {
		return err
	}

	if len(prescriptionIDs) > 0 {
		if err = tx.Where("prescription_id IN ?", prescriptionIDs).Delete(&PrescriptionDetail{}).Error; err != nil {
			return err
		}
	}
	if err = tx.Where("customer_id = ?", id).Delete(&Prescription{}).Error; err != nil {
		return err
	}

	result := tx.Delete(&Customer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

func (d *PharmacyDAO) InsertPrescription(ctx context.Context, prescription Prescription) (Prescription, error) {
	if err := d.db.WithContext(ctx).Omit("Details").Create(&prescription).Error; err != nil {
		return Prescription{}, err
	}

	return prescription, nil
}

func (d *PharmacyDAO) FindPrescriptionByID(ctx context.Context, id uint, includeDetails bool) (Prescription, error) {
	var prescription Prescription

	tx := d.db.WithContext(ctx)
	if includeDetails {
		tx = tx.Preload("Details")
	}

	result := tx.First(&prescription, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Prescription{}, ErrPrescriptionNotFound
		}

		return Prescription{}, result.Error
	}

	return prescription, nil
}

func (d *PharmacyDAO) ListPrescriptionsByCustomer(ctx context.Context, customerID uint, includeDetails bool) ([]Prescription, error) {
	var prescriptions []Prescription

	tx := d.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id")
	if includeDetails {
		tx = tx.Preload("Details")
	}

	if err := tx.Find(&prescriptions).Error; err != nil {
		return nil, err
	}

	return prescriptions, nil
}

func (d *PharmacyDAO) UpdatePrescriptionNote(ctx context.Context, id uint, note string) (Prescription, error) {
	result := d.db.WithContext(ctx).Model(&Prescription{}).
		Where("id = ?", id).
		Update("note", note)
	if result.Error != nil {
		return Prescription{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Prescription{}, ErrPrescriptionNotFound
	}

	return d.FindPrescriptionByID(ctx, id, false)
}

func (d *PharmacyDAO) UpdatePrescriptionTotal(ctx context.Context, id uint, total decimal.Decimal) error {
	result := d.db.WithContext(ctx).Model(&Prescription{}).
		Where("id = ?", id).
		Update("total_amount", total)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPrescriptionNotFound
	}

	return nil
}

// DeletePrescription removes a prescription and its line items. Must
// run inside the caller's transaction.
func (d *PharmacyDAO) DeletePrescription(ctx context.Context, id uint, hard bool) error {
	tx := d.db.WithContext(ctx)
	if hard {
		tx = tx.Unscoped()
	}

	if err := tx.Where("prescription_id = ?", id).Delete(&PrescriptionDetail{}).Error; err != nil {
		return err
	}

	result := tx.Delete(&Prescription{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPrescriptionNotFound
	}

	return nil
}

func (d *PharmacyDAO) InsertPrescriptionDetail(ctx context.Context, detail PrescriptionDetail) (PrescriptionDetail, error) {
	if err := d.db.WithContext(ctx).Create(&detail).Error; err != nil {
		return PrescriptionDetail{}, err
	}

	return detail, nil
}

func (d *PharmacyDAO) FindPrescriptionDetailByID(ctx context.Context, id uint) (PrescriptionDetail, error) {
	var detail PrescriptionDetail
	result := d.db.WithContext(ctx).First(&detail, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PrescriptionDetail{}, ErrPrescriptionDetailNotFound
		}

		return PrescriptionDetail{}, result.Error
	}

	return detail, nil
}

func (d *PharmacyDAO) ListPrescriptionDetails(ctx context.Context, prescriptionID uint) ([]PrescriptionDetail, error) {
	var details []PrescriptionDetail
	err := d.db.WithContext(ctx).
		Where("prescription_id = ?", prescriptionID).
		Order("id").
		Find(&details).Error
	if err != nil {
		return nil, err
	}

	return details, nil
}

func (d *PharmacyDAO) UpdatePrescriptionDetailCount(ctx context.Context, id uint, count int) (PrescriptionDetail, error) {
	result := d.db.WithContext(ctx).Model(&PrescriptionDetail{}).
		Where("id = ?", id).
		Update("count", count)
	if result.Error != nil {
		return PrescriptionDetail{}, result.Error
	}
	if result.RowsAffected == 0 {
		return PrescriptionDetail{}, ErrPrescriptionDetailNotFound
	}

	return d.FindPrescriptionDetailByID(ctx, id)
}

func (d *PharmacyDAO) DeletePrescriptionDetail(ctx context.Context, id uint, hard bool) error {
	tx := d.db.WithContext(ctx)
	if hard {
		tx = tx.Unscoped()
	}

	result := tx.Delete(&PrescriptionDetail{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPrescriptionDetailNotFound
	}

	return nil
}
