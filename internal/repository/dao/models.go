package dao

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Medication struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	UnitPrice   int64 `gorm:"not null"`
	Quantity    int   `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type Customer struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	NIC           string `gorm:"column:nic;not null"`
	Age           int    `gorm:"not null"`
	Mobile        string `gorm:"not null"`
	Address       string `gorm:"not null"`
	Prescriptions []Prescription `gorm:"foreignKey:CustomerID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

type Prescription struct {
	ID          uint `gorm:"primaryKey"`
	CustomerID  uint `gorm:"not null;index"`
	Note        string
	TotalAmount decimal.Decimal      `gorm:"type:numeric(14,2);not null;default:0"`
	Details     []PrescriptionDetail `gorm:"foreignKey:PrescriptionID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type PrescriptionDetail struct {
	ID             uint `gorm:"primaryKey"`
	PrescriptionID uint `gorm:"not null;index"`
	MedicationID   uint `gorm:"not null;index"`
	Count          int  `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (PrescriptionDetail) TableName() string {
	return "prescription_details"
}
