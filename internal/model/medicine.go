package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medicine is one inventory line. ID is the internal storage handle;
// MedicineID ("MED###") and BatchNumber ("B######") are the business
// identifiers every public API addresses the record by.
// Invariant: RestockedDate <= today < ExpiryDate.
type Medicine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MedicineID    string          `gorm:"column:medicine_id;uniqueIndex;not null"`
	Name          string          `gorm:"index;not null"`
	BatchNumber   string          `gorm:"uniqueIndex;not null"`
	ExpiryDate    time.Time       `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity      int             `gorm:"not null;default:0"`
	RestockedDate time.Time       `gorm:"not null"`
	SupplierID    string          `gorm:"index;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
