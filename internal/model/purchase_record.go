package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Action types recorded in the purchase ledger.
const (
	ActionNew    = "NEW"
	ActionUpdate = "UPDATE"
)

// PurchaseRecord is an append-only ledger entry mirroring every
// stock-affecting medicine mutation. Rows are never updated or deleted;
// medicine deletion intentionally leaves no entry.
type PurchaseRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MedicineID    string          `gorm:"column:medicine_id;index;not null"`
	Quantity      int             `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ActionType    string          `gorm:"type:varchar(10);not null"` // NEW | UPDATE
	LastStockDate time.Time       `gorm:"not null"`
	ExpiryDate    time.Time       `gorm:"not null"`
	CreatedAt     time.Time
}
