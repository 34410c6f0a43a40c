package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment types accepted at the point of sale.
const (
	PaymentCash   = "Cash"
	PaymentCredit = "Credit"
)

// Sale is one point-of-sale transaction. InvoiceID ("IN#####") comes
// from a Postgres sequence, the one allocator that is atomic.
type Sale struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID     string    `gorm:"column:invoice_id;uniqueIndex;not null"`
	OrderDateTime time.Time `gorm:"index;not null"`
	PaymentType   string    `gorm:"type:varchar(10);not null"` // Cash | Credit
	CashierID     string    `gorm:"not null"`
	CreatedAt     time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem is one medicine line within a sale. Name is denormalized at
// sale time so reports survive later medicine renames or deletions.
type SaleItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	MedicineID string          `gorm:"column:medicine_id;not null"`
	Name       string          `gorm:"not null"`
	QtySold    int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
