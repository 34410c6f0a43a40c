package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplier order statuses.
const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// SupplierOrder is a purchase order placed with a supplier. OrderID is a
// 7-digit zero-padded business identifier ("0000001"). TotalAmount is
// derived: it is always recomputed from the line items before persistence.
type SupplierOrder struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID              string          `gorm:"column:order_id;uniqueIndex;not null"`
	SupplierID           string          `gorm:"index;not null"`
	OrderDate            time.Time       `gorm:"not null"`
	ExpectedDeliveryDate time.Time       `gorm:"not null"`
	ActualDeliveryDate   *time.Time
	OrderStatus          string          `gorm:"type:varchar(20);not null;default:'Pending'"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Items []SupplierOrderItem `gorm:"foreignKey:SupplierOrderID;constraint:OnDelete:CASCADE"`
}

// SupplierOrderItem is one medicine line within a supplier order.
type SupplierOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierOrderID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	MedicineID       string          `gorm:"column:medicine_id;not null"`
	OrderedQuantity  int             `gorm:"not null"`
	ReceivedQuantity int             `gorm:"not null;default:0"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
