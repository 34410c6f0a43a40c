package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier holds commercial contact data. SupplierID ("SUP###") is the
// business identifier.
type Supplier struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID   string    `gorm:"column:supplier_id;uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Phone        *string
	Email        *string
	Address      *string
	LeadTimeDays int `gorm:"not null;default:7"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
