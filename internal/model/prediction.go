package model

import (
	"time"

	"github.com/google/uuid"
)

// RestockPrediction is one row of the restock-alert snapshot. The whole
// snapshot is replaced on each recompute; rows are not edited in place.
type RestockPrediction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MedicineID    string    `gorm:"column:medicine_id;uniqueIndex;not null"`
	Name          string    `gorm:"not null"`
	CurrentStock  int       `gorm:"not null"`
	DailySalesAvg float64   `gorm:"not null"`
	// DaysToStockout is 0 when the medicine has no sales history.
	DaysToStockout   int       `gorm:"not null"`
	SuggestedRestock int       `gorm:"not null"`
	GeneratedAt      time.Time `gorm:"not null"`
}
