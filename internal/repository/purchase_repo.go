package repository

import (
	"context"

	"pharmapos/internal/model"

	"gorm.io/gorm"
)

// PurchaseRepository is the append-only ledger. There is deliberately no
// update or delete: records are immutable once written.
type PurchaseRepository interface {
	Append(ctx context.Context, rec *model.PurchaseRecord) error
	// ListNewestFirst returns the full ledger, most recent entry first.
	ListNewestFirst(ctx context.Context) ([]model.PurchaseRecord, error)
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) Append(ctx context.Context, rec *model.PurchaseRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *purchaseRepo) ListNewestFirst(ctx context.Context) ([]model.PurchaseRecord, error) {
	var records []model.PurchaseRecord
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error
	return records, err
}
