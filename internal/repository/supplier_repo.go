package repository

import (
	"context"

	"pharmapos/internal/model"

	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) error
	FindBySupplierID(ctx context.Context, supplierID string) (*model.Supplier, error)
	FindLast(ctx context.Context) (*model.Supplier, error)
	// List filters by a case-insensitive substring over id, name and
	// email when search is non-empty.
	List(ctx context.Context, search string) ([]model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) error
	DeleteBySupplierID(ctx context.Context, supplierID string) (bool, error)
}

type supplierRepo struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) SupplierRepository { return &supplierRepo{db: db} }

func (r *supplierRepo) Create(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supplierRepo) FindBySupplierID(ctx context.Context, supplierID string) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).Where("supplier_id = ?", supplierID).First(&s).Error
	return &s, err
}

func (r *supplierRepo) FindLast(ctx context.Context) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&s).Error
	return &s, err
}

func (r *supplierRepo) List(ctx context.Context, search string) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	q := r.db.WithContext(ctx).Order("supplier_id ASC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("supplier_id ILIKE ? OR name ILIKE ? OR email ILIKE ?", like, like, like)
	}
	err := q.Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) Update(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *supplierRepo) DeleteBySupplierID(ctx context.Context, supplierID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("supplier_id = ?", supplierID).Delete(&model.Supplier{})
	return res.RowsAffected > 0, res.Error
}
