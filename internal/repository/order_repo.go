package repository

import (
	"context"
	"errors"

	"pharmapos/internal/model"
	"pharmapos/internal/sequence"

	"gorm.io/gorm"
)

type OrderRepository interface {
	// Create allocates the 7-digit orderId immediately before the insert
	// (read-last, increment). The unique index on order_id is the only
	// protection against two concurrent creations racing on the same id.
	Create(ctx context.Context, o *model.SupplierOrder) error
	FindByOrderID(ctx context.Context, orderID string) (*model.SupplierOrder, error)
	List(ctx context.Context) ([]model.SupplierOrder, error)
	// Update persists the order; when replaceItems is set the stored line
	// items are swapped for o.Items in the same transaction.
	Update(ctx context.Context, o *model.SupplierOrder, replaceItems bool) error
	DeleteByOrderID(ctx context.Context, orderID string) (bool, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *model.SupplierOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last model.SupplierOrder
		lastID := ""
		switch err := tx.Order("order_id DESC").First(&last).Error; {
		case err == nil:
			lastID = last.OrderID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		o.OrderID = sequence.OrderID.Next(lastID)
		return tx.Create(o).Error
	})
}

func (r *orderRepo) FindByOrderID(ctx context.Context, orderID string) (*model.SupplierOrder, error) {
	var o model.SupplierOrder
	err := r.db.WithContext(ctx).Preload("Items").Where("order_id = ?", orderID).First(&o).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context) ([]model.SupplierOrder, error) {
	var orders []model.SupplierOrder
	err := r.db.WithContext(ctx).Preload("Items").Order("order_id ASC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) Update(ctx context.Context, o *model.SupplierOrder, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceItems {
			if err := tx.Where("supplier_order_id = ?", o.ID).
				Delete(&model.SupplierOrderItem{}).Error; err != nil {
				return err
			}
			for i := range o.Items {
				o.Items[i].SupplierOrderID = o.ID
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: replaceItems}).Save(o).Error
	})
}

func (r *orderRepo) DeleteByOrderID(ctx context.Context, orderID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.SupplierOrder{})
	return res.RowsAffected > 0, res.Error
}
