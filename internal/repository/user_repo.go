package repository

import (
	"context"

	"pharmapos/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByCashierID(ctx context.Context, cashierID string) (*model.User, error)
	// FindLastCashier returns the most recently created cashier account,
	// feeding the C### allocator.
	FindLastCashier(ctx context.Context) (*model.User, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *userRepo) FindByCashierID(ctx context.Context, cashierID string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("cashier_id = ?", cashierID).First(&u).Error
	return &u, err
}

func (r *userRepo) FindLastCashier(ctx context.Context) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND cashier_id IS NOT NULL", model.RoleCashier).
		Order("created_at DESC").First(&u).Error
	return &u, err
}
