package repository

import (
	"context"

	"pharmapos/internal/model"

	"gorm.io/gorm"
)

// MedicineRepository defines the data access contract for medicines.
// Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type MedicineRepository interface {
	Create(ctx context.Context, m *model.Medicine) error
	FindByMedicineID(ctx context.Context, medicineID string) (*model.Medicine, error)
	// FindByNameFold matches the exact name case-insensitively.
	FindByNameFold(ctx context.Context, name string) (*model.Medicine, error)
	// FindLast returns the most recently created medicine, or
	// gorm.ErrRecordNotFound when the collection is empty. The sequence
	// allocator reads its last id from here.
	FindLast(ctx context.Context) (*model.Medicine, error)
	List(ctx context.Context) ([]model.Medicine, error)
	Update(ctx context.Context, m *model.Medicine) error
	// DeleteByMedicineID reports whether a row was actually removed.
	DeleteByMedicineID(ctx context.Context, medicineID string) (bool, error)
}

type medicineRepo struct{ db *gorm.DB }

func NewMedicineRepository(db *gorm.DB) MedicineRepository { return &medicineRepo{db: db} }

func (r *medicineRepo) Create(ctx context.Context, m *model.Medicine) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *medicineRepo) FindByMedicineID(ctx context.Context, medicineID string) (*model.Medicine, error) {
	var m model.Medicine
	err := r.db.WithContext(ctx).Where("medicine_id = ?", medicineID).First(&m).Error
	return &m, err
}

func (r *medicineRepo) FindByNameFold(ctx context.Context, name string) (*model.Medicine, error) {
	var m model.Medicine
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&m).Error
	return &m, err
}

func (r *medicineRepo) FindLast(ctx context.Context) (*model.Medicine, error) {
	var m model.Medicine
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&m).Error
	return &m, err
}

func (r *medicineRepo) List(ctx context.Context) ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := r.db.WithContext(ctx).Order("medicine_id ASC").Find(&medicines).Error
	return medicines, err
}

func (r *medicineRepo) Update(ctx context.Context, m *model.Medicine) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *medicineRepo) DeleteByMedicineID(ctx context.Context, medicineID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("medicine_id = ?", medicineID).Delete(&model.Medicine{})
	return res.RowsAffected > 0, res.Error
}
