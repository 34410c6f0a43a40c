package repository

import (
	"context"

	"pharmapos/internal/model"

	"gorm.io/gorm"
)

type PredictionRepository interface {
	// ReplaceAll swaps the whole snapshot atomically: the previous rows
	// are removed and the new ones inserted in one transaction.
	ReplaceAll(ctx context.Context, rows []model.RestockPrediction) error
	List(ctx context.Context) ([]model.RestockPrediction, error)
}

type predictionRepo struct{ db *gorm.DB }

func NewPredictionRepository(db *gorm.DB) PredictionRepository { return &predictionRepo{db: db} }

func (r *predictionRepo) ReplaceAll(ctx context.Context, rows []model.RestockPrediction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.RestockPrediction{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *predictionRepo) List(ctx context.Context) ([]model.RestockPrediction, error) {
	var rows []model.RestockPrediction
	err := r.db.WithContext(ctx).Order("days_to_stockout ASC").Find(&rows).Error
	return rows, err
}
