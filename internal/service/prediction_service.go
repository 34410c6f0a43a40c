package service

import (
	"context"
	"math"
	"time"

	"pharmapos/internal/dto"
	"pharmapos/internal/model"
	"pharmapos/internal/repository"
)

// PredictionService maintains the restock-forecast snapshot. Recompute
// rebuilds the whole snapshot from sales history; List serves the
// stored rows without recomputing.
type PredictionService interface {
	Recompute(ctx context.Context) error
	List(ctx context.Context) ([]dto.PredictionResponse, error)
}

type predictionService struct {
	predictions repository.PredictionRepository
	medicines   repository.MedicineRepository
	sales       repository.SaleRepository
	threshold   int
	now         func() time.Time
}

// NewPredictionService wires the predictor. threshold is the stock level
// below which a restock is suggested.
func NewPredictionService(predictions repository.PredictionRepository, medicines repository.MedicineRepository, sales repository.SaleRepository, threshold int) PredictionService {
	return &predictionService{
		predictions: predictions,
		medicines:   medicines,
		sales:       sales,
		threshold:   threshold,
		now:         time.Now,
	}
}

func (s *predictionService) Recompute(ctx context.Context) error {
	medicines, err := s.medicines.List(ctx)
	if err != nil {
		return err
	}
	activity, err := s.sales.SalesActivityByMedicine(ctx)
	if err != nil {
		return err
	}
	byMedicine := make(map[string]repository.SalesActivity, len(activity))
	for _, a := range activity {
		byMedicine[a.MedicineID] = a
	}

	generated := s.now().UTC()
	rows := make([]model.RestockPrediction, 0, len(medicines))
	for _, m := range medicines {
		var avg float64
		var days int
		if a, ok := byMedicine[m.MedicineID]; ok && a.TotalQty > 0 {
			// Average over the inclusive span between the first and last
			// sale; a single-day history counts as one day.
			span := int(midnight(a.LastSale).Sub(midnight(a.FirstSale)).Hours()/24) + 1
			avg = float64(a.TotalQty) / float64(span)
			if avg > 0 {
				days = int(math.Floor(float64(m.Quantity) / avg))
			}
		}
		suggested := s.threshold - m.Quantity
		if suggested < 0 {
			suggested = 0
		}
		rows = append(rows, model.RestockPrediction{
			MedicineID:       m.MedicineID,
			Name:             m.Name,
			CurrentStock:     m.Quantity,
			DailySalesAvg:    math.Round(avg*100) / 100,
			DaysToStockout:   days,
			SuggestedRestock: suggested,
			GeneratedAt:      generated,
		})
	}

	return s.predictions.ReplaceAll(ctx, rows)
}

func (s *predictionService) List(ctx context.Context) ([]dto.PredictionResponse, error) {
	rows, err := s.predictions.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PredictionResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, dto.PredictionResponse{
			MedicineID:       row.MedicineID,
			Name:             row.Name,
			CurrentStock:     row.CurrentStock,
			DailySalesAvg:    row.DailySalesAvg,
			DaysToStockout:   row.DaysToStockout,
			SuggestedRestock: row.SuggestedRestock,
			GeneratedAt:      row.GeneratedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}
