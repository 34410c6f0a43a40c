package service

import (
	"context"
	"math"
	"time"

	"pharmapos/internal/dto"
	"pharmapos/internal/repository"

	"github.com/shopspring/decimal"
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ReportService produces the sales dashboards: the zero-filled annual
// month-by-month rollup and the per-medicine distribution of units sold.
type ReportService interface {
	AnnualSales(ctx context.Context, year int) (*dto.AnnualSalesResponse, error)
	MedicineDistribution(ctx context.Context) ([]dto.MedicineDistributionEntry, error)
}

type reportService struct {
	sales repository.SaleRepository
}

func NewReportService(sales repository.SaleRepository) ReportService {
	return &reportService{sales: sales}
}

func (s *reportService) AnnualSales(ctx context.Context, year int) (*dto.AnnualSalesResponse, error) {
	if year < 2000 || year > 2100 {
		return nil, invalid("year", "year out of range")
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 999999999, time.UTC)

	rows, err := s.sales.MonthlyTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[int]decimal.Decimal, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		byMonth[row.Month] = row.Total
		total = total.Add(row.Total)
	}

	// Every month appears in the response, sold-nothing months as zero.
	monthly := make([]dto.MonthlySalesEntry, 0, 12)
	for m := 1; m <= 12; m++ {
		sales, ok := byMonth[m]
		if !ok {
			sales = decimal.Zero
		}
		monthly = append(monthly, dto.MonthlySalesEntry{
			Month:      monthNames[m-1],
			Sales:      sales,
			Percentage: percentage(sales, total),
		})
	}

	return &dto.AnnualSalesResponse{
		Year:             year,
		TotalAnnualSales: total,
		MonthlySales:     monthly,
		HasSales:         total.Sign() > 0,
	}, nil
}

func (s *reportService) MedicineDistribution(ctx context.Context) ([]dto.MedicineDistributionEntry, error) {
	rows, err := s.sales.MedicineTotals(ctx)
	if err != nil {
		return nil, err
	}

	totalQty := 0
	for _, row := range rows {
		totalQty += row.Quantity
	}
	totalDec := decimal.NewFromInt(int64(totalQty))

	entries := make([]dto.MedicineDistributionEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.MedicineDistributionEntry{
			Name:       row.Name,
			Quantity:   row.Quantity,
			Revenue:    row.Revenue,
			Percentage: percentage(decimal.NewFromInt(int64(row.Quantity)), totalDec),
		})
	}
	return entries, nil
}

// percentage returns part/whole*100 rounded to two decimals; a zero
// whole yields 0 rather than NaN.
func percentage(part, whole decimal.Decimal) float64 {
	if whole.Sign() == 0 {
		return 0
	}
	f, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Float64()
	return math.Round(f*100) / 100
}
