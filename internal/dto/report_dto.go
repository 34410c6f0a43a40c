package dto

import "github.com/shopspring/decimal"

// MonthlySalesEntry is one zero-filled month in the annual rollup.
type MonthlySalesEntry struct {
	Month      string          `json:"month"`
	Sales      decimal.Decimal `json:"sales"`
	Percentage float64         `json:"percentage"`
}

type AnnualSalesResponse struct {
	Year             int                 `json:"year"`
	TotalAnnualSales decimal.Decimal     `json:"totalAnnualSales"`
	MonthlySales     []MonthlySalesEntry `json:"monthlySales"`
	HasSales         bool                `json:"hasSales"`
}

// MedicineDistributionEntry is one medicine's share of total units sold,
// sorted descending by quantity.
type MedicineDistributionEntry struct {
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage float64         `json:"percentage"`
}
