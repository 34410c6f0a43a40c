package dto

// PredictionResponse is one medicine's restock forecast.
type PredictionResponse struct {
	MedicineID       string  `json:"medicineId"`
	Name             string  `json:"name"`
	CurrentStock     int     `json:"current_stock"`
	DailySalesAvg    float64 `json:"daily_sales_avg"`
	DaysToStockout   int     `json:"predicted_restock_in_days"`
	SuggestedRestock int     `json:"stock_to_restock"`
	GeneratedAt      string  `json:"generated_at"`
}
