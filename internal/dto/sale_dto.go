package dto

import "github.com/shopspring/decimal"

// Wire names follow the billing form: qty_sold, unitprice, payment_type.

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemInput struct {
	MedicineID string          `json:"medicineId" validate:"required"`
	Name       string          `json:"name"       validate:"required"`
	QtySold    int             `json:"qty_sold"   validate:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unitprice"  validate:"required"`
	// totalprice is recomputed server-side as qty_sold * unitprice.
	TotalPrice decimal.Decimal `json:"totalprice"`
}

type CreateSaleRequest struct {
	Medicines   []SaleItemInput `json:"medicines"    validate:"required,min=1,dive"`
	PaymentType string          `json:"payment_type" validate:"required,oneof=Cash Credit"`
	CashierID   string          `json:"cashier_id"   validate:"required"`
}

type UpdateSaleRequest struct {
	Medicines   []SaleItemInput `json:"medicines"    validate:"omitempty,min=1,dive"`
	PaymentType *string         `json:"payment_type" validate:"omitempty,oneof=Cash Credit"`
	CashierID   *string         `json:"cashier_id"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	MedicineID string          `json:"medicineId"`
	Name       string          `json:"name"`
	QtySold    int             `json:"qty_sold"`
	UnitPrice  decimal.Decimal `json:"unitprice"`
	TotalPrice decimal.Decimal `json:"totalprice"`
}

type SaleResponse struct {
	InvoiceID     string             `json:"invoiceId"`
	Medicines     []SaleItemResponse `json:"medicines"`
	OrderDateTime string             `json:"orderdate_time"`
	PaymentType   string             `json:"payment_type"`
	CashierID     string             `json:"cashier_id"`
}
