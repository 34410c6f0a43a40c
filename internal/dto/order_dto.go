package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemInput struct {
	MedicineID       string          `json:"medicineId"       validate:"required"`
	OrderedQuantity  int             `json:"orderedQuantity"  validate:"required,gt=0"`
	ReceivedQuantity int             `json:"receivedQuantity" validate:"min=0"`
	TotalAmount      decimal.Decimal `json:"totalAmount"      validate:"required"`
}

type CreateOrderRequest struct {
	SupplierID           string           `json:"supplierId"           validate:"required"`
	OrderDate            string           `json:"orderDate"` // defaults to today
	ExpectedDeliveryDate string           `json:"expectedDeliveryDate" validate:"required"`
	Medicines            []OrderItemInput `json:"medicines"            validate:"required,min=1,dive"`
	OrderStatus          string           `json:"orderStatus"          validate:"omitempty,oneof=Pending Approved Completed Cancelled"`
	// TotalAmount from the client is ignored; the server recomputes it.
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// UpdateOrderRequest: nil Medicines leaves line items and total untouched.
type UpdateOrderRequest struct {
	ExpectedDeliveryDate *string          `json:"expectedDeliveryDate"`
	ActualDeliveryDate   *string          `json:"actualDeliveryDate"`
	Medicines            []OrderItemInput `json:"medicines" validate:"omitempty,min=1,dive"`
	OrderStatus          *string          `json:"orderStatus" validate:"omitempty,oneof=Pending Approved Completed Cancelled"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	MedicineID       string          `json:"medicineId"`
	OrderedQuantity  int             `json:"orderedQuantity"`
	ReceivedQuantity int             `json:"receivedQuantity"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
}

type OrderResponse struct {
	OrderID              string              `json:"orderId"`
	SupplierID           string              `json:"supplierId"`
	OrderDate            string              `json:"orderDate"`
	ExpectedDeliveryDate string              `json:"expectedDeliveryDate"`
	ActualDeliveryDate   *string             `json:"actualDeliveryDate"`
	Medicines            []OrderItemResponse `json:"medicines"`
	OrderStatus          string              `json:"orderStatus"`
	TotalAmount          decimal.Decimal     `json:"totalAmount"`
}
