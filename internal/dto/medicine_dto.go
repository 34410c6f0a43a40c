package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Dates travel as "YYYY-MM-DD" strings and are parsed (and normalized to
// midnight) by the service so each rule can fail with its field name.

type CreateMedicineRequest struct {
	Name          string          `json:"name"          validate:"required,min=2,max=120"`
	ExpiryDate    string          `json:"expiryDate"    validate:"required"`
	Price         decimal.Decimal `json:"price"         validate:"required"`
	Quantity      int             `json:"quantity"      validate:"min=0"`
	RestockedDate string          `json:"restockedDate" validate:"required"`
	SupplierID    string          `json:"supplierId"    validate:"required"`
}

// UpdateMedicineRequest may carry medicineId/batchNumber, but both are
// immutable: the service silently restores the stored values.
type UpdateMedicineRequest struct {
	MedicineID    string          `json:"medicineId"`
	BatchNumber   string          `json:"batchNumber"`
	Name          string          `json:"name"          validate:"required,min=2,max=120"`
	ExpiryDate    string          `json:"expiryDate"    validate:"required"`
	Price         decimal.Decimal `json:"price"         validate:"required"`
	Quantity      int             `json:"quantity"      validate:"min=0"`
	RestockedDate string          `json:"restockedDate" validate:"required"`
	SupplierID    string          `json:"supplierId"    validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MedicineResponse struct {
	MedicineID    string          `json:"medicineId"`
	Name          string          `json:"name"`
	BatchNumber   string          `json:"batchNumber"`
	ExpiryDate    string          `json:"expiryDate"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	RestockedDate string          `json:"restockedDate"`
	SupplierID    string          `json:"supplierId"`
}

type NextIDsResponse struct {
	MedicineID  string `json:"medicineId"`
	BatchNumber string `json:"batchNumber"`
}

// MedicineLookupResponse is the billing-form autofill payload.
type MedicineLookupResponse struct {
	MedicineID string          `json:"medicineId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
}

type MedicineNameItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PurchaseRecordResponse struct {
	MedicineID    string          `json:"medicineId"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	ActionType    string          `json:"actionType"`
	LastStockDate string          `json:"lastStockDate"`
	ExpiryDate    string          `json:"expiryDate"`
	CreatedAt     string          `json:"createdAt"`
}
