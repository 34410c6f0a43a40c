package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateSupplierRequest struct {
	Name         string  `json:"name"         validate:"required,min=2,max=120"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"        validate:"omitempty,email"`
	Address      *string `json:"address"`
	LeadTimeDays int     `json:"leadTimeDays" validate:"min=0"`
}

type UpdateSupplierRequest struct {
	Name         *string `json:"name"         validate:"omitempty,min=2,max=120"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"        validate:"omitempty,email"`
	Address      *string `json:"address"`
	LeadTimeDays *int    `json:"leadTimeDays" validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SupplierResponse struct {
	SupplierID   string  `json:"supplierId"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	LeadTimeDays int     `json:"leadTimeDays"`
}
