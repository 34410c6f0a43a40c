package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role"     validate:"required,oneof=admin supplier"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterCashierRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type LoginCashierRequest struct {
	CashierID string `json:"cashierId" validate:"required"`
	Password  string `json:"password"  validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type RegisterResponse struct {
	Message   string `json:"message"`
	CashierID string `json:"cashierId,omitempty"`
}
