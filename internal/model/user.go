package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles known to the system.
const (
	RoleAdmin    = "admin"
	RoleCashier  = "cashier"
	RoleSupplier = "supplier"
)

// User stores login credentials with role-based access. CashierID
// ("C###") is only set for cashier accounts, which log in by that id
// instead of email. PasswordHash is bcrypt and never leaves the server.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	CashierID    *string   `gorm:"column:cashier_id;uniqueIndex"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
