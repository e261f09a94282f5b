package entity

import "time"

// Roles de usuario dentro de un tenant.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
	RoleVendedor = "vendedor"
)

// User es un usuario del back office (scope por tenant).
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, operador, vendedor
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
