package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem es una línea de carrito de un usuario. Representa una reserva
// blanda: la verificación contra stock se hace al crear/actualizar la línea,
// pero el stock solo se descuenta al crear la orden.
type CartItem struct {
	ID           string
	TenantID     string
	UserID       string
	ProductID    string
	Quantity     decimal.Decimal
	ProductName  string          // snapshot al agregar
	ProductPrice decimal.Decimal // snapshot al agregar
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // soft delete: removido o consumido por checkout
}
