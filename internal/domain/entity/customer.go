package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer es el agregado de cliente vinculado a un usuario comprador.
// TotalPurchases se recalcula tras cada creación/edición/anulación de orden
// sumando las órdenes no anuladas ni borradas (side effect no crítico).
type Customer struct {
	ID             string
	TenantID       string
	UserID         string
	Name           string
	Email          string
	TotalPurchases decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
