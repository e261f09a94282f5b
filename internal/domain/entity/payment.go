package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago. Un pago "completed" bloquea la anulación de su orden;
// "refunded" y "reversed" no cuentan como activos.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusReversed  = "reversed"
)

// Payment es un pago registrado contra una orden.
type Payment struct {
	ID        string
	TenantID  string
	OrderID   string
	Amount    decimal.Decimal
	Status    string
	CreatedAt time.Time
}
