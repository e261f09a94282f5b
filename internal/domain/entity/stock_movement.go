package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de stock.
const (
	MovementTypeIncrease   = "increase"
	MovementTypeDecrease   = "decrease"
	MovementTypeAdjustment = "adjustment"
)

// Razones estándar de movimiento. Reason es texto libre pero estas constantes
// cubren las rutas autorizadas de mutación.
const (
	MovementReasonSale               = "sale"
	MovementReasonOrderVoid          = "order_void"
	MovementReasonAdjustment         = "adjustment"
	MovementReasonAdjustmentReversal = "adjustment_reversal"
	MovementReasonManual             = "manual"
)

// StockMovement es una entrada del libro de movimientos: append-only, nunca se
// actualiza ni se borra. PreviousQuantity + delta firmado == NewQuantity.
type StockMovement struct {
	ID               string
	TenantID         string
	ProductID        string
	MovementType     string          // increase, decrease, adjustment
	Quantity         decimal.Decimal // magnitud positiva
	PreviousQuantity decimal.Decimal
	NewQuantity      decimal.Decimal
	Reason           string
	ReferenceID      string // orden o ajuste que originó el movimiento; vacío = manual
	CreatedBy        string
	CreatedAt        time.Time
}

// SignedDelta devuelve NewQuantity - PreviousQuantity. La suma de los deltas
// firmados de un producto reconcilia su cantidad actual.
func (m *StockMovement) SignedDelta() decimal.Decimal {
	return m.NewQuantity.Sub(m.PreviousQuantity)
}
