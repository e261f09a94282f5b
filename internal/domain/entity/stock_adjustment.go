package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ajuste manual de stock.
const (
	AdjustmentTypeIncrease = "increase"
	AdjustmentTypeDecrease = "decrease"
)

// StockAdjustment es una corrección manual de stock iniciada por un usuario
// privilegiado. Al crearse muta ProductStock y registra un movimiento; al
// soft-borrarse se revierte su efecto con un movimiento compensatorio.
// Quantity y Type son inmutables una vez creado (cambiarlos desincronizaría el
// libro de movimientos); solo Reason y Notes son editables.
type StockAdjustment struct {
	ID               string
	TenantID         string
	ProductID        string
	AdjustmentType   string          // increase, decrease
	Quantity         decimal.Decimal // magnitud positiva
	PreviousQuantity decimal.Decimal // snapshot al momento de crear
	NewQuantity      decimal.Decimal // snapshot al momento de crear
	Reason           string          // obligatorio, máx 255
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time // soft delete = revertido
}

// IsReversed indica si el ajuste ya fue revertido (soft-borrado).
func (a *StockAdjustment) IsReversed() bool { return a.DeletedAt != nil }
