// Package stock contiene la lógica pura de stock (sin dependencias de
// persistencia): derivación de estado y validación de deltas.
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// DeriveStatus calcula el estado de disponibilidad como función pura de
// (cantidad, mínimo configurado):
//
//	quantity == 0                  -> out_of_stock
//	0 < quantity <= minimum        -> low_stock
//	resto                          -> in_stock
//
// Sin mínimo configurado nunca hay low_stock.
func DeriveStatus(quantity decimal.Decimal, minimum *decimal.Decimal) string {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return entity.StockStatusOutOfStock
	}
	if minimum != nil && quantity.LessThanOrEqual(*minimum) {
		return entity.StockStatusLowStock
	}
	return entity.StockStatusInStock
}

// CanApply indica si aplicar el delta firmado dejaría la cantidad >= 0.
func CanApply(current, signedDelta decimal.Decimal) bool {
	return !current.Add(signedDelta).IsNegative()
}
