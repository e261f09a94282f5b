package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de disponibilidad de stock. Siempre derivados de la cantidad y el
// mínimo configurado, nunca asignados de forma independiente.
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// ProductStock representa la cantidad actual de un producto dentro de un tenant.
// Quantity nunca es negativa; Status se recalcula en cada mutación.
type ProductStock struct {
	ProductID            string
	TenantID             string
	Quantity             decimal.Decimal
	MinimumStockQuantity *decimal.Decimal // umbral de low_stock (opcional)
	Status               string
	UpdatedAt            time.Time
}
