package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (scope por tenant).
// El precio, la tasa de impuesto y el nombre se snapshotean en carritos y
// órdenes; el stock vive aparte en ProductStock.
type Product struct {
	ID          string
	TenantID    string
	SKU         string // código único por tenant
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	TaxRate     decimal.Decimal // porcentaje: 0, 5, 19...
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
