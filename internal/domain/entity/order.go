package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de descuento de la orden.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Order es una orden de venta. Se crea atómicamente con el descuento de stock
// de cada línea; una vez anulada (IsVoided) es inmutable salvo los metadatos
// de anulación.
type Order struct {
	ID             string
	TenantID       string
	UserID         string
	OrderDate      time.Time
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal // Subtotal + TaxAmount - DiscountAmount
	DiscountType   string          // percentage, fixed; vacío = sin descuento
	DiscountValue  decimal.Decimal
	LabelIDs       []string
	IsVoided       bool
	VoidedBy       string
	VoidedAt       *time.Time
	VoidReason     string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time // soft delete; NO restaura stock (eso es Void)
}

// OrderItem es una línea de orden con datos snapshoteados del producto para
// que las órdenes históricas sean inmunes a ediciones posteriores del catálogo.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje snapshoteado
	Subtotal    decimal.Decimal // UnitPrice * Quantity
}
