package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea solicitada al crear/editar una orden.
// UnitPrice en cero usa el precio actual del catálogo.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest crea una orden descontando stock por línea.
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items"`
	DiscountType  string             `json:"discount_type"` // percentage | fixed | vacío
	DiscountValue decimal.Decimal    `json:"discount_value"`
	LabelIDs      []string           `json:"label_ids"`
	OrderDate     *time.Time         `json:"order_date"` // nil = ahora
}

// UpdateOrderRequest edita una orden no anulada. Los cambios de cantidad son
// informativos: el stock no se re-valida ni se re-descuenta en updates.
type UpdateOrderRequest struct {
	Items         []OrderItemRequest `json:"items"`
	DiscountType  string             `json:"discount_type"`
	DiscountValue decimal.Decimal    `json:"discount_value"`
	LabelIDs      []string           `json:"label_ids"`
}

// VoidOrderRequest anula una orden restaurando el stock de cada línea.
type VoidOrderRequest struct {
	Reason string `json:"reason"`
}

// RecordPaymentRequest registra un pago contra una orden. Amount en cero usa
// el total de la orden.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderItemResponse línea de orden con snapshots.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse representación completa de una orden.
type OrderResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	OrderDate      time.Time           `json:"order_date"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	DiscountType   string              `json:"discount_type,omitempty"`
	DiscountValue  decimal.Decimal     `json:"discount_value"`
	LabelIDs       []string            `json:"label_ids,omitempty"`
	IsVoided       bool                `json:"is_voided"`
	VoidedBy       string              `json:"voided_by,omitempty"`
	VoidedAt       *time.Time          `json:"voided_at,omitempty"`
	VoidReason     string              `json:"void_reason,omitempty"`
	Items          []OrderItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}
