package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest agrega un producto al carrito del usuario.
type AddCartItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// UpdateCartItemRequest cambia la cantidad de una línea de carrito.
type UpdateCartItemRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// CartItemResponse representación de una línea de carrito.
type CartItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     decimal.Decimal `json:"quantity"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
