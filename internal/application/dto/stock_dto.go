package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequest crea un ajuste manual de stock.
type CreateAdjustmentRequest struct {
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"` // increase | decrease
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
	Notes     string          `json:"notes"`
}

// UpdateAdjustmentRequest edita reason/notes de un ajuste (cantidad y tipo son
// inmutables).
type UpdateAdjustmentRequest struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// AdjustmentResponse representación de un ajuste.
type AdjustmentResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Type             string          `json:"type"`
	Quantity         decimal.Decimal `json:"quantity"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	Reason           string          `json:"reason"`
	Notes            string          `json:"notes,omitempty"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
	Reversed         bool            `json:"reversed"`
}

// StockResponse cantidad y estado de stock de un producto.
type StockResponse struct {
	ProductID            string           `json:"product_id"`
	Quantity             decimal.Decimal  `json:"quantity"`
	MinimumStockQuantity *decimal.Decimal `json:"minimum_stock_quantity,omitempty"`
	Status               string           `json:"status"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// MovementListRequest filtros de consulta del libro de movimientos.
type MovementListRequest struct {
	PageRequest
	ProductID string `query:"product_id"`
	Type      string `query:"type"`
	Reason    string `query:"reason"`
	From      string `query:"from"` // RFC 3339 o 2006-01-02
	To        string `query:"to"`
}

// MovementResponse una entrada del libro de movimientos.
type MovementResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Type             string          `json:"type"`
	Quantity         decimal.Decimal `json:"quantity"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	Reason           string          `json:"reason"`
	ReferenceID      string          `json:"reference_id,omitempty"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
}
