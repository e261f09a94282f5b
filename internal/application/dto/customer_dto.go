package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerResponse agregado de cliente con su total histórico de compras.
type CustomerResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name,omitempty"`
	Email          string          `json:"email,omitempty"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
