package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CartRepository define el puerto de persistencia para líneas de carrito.
type CartRepository interface {
	Create(item *entity.CartItem) error
	// GetActiveByID devuelve nil si la línea no existe o fue soft-borrada.
	GetActiveByID(id string) (*entity.CartItem, error)
	// SumActiveQuantity suma las cantidades no borradas de (tenant, user,
	// product). excludeID omite la línea que se está actualizando; vacío en creates.
	SumActiveQuantity(tenantID, userID, productID, excludeID string) (decimal.Decimal, error)
	ListByUser(tenantID, userID string) ([]*entity.CartItem, error)
	Update(item *entity.CartItem) error
	SoftDelete(id string) error
	// ConsumeByUser soft-borra las líneas del usuario para los productos dados
	// (consumo por checkout).
	ConsumeByUser(tenantID, userID string, productIDs []string) error
}
