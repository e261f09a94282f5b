package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes y sus líneas.
type OrderRepository interface {
	// Create persiste la cabecera y todas las líneas.
	Create(order *entity.Order, items []*entity.OrderItem) error
	// GetByID devuelve nil si la orden no existe o fue soft-borrada.
	GetByID(id string) (*entity.Order, error)
	GetItems(orderID string) ([]*entity.OrderItem, error)
	// Update persiste la cabecera (totales, descuento, labels y metadatos de
	// anulación incluidos).
	Update(order *entity.Order) error
	// ReplaceItems reemplaza las líneas de una orden (edición no anulada).
	ReplaceItems(orderID string, items []*entity.OrderItem) error
	SoftDelete(id string) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Order, error)
	// SumActiveTotalByUser suma TotalAmount de las órdenes no anuladas ni
	// borradas del usuario (agregado de cliente).
	SumActiveTotalByUser(tenantID, userID string) (decimal.Decimal, error)
}
