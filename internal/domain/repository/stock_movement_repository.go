package repository

import (
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// MovementFilter filtros de consulta del libro de movimientos.
type MovementFilter struct {
	ProductID    string
	MovementType string
	Reason       string
	From         *time.Time
	To           *time.Time
}

// StockMovementRepository define el puerto del libro de movimientos de stock.
// Solo inserta y lista: las entradas nunca se actualizan ni se borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByTenant devuelve movimientos del tenant, más recientes primero.
	ListByTenant(tenantID string, filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
}
