package repository

import (
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// StockAdjustmentRepository define el puerto de persistencia para ajustes
// manuales de stock. Los ajustes nunca se borran físicamente: SoftDelete marca
// el ajuste como revertido y las lecturas normales lo excluyen.
type StockAdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment) error
	// GetActiveByID devuelve nil si el ajuste no existe o ya fue revertido.
	GetActiveByID(id string) (*entity.StockAdjustment, error)
	ListByTenant(tenantID string, productID string, limit, offset int) ([]*entity.StockAdjustment, error)
	// UpdateNotes actualiza solo reason/notes; cantidad y tipo son inmutables.
	UpdateNotes(id, reason, notes string, updatedAt time.Time) error
	SoftDelete(id string, deletedAt time.Time) error
}
