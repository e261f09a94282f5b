package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el stock por
// tenant+producto. Las mutaciones siempre ocurren dentro de una transacción
// con la fila bloqueada (GetForUpdate) para serializar escritores concurrentes.
type StockRepository interface {
	Get(tenantID, productID string) (*entity.ProductStock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la tx.
	GetForUpdate(tenantID, productID string) (*entity.ProductStock, error)
	Upsert(stock *entity.ProductStock) error
}
