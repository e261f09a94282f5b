package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos del catálogo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
}
