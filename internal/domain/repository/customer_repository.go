package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para el agregado de cliente.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByUser(tenantID, userID string) (*entity.Customer, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
}
