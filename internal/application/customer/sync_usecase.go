// Package customer mantiene el agregado de cliente: el total histórico de
// compras se recalcula desde las órdenes tras cada create/update/void/delete.
package customer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// SyncUseCase recalcula TotalPurchases de un cliente sumando sus órdenes no
// anuladas ni borradas. Es un side effect no crítico: el caller registra el
// error y nunca lo propaga a la operación de orden que lo disparó.
type SyncUseCase struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

// NewSyncUseCase construye el caso de uso de sincronización.
func NewSyncUseCase(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository) *SyncUseCase {
	return &SyncUseCase{customerRepo: customerRepo, orderRepo: orderRepo}
}

// SyncTotals recalcula y persiste el total de compras del usuario, creando el
// cliente si todavía no existe.
func (uc *SyncUseCase) SyncTotals(ctx context.Context, tenantID, userID string) error {
	total, err := uc.orderRepo.SumActiveTotalByUser(tenantID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	cust, err := uc.customerRepo.GetByUser(tenantID, userID)
	if err != nil {
		return err
	}
	if cust == nil {
		cust = &entity.Customer{
			ID:             uuid.New().String(),
			TenantID:       tenantID,
			UserID:         userID,
			TotalPurchases: total,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return uc.customerRepo.Create(cust)
	}
	cust.TotalPurchases = total
	cust.UpdatedAt = now
	return uc.customerRepo.Update(cust)
}

// GetByUser devuelve el agregado de cliente de un usuario.
func (uc *SyncUseCase) GetByUser(ctx context.Context, tenantID, userID string) (*dto.CustomerResponse, error) {
	cust, err := uc.customerRepo.GetByUser(tenantID, userID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(cust), nil
}

// ListByTenant lista clientes del tenant con paginación.
func (uc *SyncUseCase) ListByTenant(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.customerRepo.ListByTenant(tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		Name:           c.Name,
		Email:          c.Email,
		TotalPurchases: c.TotalPurchases,
		UpdatedAt:      c.UpdatedAt,
	}
}
