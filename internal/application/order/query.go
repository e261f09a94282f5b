package order

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// GetOrder obtiene una orden con sus líneas.
func (uc *UseCase) GetOrder(ctx context.Context, tenantID, orderID string) (*dto.OrderResponse, error) {
	ord, err := uc.getTenantOrder(tenantID, orderID)
	if err != nil {
		return nil, err
	}
	items, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(ord, items), nil
}

// ListOrders lista órdenes del tenant (sin líneas), excluyendo soft-borradas.
func (uc *UseCase) ListOrders(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	page.DefaultPage()
	list, err := uc.orderRepo.ListByTenant(tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, ord := range list {
		out = append(out, toOrderResponse(ord, nil))
	}
	return out, nil
}

// DeleteOrder soft-borra una orden. Ortogonal a la anulación: NO restaura
// stock (restaurar es responsabilidad exclusiva de VoidOrder). El agregado de
// cliente se re-sincroniza porque la orden borrada deja de sumar.
func (uc *UseCase) DeleteOrder(ctx context.Context, tenantID, orderID string) error {
	ord, err := uc.getTenantOrder(tenantID, orderID)
	if err != nil {
		return err
	}
	if err := uc.orderRepo.SoftDelete(orderID); err != nil {
		return err
	}
	uc.syncCustomer(ctx, tenantID, ord.UserID, "order_deleted")
	return nil
}

// GetReceipt renderiza el comprobante PDF de la orden.
func (uc *UseCase) GetReceipt(ctx context.Context, tenantID, orderID string) ([]byte, error) {
	ord, err := uc.getTenantOrder(tenantID, orderID)
	if err != nil {
		return nil, err
	}
	items, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		return nil, err
	}
	return uc.receipts.GenerateOrderReceipt(ctx, ord, items)
}

func (uc *UseCase) getTenantOrder(tenantID, orderID string) (*entity.Order, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if ord.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return ord, nil
}
