package order

import (
	"context"
	"fmt"
	"time"

	appstock "github.com/jhoicas/backoffice-api/internal/application/stock"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// VoidOrder anula una orden: restaura el stock de cada línea con movimientos
// order_void referenciando la orden y marca la anulación, todo en una
// transacción (o se restauran todas las líneas o ninguna). Precondiciones:
// la orden no está ya anulada y no tiene pagos activos. Si la verificación de
// pagos no responde, la anulación se rechaza (fail-closed): preferimos
// bloquear un void a anular una orden con un pago vigente.
func (uc *UseCase) VoidOrder(ctx context.Context, tenantID, userID, orderID, reason string) error {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return domain.ErrNotFound
	}
	if ord.TenantID != tenantID {
		return domain.ErrForbidden
	}
	if ord.IsVoided {
		return domain.ErrOrderVoided
	}

	hasActive, err := uc.paymentRepo.HasActivePayments(tenantID, orderID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPaymentCheckUnavailable, err)
	}
	if hasActive {
		return domain.ErrHasActivePayments
	}

	now := time.Now()
	err = uc.txRunner.RunOrder(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		_ repository.CartRepository,
	) error {
		items, err := orderRepo.GetItems(orderID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if _, _, err := appstock.ApplyDeltaInTx(
				stockRepo, movRepo,
				tenantID, item.ProductID,
				item.Quantity,
				entity.MovementTypeIncrease, entity.MovementReasonOrderVoid,
				orderID, userID, now,
			); err != nil {
				return err
			}
		}
		ord.IsVoided = true
		ord.VoidedBy = userID
		ord.VoidedAt = &now
		ord.VoidReason = reason
		ord.UpdatedAt = now
		return orderRepo.Update(ord)
	})
	if err != nil {
		return err
	}

	uc.syncCustomer(ctx, tenantID, ord.UserID, "order_voided")
	return nil
}
