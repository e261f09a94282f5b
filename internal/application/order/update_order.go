package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domorder "github.com/jhoicas/backoffice-api/internal/domain/order"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// UpdateOrder edita una orden no anulada recomputando los totales desde las
// líneas enviadas. El stock NO se re-valida ni se re-descuenta: fue
// comprometido al crear la orden y la edición es informativa. Cualquier cambio
// de cantidad se registra en warn para revisión del dueño de producto.
func (uc *UseCase) UpdateOrder(ctx context.Context, tenantID, userID, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
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
	if ord.IsVoided {
		// Una orden anulada es inmutable salvo sus metadatos de anulación.
		return nil, domain.ErrOrderVoided
	}

	items, lines, err := uc.buildItems(tenantID, orderID, in.Items)
	if err != nil {
		return nil, err
	}
	totals, err := domorder.ComputeTotals(lines, in.DiscountType, in.DiscountValue)
	if err != nil {
		return nil, err
	}

	// Flag de divergencia: si cambian cantidades, el stock consumido en la
	// creación ya no coincide con las líneas editadas.
	uc.flagQuantityChanges(ord.ID, items)

	now := time.Now()
	ord.Subtotal = totals.Subtotal
	ord.TaxAmount = totals.Tax
	ord.DiscountAmount = totals.Discount
	ord.TotalAmount = totals.Total
	ord.DiscountType = in.DiscountType
	ord.DiscountValue = in.DiscountValue
	ord.LabelIDs = in.LabelIDs
	ord.UpdatedAt = now

	err = uc.txRunner.RunOrder(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.StockRepository,
		orderRepo repository.OrderRepository,
		_ repository.CartRepository,
	) error {
		if err := orderRepo.Update(ord); err != nil {
			return err
		}
		return orderRepo.ReplaceItems(orderID, items)
	})
	if err != nil {
		return nil, err
	}

	uc.syncCustomer(ctx, tenantID, ord.UserID, "order_updated")
	return toOrderResponse(ord, items), nil
}

// flagQuantityChanges compara las cantidades nuevas contra las líneas
// persistidas y deja rastro en el log de cada divergencia de cantidad por
// producto (el update no toca stock, así que la divergencia queda visible).
func (uc *UseCase) flagQuantityChanges(orderID string, newItems []*entity.OrderItem) {
	existing, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudieron leer líneas previas para comparar cantidades")
		return
	}
	prevByProduct := make(map[string]decimal.Decimal, len(existing))
	for _, item := range existing {
		prevByProduct[item.ProductID] = prevByProduct[item.ProductID].Add(item.Quantity)
	}
	newByProduct := make(map[string]decimal.Decimal, len(newItems))
	for _, item := range newItems {
		newByProduct[item.ProductID] = newByProduct[item.ProductID].Add(item.Quantity)
	}
	for productID, newQty := range newByProduct {
		if prev, ok := prevByProduct[productID]; !ok || !prev.Equal(newQty) {
			uc.log.Warn().
				Str("order_id", orderID).
				Str("product_id", productID).
				Str("previous_quantity", prev.String()).
				Str("new_quantity", newQty.String()).
				Msg("cantidad de línea modificada en update; el stock no se re-ajusta")
		}
	}
	for productID, prev := range prevByProduct {
		if _, ok := newByProduct[productID]; !ok {
			uc.log.Warn().
				Str("order_id", orderID).
				Str("product_id", productID).
				Str("previous_quantity", prev.String()).
				Msg("línea eliminada en update; el stock no se re-ajusta")
		}
	}
}
