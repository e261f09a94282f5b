package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	appstock "github.com/jhoicas/backoffice-api/internal/application/stock"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domorder "github.com/jhoicas/backoffice-api/internal/domain/order"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// CreateOrder valida cada línea contra el catálogo, calcula totales y, en una
// sola transacción, descuenta el stock de cada línea (con la fila bloqueada),
// registra los movimientos con referencia a la orden, persiste cabecera y
// líneas y consume las líneas de carrito del usuario para esos productos.
// Si cualquier línea falla (p. ej. stock insuficiente), nada queda persistido.
// La sincronización del agregado de cliente corre después del commit y es
// best-effort.
func (uc *UseCase) CreateOrder(ctx context.Context, tenantID, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	orderID := uuid.New().String()

	items, lines, err := uc.buildItems(tenantID, orderID, in.Items)
	if err != nil {
		return nil, err
	}
	totals, err := domorder.ComputeTotals(lines, in.DiscountType, in.DiscountValue)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	orderDate := now
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}
	ord := &entity.Order{
		ID:             orderID,
		TenantID:       tenantID,
		UserID:         userID,
		OrderDate:      orderDate,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.Tax,
		DiscountAmount: totals.Discount,
		TotalAmount:    totals.Total,
		DiscountType:   in.DiscountType,
		DiscountValue:  in.DiscountValue,
		LabelIDs:       in.LabelIDs,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunOrder(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		cartRepo repository.CartRepository,
	) error {
		// Descuento duro por línea, en orden de solicitud. El lock de fila
		// serializa a los compradores concurrentes del mismo producto: el
		// primero en commitear gana, los demás fallan limpio con stock
		// insuficiente en lugar de dejar la cantidad negativa.
		productIDs := make([]string, 0, len(items))
		for _, item := range items {
			if _, _, err := appstock.ApplyDeltaInTx(
				stockRepo, movRepo,
				tenantID, item.ProductID,
				item.Quantity.Neg(),
				entity.MovementTypeDecrease, entity.MovementReasonSale,
				orderID, userID, now,
			); err != nil {
				return err
			}
			productIDs = append(productIDs, item.ProductID)
		}
		if err := orderRepo.Create(ord, items); err != nil {
			return err
		}
		// Consumo de checkout: las líneas de carrito del usuario para los
		// productos ordenados quedan soft-borradas.
		return cartRepo.ConsumeByUser(tenantID, userID, productIDs)
	})
	if err != nil {
		return nil, err
	}

	uc.syncCustomer(ctx, tenantID, userID, "order_created")
	return toOrderResponse(ord, items), nil
}
