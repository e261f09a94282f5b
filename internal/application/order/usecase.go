package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domorder "github.com/jhoicas/backoffice-api/internal/domain/order"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// UseCase es el motor de órdenes: crear (descuento duro de stock), editar
// (solo informativo), anular (restaura stock) y borrado blando (no restaura).
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	syncer      CustomerSyncer
	receipts    ReceiptGenerator
	log         *logger.Logger
}

// NewUseCase construye el motor de órdenes.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	syncer CustomerSyncer,
	receipts ReceiptGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		syncer:      syncer,
		receipts:    receipts,
		log:         log,
	}
}

// buildItems valida las líneas solicitadas contra el catálogo y construye las
// líneas de orden con snapshots (nombre, precio, tasa de impuesto). Precio en
// cero usa el precio actual del producto.
func (uc *UseCase) buildItems(tenantID, orderID string, reqItems []dto.OrderItemRequest) ([]*entity.OrderItem, []domorder.LineAmounts, error) {
	if len(reqItems) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	items := make([]*entity.OrderItem, 0, len(reqItems))
	lines := make([]domorder.LineAmounts, 0, len(reqItems))
	for _, reqItem := range reqItems {
		if reqItem.ProductID == "" || !reqItem.Quantity.GreaterThan(decimal.Zero) {
			return nil, nil, domain.ErrInvalidInput
		}
		if reqItem.UnitPrice.IsNegative() {
			return nil, nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(reqItem.ProductID)
		if err != nil || product == nil {
			return nil, nil, domain.ErrNotFound
		}
		if product.TenantID != tenantID {
			return nil, nil, domain.ErrForbidden
		}
		unitPrice := reqItem.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}
		items = append(items, &entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    reqItem.Quantity,
			UnitPrice:   unitPrice,
			TaxRate:     product.TaxRate,
			Subtotal:    unitPrice.Mul(reqItem.Quantity),
		})
		lines = append(lines, domorder.LineAmounts{
			Quantity:  reqItem.Quantity,
			UnitPrice: unitPrice,
			TaxRate:   product.TaxRate,
		})
	}
	return items, lines, nil
}

// syncCustomer dispara la sincronización del agregado de cliente. Best-effort:
// un fallo se registra y se suprime, nunca afecta la operación de orden.
func (uc *UseCase) syncCustomer(ctx context.Context, tenantID, userID, trigger string) {
	if err := uc.syncer.SyncTotals(ctx, tenantID, userID); err != nil {
		uc.log.Warn().
			Err(err).
			Str("tenant_id", tenantID).
			Str("user_id", userID).
			Str("trigger", trigger).
			Msg("sincronización de cliente falló; se continúa")
	}
}

func toOrderResponse(ord *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:             ord.ID,
		UserID:         ord.UserID,
		OrderDate:      ord.OrderDate,
		Subtotal:       ord.Subtotal,
		TaxAmount:      ord.TaxAmount,
		DiscountAmount: ord.DiscountAmount,
		TotalAmount:    ord.TotalAmount,
		DiscountType:   ord.DiscountType,
		DiscountValue:  ord.DiscountValue,
		LabelIDs:       ord.LabelIDs,
		IsVoided:       ord.IsVoided,
		VoidedBy:       ord.VoidedBy,
		VoidedAt:       ord.VoidedAt,
		VoidReason:     ord.VoidReason,
		CreatedAt:      ord.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxRate:     item.TaxRate,
			Subtotal:    item.Subtotal,
		})
	}
	return resp
}
