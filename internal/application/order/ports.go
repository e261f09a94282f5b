package order

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repos que necesita el
// motor de órdenes atados a la tx. Commit si fn retorna nil, Rollback si no:
// crear y anular órdenes son todo-o-nada (cabecera, líneas, stock y libro de
// movimientos en la misma transacción).
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		cartRepo repository.CartRepository,
	) error) error
}

// CustomerSyncer recalcula el agregado de cliente tras operaciones de orden.
// Best-effort: sus errores se registran y nunca se propagan.
type CustomerSyncer interface {
	SyncTotals(ctx context.Context, tenantID, userID string) error
}

// ReceiptGenerator renderiza el comprobante PDF de una orden.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order, items []*entity.OrderItem) ([]byte, error)
}
