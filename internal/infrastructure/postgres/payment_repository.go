package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create registra un pago contra una orden.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, tenant_id, order_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.TenantID, payment.OrderID,
		payment.Amount, payment.Status, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// HasActivePayments indica si la orden tiene pagos en estado completed.
// Cualquier error de consulta se propaga: el llamador decide fallar cerrado.
func (r *PaymentRepo) HasActivePayments(tenantID, orderID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payments
			WHERE tenant_id = $1 AND order_id = $2 AND status = $3
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, tenantID, orderID, entity.PaymentStatusCompleted).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active payments: %w", err)
	}
	return exists, nil
}
