package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// PaymentRepository define el puerto de consulta de pagos. La anulación de una
// orden lo usa como precondición: un pago "completed" (no reversado ni
// reembolsado) bloquea el void.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	// HasActivePayments indica si la orden tiene pagos en estado completed.
	HasActivePayments(tenantID, orderID string) (bool, error)
}
