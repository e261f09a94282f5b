package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// RecordPayment registra un pago "completed" contra una orden no anulada.
// Mientras el pago siga activo, la orden no puede anularse. Amount en cero usa
// el total de la orden; un monto negativo es inválido.
func (uc *UseCase) RecordPayment(ctx context.Context, tenantID, orderID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	ord, err := uc.getTenantOrder(tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if ord.IsVoided {
		// Una orden anulada ya no admite pagos.
		return nil, domain.ErrOrderVoided
	}

	amount := in.Amount
	if amount.IsZero() {
		amount = ord.TotalAmount
	}
	if amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	payment := &entity.Payment{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		OrderID:   orderID,
		Amount:    amount,
		Status:    entity.PaymentStatusCompleted,
		CreatedAt: time.Now(),
	}
	if err := uc.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return &dto.PaymentResponse{
		ID:        payment.ID,
		OrderID:   payment.OrderID,
		Amount:    payment.Amount,
		Status:    payment.Status,
		CreatedAt: payment.CreatedAt,
	}, nil
}
