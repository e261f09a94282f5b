package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

const maxReasonLength = 255

// AdjustmentUseCase gestiona el ciclo de vida de los ajustes manuales de
// stock: crear (muta stock + movimiento), revertir vía soft delete (aplica el
// inverso contra la cantidad ACTUAL + movimiento compensatorio) y editar solo
// reason/notes.
type AdjustmentUseCase struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	adjustmentRepo repository.StockAdjustmentRepository
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// CreateAdjustment valida y aplica un ajuste: increase siempre procede,
// decrease falla con stock insuficiente si dejaría la cantidad negativa.
// El ajuste se persiste con los snapshots previo/nuevo y el movimiento se
// registra con referencia al ajuste, todo en una transacción.
func (uc *AdjustmentUseCase) CreateAdjustment(ctx context.Context, tenantID, userID string, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if in.Type != entity.AdjustmentTypeIncrease && in.Type != entity.AdjustmentTypeDecrease {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Reason == "" || len(in.Reason) > maxReasonLength {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	adjustment := &entity.StockAdjustment{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		ProductID:      in.ProductID,
		AdjustmentType: in.Type,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		Notes:          in.Notes,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error {
		delta := in.Quantity
		if in.Type == entity.AdjustmentTypeDecrease {
			delta = delta.Neg()
		}
		_, mov, err := ApplyDeltaInTx(
			stockRepo, movRepo,
			tenantID, in.ProductID,
			delta,
			entity.MovementTypeAdjustment, entity.MovementReasonAdjustment,
			adjustment.ID, userID, now,
		)
		if err != nil {
			return err
		}
		adjustment.PreviousQuantity = mov.PreviousQuantity
		adjustment.NewQuantity = mov.NewQuantity
		return adjustmentRepo.Create(adjustment)
	})
	if err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adjustment), nil
}

// ReverseAdjustment revierte un ajuste aplicando el tipo inverso contra la
// cantidad actual (no el snapshot): la reversión de un increase puede fallar
// con stock insuficiente si el stock ya fue consumido. Un ajuste ya revertido
// no se encuentra (NotFound) — revertir dos veces falla en el segundo intento.
func (uc *AdjustmentUseCase) ReverseAdjustment(ctx context.Context, tenantID, userID, id string) error {
	adjustment, err := uc.adjustmentRepo.GetActiveByID(id)
	if err != nil {
		return err
	}
	if adjustment == nil {
		return domain.ErrNotFound
	}
	if adjustment.TenantID != tenantID {
		return domain.ErrForbidden
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error {
		// Inverso del tipo original: increase se revierte restando y viceversa.
		delta := adjustment.Quantity
		if adjustment.AdjustmentType == entity.AdjustmentTypeIncrease {
			delta = delta.Neg()
		}
		_, _, err := ApplyDeltaInTx(
			stockRepo, movRepo,
			tenantID, adjustment.ProductID,
			delta,
			entity.MovementTypeAdjustment, entity.MovementReasonAdjustmentReversal,
			adjustment.ID, userID, now,
		)
		if err != nil {
			return err
		}
		return adjustmentRepo.SoftDelete(adjustment.ID, now)
	})
}

// UpdateAdjustment edita reason/notes. Cantidad y tipo son inmutables: cambiarlos
// desincronizaría el libro de movimientos.
func (uc *AdjustmentUseCase) UpdateAdjustment(ctx context.Context, tenantID, id string, in dto.UpdateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if in.Reason == "" || len(in.Reason) > maxReasonLength {
		return nil, domain.ErrInvalidInput
	}
	adjustment, err := uc.adjustmentRepo.GetActiveByID(id)
	if err != nil {
		return nil, err
	}
	if adjustment == nil {
		return nil, domain.ErrNotFound
	}
	if adjustment.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	if err := uc.adjustmentRepo.UpdateNotes(id, in.Reason, in.Notes, now); err != nil {
		return nil, err
	}
	adjustment.Reason = in.Reason
	adjustment.Notes = in.Notes
	adjustment.UpdatedAt = now
	return toAdjustmentResponse(adjustment), nil
}

// GetAdjustment obtiene un ajuste activo por ID.
func (uc *AdjustmentUseCase) GetAdjustment(ctx context.Context, tenantID, id string) (*dto.AdjustmentResponse, error) {
	adjustment, err := uc.adjustmentRepo.GetActiveByID(id)
	if err != nil {
		return nil, err
	}
	if adjustment == nil {
		return nil, domain.ErrNotFound
	}
	if adjustment.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return toAdjustmentResponse(adjustment), nil
}

// ListAdjustments lista ajustes activos del tenant, opcionalmente por producto.
func (uc *AdjustmentUseCase) ListAdjustments(ctx context.Context, tenantID, productID string, page dto.PageRequest) ([]*dto.AdjustmentResponse, error) {
	page.DefaultPage()
	list, err := uc.adjustmentRepo.ListByTenant(tenantID, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAdjustmentResponse(a))
	}
	return out, nil
}

func toAdjustmentResponse(a *entity.StockAdjustment) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:               a.ID,
		ProductID:        a.ProductID,
		Type:             a.AdjustmentType,
		Quantity:         a.Quantity,
		PreviousQuantity: a.PreviousQuantity,
		NewQuantity:      a.NewQuantity,
		Reason:           a.Reason,
		Notes:            a.Notes,
		CreatedBy:        a.CreatedBy,
		CreatedAt:        a.CreatedAt,
		Reversed:         a.IsReversed(),
	}
}
