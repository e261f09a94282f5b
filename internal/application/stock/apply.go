package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	domstock "github.com/jhoicas/backoffice-api/internal/domain/stock"
)

// ApplyDeltaInTx es la única ruta de mutación de ProductStock. Debe llamarse
// con repos atados a una transacción abierta: bloquea la fila de stock
// (SELECT FOR UPDATE), valida que la cantidad no quede negativa, recalcula el
// estado y registra el movimiento en el libro, todo dentro de la misma tx,
// de modo que cantidad y libro nunca divergen y los escritores concurrentes
// se serializan en el lock de fila.
//
// signedDelta negativo descuenta; positivo repone. Retorna el registro de
// stock actualizado y el movimiento creado.
func ApplyDeltaInTx(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	tenantID, productID string,
	signedDelta decimal.Decimal,
	movementType, reason, referenceID, actorID string,
	now time.Time,
) (*entity.ProductStock, *entity.StockMovement, error) {
	rec, err := stockRepo.GetForUpdate(tenantID, productID)
	if err != nil {
		return nil, nil, err
	}

	previous := rec.Quantity
	if !domstock.CanApply(previous, signedDelta) {
		return nil, nil, domain.NewInsufficientStockError(productID, previous, signedDelta.Neg(), decimal.Zero)
	}
	newQuantity := previous.Add(signedDelta)

	rec.Quantity = newQuantity
	rec.Status = domstock.DeriveStatus(newQuantity, rec.MinimumStockQuantity)
	rec.UpdatedAt = now
	if err := stockRepo.Upsert(rec); err != nil {
		return nil, nil, err
	}

	mov := &entity.StockMovement{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		ProductID:        productID,
		MovementType:     movementType,
		Quantity:         signedDelta.Abs(),
		PreviousQuantity: previous,
		NewQuantity:      newQuantity,
		Reason:           reason,
		ReferenceID:      referenceID,
		CreatedBy:        actorID,
		CreatedAt:        now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, nil, err
	}
	return rec, mov, nil
}
