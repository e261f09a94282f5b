// Package cart implementa la verificación de reserva blanda del carrito: la
// suma de líneas activas de un usuario para un producto nunca puede exceder el
// stock actual, pero el stock solo se descuenta al crear la orden.
package cart

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

// UseCase casos de uso del carrito.
type UseCase struct {
	cartRepo    repository.CartRepository
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso del carrito.
func NewUseCase(
	cartRepo repository.CartRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{cartRepo: cartRepo, stockRepo: stockRepo, productRepo: productRepo}
}

// checkReservation valida que sumExisting + requested no exceda el stock
// actual. excludeID omite la línea en edición. Es una verificación advisory:
// no bloquea ni descuenta stock; dos carritos pueden pasar y competir recién
// en el checkout.
func (uc *UseCase) checkReservation(tenantID, userID, productID, excludeID string, requested decimal.Decimal) error {
	sumExisting, err := uc.cartRepo.SumActiveQuantity(tenantID, userID, productID, excludeID)
	if err != nil {
		return err
	}
	rec, err := uc.stockRepo.Get(tenantID, productID)
	if err != nil {
		return err
	}
	if sumExisting.Add(requested).GreaterThan(rec.Quantity) {
		return domain.NewInsufficientStockError(productID, rec.Quantity, requested, sumExisting)
	}
	return nil
}

// AddItem agrega una línea al carrito del usuario tras la verificación de
// reserva, snapshoteando nombre y precio del producto.
func (uc *UseCase) AddItem(ctx context.Context, tenantID, userID string, in dto.AddCartItemRequest) (*dto.CartItemResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}

	if err := uc.checkReservation(tenantID, userID, in.ProductID, "", in.Quantity); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entity.CartItem{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		UserID:       userID,
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return toCartItemResponse(item), nil
}

// UpdateItem cambia la cantidad de una línea re-ejecutando la verificación de
// reserva, excluyendo la propia línea de la suma existente.
func (uc *UseCase) UpdateItem(ctx context.Context, tenantID, userID, itemID string, in dto.UpdateCartItemRequest) (*dto.CartItemResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.cartRepo.GetActiveByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.TenantID != tenantID || item.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if err := uc.checkReservation(tenantID, userID, item.ProductID, itemID, in.Quantity); err != nil {
		return nil, err
	}

	item.Quantity = in.Quantity
	item.UpdatedAt = time.Now()
	if err := uc.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return toCartItemResponse(item), nil
}

// RemoveItem soft-borra una línea del carrito.
func (uc *UseCase) RemoveItem(ctx context.Context, tenantID, userID, itemID string) error {
	item, err := uc.cartRepo.GetActiveByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.TenantID != tenantID || item.UserID != userID {
		return domain.ErrForbidden
	}
	return uc.cartRepo.SoftDelete(itemID)
}

// ListItems lista las líneas activas del carrito del usuario.
func (uc *UseCase) ListItems(ctx context.Context, tenantID, userID string) ([]*dto.CartItemResponse, error) {
	items, err := uc.cartRepo.ListByUser(tenantID, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toCartItemResponse(item))
	}
	return out, nil
}

func toCartItemResponse(item *entity.CartItem) *dto.CartItemResponse {
	return &dto.CartItemResponse{
		ID:           item.ID,
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		ProductPrice: item.ProductPrice,
		Quantity:     item.Quantity,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
