package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/cart"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memCartRepo struct {
	items map[string]*entity.CartItem
}

func newMemCartRepo() *memCartRepo { return &memCartRepo{items: map[string]*entity.CartItem{}} }

func (r *memCartRepo) Create(item *entity.CartItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memCartRepo) GetActiveByID(id string) (*entity.CartItem, error) {
	item, ok := r.items[id]
	if !ok || item.DeletedAt != nil {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *memCartRepo) SumActiveQuantity(tenantID, userID, productID, excludeID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, item := range r.items {
		if item.DeletedAt != nil || item.TenantID != tenantID || item.UserID != userID || item.ProductID != productID {
			continue
		}
		if excludeID != "" && item.ID == excludeID {
			continue
		}
		sum = sum.Add(item.Quantity)
	}
	return sum, nil
}

func (r *memCartRepo) ListByUser(tenantID, userID string) ([]*entity.CartItem, error) {
	var out []*entity.CartItem
	for _, item := range r.items {
		if item.DeletedAt == nil && item.TenantID == tenantID && item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memCartRepo) Update(item *entity.CartItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memCartRepo) SoftDelete(id string) error {
	if item, ok := r.items[id]; ok {
		now := item.UpdatedAt
		item.DeletedAt = &now
	}
	return nil
}

func (r *memCartRepo) ConsumeByUser(tenantID, userID string, productIDs []string) error {
	for _, item := range r.items {
		if item.DeletedAt != nil || item.TenantID != tenantID || item.UserID != userID {
			continue
		}
		for _, pid := range productIDs {
			if item.ProductID == pid {
				now := item.UpdatedAt
				item.DeletedAt = &now
			}
		}
	}
	return nil
}

type memStockRepo struct {
	recs map[string]*entity.ProductStock
}

func (r *memStockRepo) Get(tenantID, productID string) (*entity.ProductStock, error) {
	if rec, ok := r.recs[tenantID+"|"+productID]; ok {
		cp := *rec
		return &cp, nil
	}
	return &entity.ProductStock{
		TenantID: tenantID, ProductID: productID,
		Quantity: decimal.Zero, Status: entity.StockStatusOutOfStock,
	}, nil
}

func (r *memStockRepo) GetForUpdate(tenantID, productID string) (*entity.ProductStock, error) {
	return r.Get(tenantID, productID)
}

func (r *memStockRepo) Upsert(stock *entity.ProductStock) error {
	cp := *stock
	r.recs[stock.TenantID+"|"+stock.ProductID] = &cp
	return nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memProductRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantA   = "tenant-a"
	buyerID   = "user-1"
	productID = "prod-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newCartEnv(stockQty string) (*cart.UseCase, *memCartRepo) {
	stock := &memStockRepo{recs: map[string]*entity.ProductStock{}}
	stock.Upsert(&entity.ProductStock{
		TenantID: tenantA, ProductID: productID,
		Quantity: d(stockQty), Status: entity.StockStatusInStock,
	})
	products := &memProductRepo{products: map[string]*entity.Product{}}
	products.Create(&entity.Product{
		ID: productID, TenantID: tenantA, SKU: "SKU-1",
		Name: "Tuerca 5mm", Price: d("1200"),
	})
	cartRepo := newMemCartRepo()
	return cart.NewUseCase(cartRepo, stock, products), cartRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Con stock 10: dos líneas de 3 y 4 pasan; una tercera de 5 excede (3+4+5 > 10)
// y el error reporta que todavía pueden agregarse 3.
func TestAddItem_AcumuladoNoPuedeExcederStock(t *testing.T) {
	uc, _ := newCartEnv("10")
	ctx := context.Background()

	_, err := uc.AddItem(ctx, tenantA, buyerID, dto.AddCartItemRequest{ProductID: productID, Quantity: d("3")})
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, tenantA, buyerID, dto.AddCartItemRequest{ProductID: productID, Quantity: d("4")})
	require.NoError(t, err)

	_, err = uc.AddItem(ctx, tenantA, buyerID, dto.AddCartItemRequest{ProductID: productID, Quantity: d("5")})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.True(t, d("3").Equal(insufficientErr.Available),
		"available = stock (10) - suma existente (7)")
	assert.Contains(t, insufficientErr.Error(), "hasta 3")
}

func TestAddItem_SnapshoteaNombreYPrecio(t *testing.T) {
	uc, _ := newCartEnv("10")

	resp, err := uc.AddItem(context.Background(), tenantA, buyerID, dto.AddCartItemRequest{
		ProductID: productID, Quantity: d("2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Tuerca 5mm", resp.ProductName)
	assert.True(t, d("1200").Equal(resp.ProductPrice))
}

func TestAddItem_ProductoInexistente(t *testing.T) {
	uc, _ := newCartEnv("10")
	_, err := uc.AddItem(context.Background(), tenantA, buyerID, dto.AddCartItemRequest{
		ProductID: "prod-404", Quantity: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItem_CantidadNoPositiva(t *testing.T) {
	uc, _ := newCartEnv("10")
	_, err := uc.AddItem(context.Background(), tenantA, buyerID, dto.AddCartItemRequest{
		ProductID: productID, Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Al editar una línea, su propia cantidad no cuenta en la suma existente: subir
// una línea de 4 a 7 con stock 10 y otra línea de 3 debe pasar justo.
func TestUpdateItem_ExcluyeLaPropiaLinea(t *testing.T) {
	uc, _ := newCartEnv("10")
	ctx := context.Background()

	_, err := uc.AddItem(ctx, tenantA, buyerID, dto.AddCartItemRequest{ProductID: productID, Quantity: d("3")})
	require.NoError(t, err)
	second, err := uc.AddItem(ctx, tenantA, buyerID, dto.AddCartItemRequest{ProductID: productID, Quantity: d("4")})
	require.NoError(t, err)

	updated, err := uc.UpdateItem(ctx, tenantA, buyerID, second.ID, dto.UpdateCartItemRequest{Quantity: d("7")})
	require.NoError(t, err)
	assert.True(t, d("7").Equal(updated.Quantity))

	// Un paso más ya excede: 3 + 8 > 10.
	_, err = uc.UpdateItem(ctx, tenantA, buyerID, second.ID, dto.UpdateCartItemRequest{Quantity: d("8")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRemoveItem_LiberaLaReservaBlanda(t *testing.T) {
	uc, _ := newCartEnv("10")
	ctx := context.Background()

	first, err := uc.AddItem(ctx, tenantA, buyerID, dto.AddCartItemRequest{ProductID: productID, Quantity: d("8")})
	require.NoError(t, err)

	// Con 8 reservados no entran 5 más...
	_, err = uc.AddItem(ctx, tenantA, buyerID, dto.AddCartItemRequest{ProductID: productID, Quantity: d("5")})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// ...pero tras remover la línea sí.
	require.NoError(t, uc.RemoveItem(ctx, tenantA, buyerID, first.ID))
	_, err = uc.AddItem(ctx, tenantA, buyerID, dto.AddCartItemRequest{ProductID: productID, Quantity: d("5")})
	assert.NoError(t, err)

	// La línea removida no se puede volver a tocar.
	err = uc.RemoveItem(ctx, tenantA, buyerID, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartItem_DeOtroUsuario_Forbidden(t *testing.T) {
	uc, _ := newCartEnv("10")
	ctx := context.Background()

	item, err := uc.AddItem(ctx, tenantA, buyerID, dto.AddCartItemRequest{ProductID: productID, Quantity: d("2")})
	require.NoError(t, err)

	_, err = uc.UpdateItem(ctx, tenantA, "user-2", item.ID, dto.UpdateCartItemRequest{Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	err = uc.RemoveItem(ctx, tenantA, "user-2", item.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
