package stock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	appstock "github.com/jhoicas/backoffice-api/internal/application/stock"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type memStockRepo struct {
	recs map[string]*entity.ProductStock // key: tenant|product
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{recs: map[string]*entity.ProductStock{}}
}

func stockKey(tenantID, productID string) string { return tenantID + "|" + productID }

func (r *memStockRepo) seed(tenantID, productID string, qty decimal.Decimal, min *decimal.Decimal) {
	r.recs[stockKey(tenantID, productID)] = &entity.ProductStock{
		TenantID: tenantID, ProductID: productID,
		Quantity: qty, MinimumStockQuantity: min,
		Status: entity.StockStatusInStock,
	}
}

func (r *memStockRepo) Get(tenantID, productID string) (*entity.ProductStock, error) {
	if rec, ok := r.recs[stockKey(tenantID, productID)]; ok {
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
	r.recs[stockKey(stock.TenantID, stock.ProductID)] = &cp
	return nil
}

type memMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByTenant(tenantID string, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.TenantID != tenantID {
			continue
		}
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Reason != "" && m.Reason != filter.Reason {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type memAdjustmentRepo struct {
	adjustments map[string]*entity.StockAdjustment
}

func newMemAdjustmentRepo() *memAdjustmentRepo {
	return &memAdjustmentRepo{adjustments: map[string]*entity.StockAdjustment{}}
}

func (r *memAdjustmentRepo) Create(a *entity.StockAdjustment) error {
	cp := *a
	r.adjustments[a.ID] = &cp
	return nil
}

func (r *memAdjustmentRepo) GetActiveByID(id string) (*entity.StockAdjustment, error) {
	a, ok := r.adjustments[id]
	if !ok || a.DeletedAt != nil {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *memAdjustmentRepo) ListByTenant(tenantID, productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	var out []*entity.StockAdjustment
	for _, a := range r.adjustments {
		if a.TenantID != tenantID || a.DeletedAt != nil {
			continue
		}
		if productID != "" && a.ProductID != productID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *memAdjustmentRepo) UpdateNotes(id, reason, notes string, updatedAt time.Time) error {
	if a, ok := r.adjustments[id]; ok && a.DeletedAt == nil {
		a.Reason, a.Notes, a.UpdatedAt = reason, notes, updatedAt
	}
	return nil
}

func (r *memAdjustmentRepo) SoftDelete(id string, deletedAt time.Time) error {
	if a, ok := r.adjustments[id]; ok && a.DeletedAt == nil {
		a.DeletedAt = &deletedAt
	}
	return nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{}}
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
	var out []*entity.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }

// memTxRunner ejecuta el callback sobre los fakes, con semántica de rollback:
// si fn falla, el estado de stock, movimientos y ajustes vuelve al snapshot.
// El mutex emula el lock de fila: los callbacks concurrentes se serializan
// igual que las transacciones reales en SELECT FOR UPDATE (con la fila
// materializada en cero cuando todavía no existe).
type memTxRunner struct {
	mu          sync.Mutex
	stock       *memStockRepo
	movements   *memMovementRepo
	adjustments *memAdjustmentRepo
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stockSnap := map[string]*entity.ProductStock{}
	for k, v := range r.stock.recs {
		cp := *v
		stockSnap[k] = &cp
	}
	movSnap := len(r.movements.movements)
	adjSnap := map[string]*entity.StockAdjustment{}
	for k, v := range r.adjustments.adjustments {
		cp := *v
		adjSnap[k] = &cp
	}

	if err := fn(r.movements, r.stock, r.adjustments); err != nil {
		r.stock.recs = stockSnap
		r.movements.movements = r.movements.movements[:movSnap]
		r.adjustments.adjustments = adjSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantA   = "tenant-a"
	actorID   = "user-1"
	productID = "prod-1"
)

type adjustmentEnv struct {
	uc          *appstock.AdjustmentUseCase
	stock       *memStockRepo
	movements   *memMovementRepo
	adjustments *memAdjustmentRepo
}

func newAdjustmentEnv(t *testing.T, initialQty decimal.Decimal) *adjustmentEnv {
	t.Helper()
	stock := newMemStockRepo()
	stock.seed(tenantA, productID, initialQty, nil)
	movements := &memMovementRepo{}
	adjustments := newMemAdjustmentRepo()
	products := newMemProductRepo()
	products.Create(&entity.Product{ID: productID, TenantID: tenantA, SKU: "SKU-1", Name: "Tornillo 3mm"})
	runner := &memTxRunner{stock: stock, movements: movements, adjustments: adjustments}
	return &adjustmentEnv{
		uc:          appstock.NewAdjustmentUseCase(runner, products, adjustments),
		stock:       stock,
		movements:   movements,
		adjustments: adjustments,
	}
}

func (e *adjustmentEnv) quantity(t *testing.T) decimal.Decimal {
	t.Helper()
	rec, err := e.stock.Get(tenantA, productID)
	require.NoError(t, err)
	return rec.Quantity
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateAdjustment_IncreaseActualizaStockYLibro(t *testing.T) {
	env := newAdjustmentEnv(t, d("10"))

	resp, err := env.uc.CreateAdjustment(context.Background(), tenantA, actorID, dto.CreateAdjustmentRequest{
		ProductID: productID,
		Type:      entity.AdjustmentTypeIncrease,
		Quantity:  d("5"),
		Reason:    "conteo físico",
	})
	require.NoError(t, err)

	assert.True(t, d("10").Equal(resp.PreviousQuantity))
	assert.True(t, d("15").Equal(resp.NewQuantity))
	assert.True(t, d("15").Equal(env.quantity(t)))

	require.Len(t, env.movements.movements, 1)
	mov := env.movements.movements[0]
	assert.Equal(t, entity.MovementTypeAdjustment, mov.MovementType)
	assert.Equal(t, entity.MovementReasonAdjustment, mov.Reason)
	assert.Equal(t, resp.ID, mov.ReferenceID, "el movimiento debe referenciar al ajuste")
	assert.True(t, d("5").Equal(mov.SignedDelta()))
}

func TestCreateAdjustment_DecreaseInsuficiente_NoPersisteNada(t *testing.T) {
	env := newAdjustmentEnv(t, d("3"))

	_, err := env.uc.CreateAdjustment(context.Background(), tenantA, actorID, dto.CreateAdjustmentRequest{
		ProductID: productID,
		Type:      entity.AdjustmentTypeDecrease,
		Quantity:  d("5"),
		Reason:    "merma",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback total: ni stock, ni movimiento, ni ajuste.
	assert.True(t, d("3").Equal(env.quantity(t)))
	assert.Empty(t, env.movements.movements)
	assert.Empty(t, env.adjustments.adjustments)
}

func TestCreateAdjustment_DecreaseHastaCero(t *testing.T) {
	env := newAdjustmentEnv(t, d("5"))

	// Exactamente hasta cero es válido; por debajo no.
	_, err := env.uc.CreateAdjustment(context.Background(), tenantA, actorID, dto.CreateAdjustmentRequest{
		ProductID: productID,
		Type:      entity.AdjustmentTypeDecrease,
		Quantity:  d("5"),
		Reason:    "baja total",
	})
	require.NoError(t, err)

	rec, err := env.stock.Get(tenantA, productID)
	require.NoError(t, err)
	assert.True(t, rec.Quantity.IsZero())
	assert.Equal(t, entity.StockStatusOutOfStock, rec.Status)
}

func TestCreateAdjustment_EntradaInvalida(t *testing.T) {
	env := newAdjustmentEnv(t, d("10"))
	ctx := context.Background()

	longReason := make([]byte, 256)
	for i := range longReason {
		longReason[i] = 'x'
	}

	cases := []struct {
		name string
		in   dto.CreateAdjustmentRequest
	}{
		{"tipo desconocido", dto.CreateAdjustmentRequest{ProductID: productID, Type: "set", Quantity: d("1"), Reason: "r"}},
		{"cantidad cero", dto.CreateAdjustmentRequest{ProductID: productID, Type: entity.AdjustmentTypeIncrease, Quantity: decimal.Zero, Reason: "r"}},
		{"cantidad negativa", dto.CreateAdjustmentRequest{ProductID: productID, Type: entity.AdjustmentTypeIncrease, Quantity: d("-2"), Reason: "r"}},
		{"sin razón", dto.CreateAdjustmentRequest{ProductID: productID, Type: entity.AdjustmentTypeIncrease, Quantity: d("1")}},
		{"razón demasiado larga", dto.CreateAdjustmentRequest{ProductID: productID, Type: entity.AdjustmentTypeIncrease, Quantity: d("1"), Reason: string(longReason)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.uc.CreateAdjustment(ctx, tenantA, actorID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	// Nada quedó persistido.
	assert.True(t, d("10").Equal(env.quantity(t)))
	assert.Empty(t, env.movements.movements)
}

func TestReverseAdjustment_AplicaInversoYSoftBorra(t *testing.T) {
	env := newAdjustmentEnv(t, d("10"))
	ctx := context.Background()

	resp, err := env.uc.CreateAdjustment(ctx, tenantA, actorID, dto.CreateAdjustmentRequest{
		ProductID: productID,
		Type:      entity.AdjustmentTypeIncrease,
		Quantity:  d("5"),
		Reason:    "conteo",
	})
	require.NoError(t, err)
	require.True(t, d("15").Equal(env.quantity(t)))

	require.NoError(t, env.uc.ReverseAdjustment(ctx, tenantA, actorID, resp.ID))
	assert.True(t, d("10").Equal(env.quantity(t)), "la reversión debe aplicar el inverso contra la cantidad actual")

	require.Len(t, env.movements.movements, 2)
	reversal := env.movements.movements[1]
	assert.Equal(t, entity.MovementReasonAdjustmentReversal, reversal.Reason)
	assert.Equal(t, resp.ID, reversal.ReferenceID)
	assert.True(t, d("-5").Equal(reversal.SignedDelta()))

	// El ajuste quedó revertido: ya no es visible ni re-revertible.
	_, err = env.uc.GetAdjustment(ctx, tenantA, resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = env.uc.ReverseAdjustment(ctx, tenantA, actorID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "revertir dos veces debe fallar en el segundo intento")
	assert.True(t, d("10").Equal(env.quantity(t)), "el segundo intento no debe tocar el stock")
}

func TestReverseAdjustment_IncreaseYaConsumido_Insuficiente(t *testing.T) {
	env := newAdjustmentEnv(t, d("0"))
	ctx := context.Background()

	resp, err := env.uc.CreateAdjustment(ctx, tenantA, actorID, dto.CreateAdjustmentRequest{
		ProductID: productID,
		Type:      entity.AdjustmentTypeIncrease,
		Quantity:  d("5"),
		Reason:    "ingreso",
	})
	require.NoError(t, err)

	// El stock agregado por el ajuste ya fue consumido por ventas.
	env.stock.seed(tenantA, productID, d("2"), nil)

	err = env.uc.ReverseAdjustment(ctx, tenantA, actorID, resp.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock,
		"revertir un increase consumido dejaría la cantidad negativa")

	// El ajuste sigue activo y el stock intacto.
	got, err := env.uc.GetAdjustment(ctx, tenantA, resp.ID)
	require.NoError(t, err)
	assert.False(t, got.Reversed)
	assert.True(t, d("2").Equal(env.quantity(t)))
}

func TestUpdateAdjustment_SoloReasonYNotes(t *testing.T) {
	env := newAdjustmentEnv(t, d("10"))
	ctx := context.Background()

	resp, err := env.uc.CreateAdjustment(ctx, tenantA, actorID, dto.CreateAdjustmentRequest{
		ProductID: productID,
		Type:      entity.AdjustmentTypeDecrease,
		Quantity:  d("4"),
		Reason:    "merma",
	})
	require.NoError(t, err)

	updated, err := env.uc.UpdateAdjustment(ctx, tenantA, resp.ID, dto.UpdateAdjustmentRequest{
		Reason: "merma por vencimiento",
		Notes:  "lote 2026-03",
	})
	require.NoError(t, err)

	assert.Equal(t, "merma por vencimiento", updated.Reason)
	assert.Equal(t, "lote 2026-03", updated.Notes)
	// Cantidad, tipo y snapshots inmutables; el stock no cambió.
	assert.True(t, d("4").Equal(updated.Quantity))
	assert.Equal(t, entity.AdjustmentTypeDecrease, updated.Type)
	assert.True(t, d("6").Equal(env.quantity(t)))
	assert.Len(t, env.movements.movements, 1, "editar no genera movimientos")
}

func TestAdjustment_OtroTenant_Forbidden(t *testing.T) {
	env := newAdjustmentEnv(t, d("10"))
	ctx := context.Background()

	resp, err := env.uc.CreateAdjustment(ctx, tenantA, actorID, dto.CreateAdjustmentRequest{
		ProductID: productID,
		Type:      entity.AdjustmentTypeIncrease,
		Quantity:  d("1"),
		Reason:    "conteo",
	})
	require.NoError(t, err)

	_, err = env.uc.GetAdjustment(ctx, "tenant-b", resp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	err = env.uc.ReverseAdjustment(ctx, "tenant-b", actorID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// El libro reconcilia: la suma de deltas firmados de un producto es igual a la
// cantidad final menos la inicial.
func TestLedger_ReconciliaConCantidadActual(t *testing.T) {
	env := newAdjustmentEnv(t, d("20"))
	ctx := context.Background()

	steps := []struct {
		typ string
		qty string
	}{
		{entity.AdjustmentTypeDecrease, "6"},
		{entity.AdjustmentTypeIncrease, "3"},
		{entity.AdjustmentTypeDecrease, "17"},
	}
	for _, s := range steps {
		_, err := env.uc.CreateAdjustment(ctx, tenantA, actorID, dto.CreateAdjustmentRequest{
			ProductID: productID, Type: s.typ, Quantity: d(s.qty), Reason: "ciclo",
		})
		require.NoError(t, err)
	}

	sum := decimal.Zero
	for _, mov := range env.movements.movements {
		sum = sum.Add(mov.SignedDelta())
	}
	assert.True(t, env.quantity(t).Sub(d("20")).Equal(sum),
		"la suma de deltas firmados debe reconciliar con la cantidad actual")
	assert.True(t, env.quantity(t).IsZero())
}

// Producto sin fila de stock todavía: varias primeras altas concurrentes no se
// pisan entre sí. Serializadas en el lock, cada una parte de la cantidad que
// dejó la anterior y el libro reconcilia con la cantidad final.
func TestCreateAdjustment_PrimerasAltasConcurrentes_NoSePisan(t *testing.T) {
	stock := newMemStockRepo() // sin seed: la fila no existe aún
	movements := &memMovementRepo{}
	adjustments := newMemAdjustmentRepo()
	products := newMemProductRepo()
	products.Create(&entity.Product{ID: productID, TenantID: tenantA, SKU: "SKU-1", Name: "Tornillo 3mm"})
	runner := &memTxRunner{stock: stock, movements: movements, adjustments: adjustments}
	uc := appstock.NewAdjustmentUseCase(runner, products, adjustments)

	const writers = 8
	ctx := context.Background()
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateAdjustment(ctx, tenantA, actorID, dto.CreateAdjustmentRequest{
				ProductID: productID, Type: entity.AdjustmentTypeIncrease,
				Quantity: d("5"), Reason: "alta inicial",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rec, err := stock.Get(tenantA, productID)
	require.NoError(t, err)
	assert.True(t, d("40").Equal(rec.Quantity),
		"ninguna de las 8 altas de 5 debe perderse: 8*5 = 40")

	require.Len(t, movements.movements, writers)
	sum := decimal.Zero
	for _, mov := range movements.movements {
		sum = sum.Add(mov.SignedDelta())
	}
	assert.True(t, rec.Quantity.Equal(sum),
		"la suma de deltas firmados debe reconciliar con la cantidad final")
}
