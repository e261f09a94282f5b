package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `tenant_id, product_id, quantity, minimum_stock_quantity, status, updated_at`

func emptyStock(tenantID, productID string) *entity.ProductStock {
	return &entity.ProductStock{
		TenantID:  tenantID,
		ProductID: productID,
		Quantity:  decimal.Zero,
		Status:    entity.StockStatusOutOfStock,
	}
}

// Get obtiene el stock actual de un producto. Sin fila registrada, la cantidad
// es cero (out_of_stock).
func (r *StockRepo) Get(tenantID, productID string) (*entity.ProductStock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM product_stock WHERE tenant_id = $1 AND product_id = $2`
	s, err := r.scanOne(query, tenantID, productID)
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE) hasta el
// fin de la transacción: los escritores concurrentes del mismo producto se
// serializan aquí. Si la fila todavía no existe se materializa en cero antes
// del lock: un SELECT FOR UPDATE sobre cero filas no bloquea nada, y dos
// primeras altas concurrentes leerían ambas cantidad cero y la segunda
// pisaría a la primera.
func (r *StockRepo) GetForUpdate(tenantID, productID string) (*entity.ProductStock, error) {
	seed := `
		INSERT INTO product_stock (tenant_id, product_id, quantity, status, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (tenant_id, product_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, tenantID, productID, entity.StockStatusOutOfStock); err != nil {
		return nil, fmt.Errorf("seed stock row: %w", err)
	}
	query := `
		SELECT ` + stockColumns + `
		FROM product_stock WHERE tenant_id = $1 AND product_id = $2
		FOR UPDATE`
	s, err := r.scanOne(query, tenantID, productID)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

func (r *StockRepo) scanOne(query, tenantID, productID string) (*entity.ProductStock, error) {
	var s entity.ProductStock
	err := r.q.QueryRow(context.Background(), query, tenantID, productID).Scan(
		&s.TenantID, &s.ProductID, &s.Quantity, &s.MinimumStockQuantity, &s.Status, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyStock(tenantID, productID), nil
		}
		return nil, err
	}
	return &s, nil
}

// Upsert inserta o actualiza cantidad y estado (por tenant y producto). Si el
// CHECK (quantity >= 0) de la tabla rechaza la escritura, el error se traduce
// a stock insuficiente.
func (r *StockRepo) Upsert(stock *entity.ProductStock) error {
	query := `
		INSERT INTO product_stock (tenant_id, product_id, quantity, minimum_stock_quantity, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (tenant_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, status = EXCLUDED.status, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.TenantID, stock.ProductID, stock.Quantity, stock.MinimumStockQuantity, stock.Status,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
