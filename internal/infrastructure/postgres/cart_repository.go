package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación de CartRepository (usable con pool o tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartColumns = `id, tenant_id, user_id, product_id, quantity, product_name, product_price, created_at, updated_at, deleted_at`

// Create persiste una línea de carrito.
func (r *CartRepo) Create(item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, tenant_id, user_id, product_id, quantity, product_name, product_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TenantID, item.UserID, item.ProductID, item.Quantity,
		item.ProductName, item.ProductPrice, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

// GetActiveByID obtiene una línea no borrada. Devuelve nil si no existe.
func (r *CartRepo) GetActiveByID(id string) (*entity.CartItem, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_items WHERE id = $1 AND deleted_at IS NULL`
	var item entity.CartItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&item.ID, &item.TenantID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.ProductName, &item.ProductPrice, &item.CreatedAt, &item.UpdatedAt, &item.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &item, nil
}

// SumActiveQuantity suma las cantidades activas de (tenant, user, product),
// omitiendo excludeID cuando se está actualizando una línea existente.
func (r *CartRepo) SumActiveQuantity(tenantID, userID, productID, excludeID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM cart_items
		WHERE tenant_id = $1 AND user_id = $2 AND product_id = $3 AND deleted_at IS NULL
		  AND ($4 = '' OR id <> $4)`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, tenantID, userID, productID, excludeID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum cart quantities: %w", err)
	}
	return sum, nil
}

// ListByUser lista las líneas activas del carrito del usuario.
func (r *CartRepo) ListByUser(tenantID, userID string) ([]*entity.CartItem, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_items WHERE tenant_id = $1 AND user_id = $2 AND deleted_at IS NULL
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var list []*entity.CartItem
	for rows.Next() {
		var item entity.CartItem
		if err := rows.Scan(
			&item.ID, &item.TenantID, &item.UserID, &item.ProductID, &item.Quantity,
			&item.ProductName, &item.ProductPrice, &item.CreatedAt, &item.UpdatedAt, &item.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// Update persiste cantidad y timestamp de una línea.
func (r *CartRepo) Update(item *entity.CartItem) error {
	query := `
		UPDATE cart_items SET quantity = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, item.ID, item.Quantity, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

// SoftDelete marca una línea como removida.
func (r *CartRepo) SoftDelete(id string) error {
	query := `
		UPDATE cart_items SET deleted_at = now()
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("soft delete cart item: %w", err)
	}
	return nil
}

// ConsumeByUser soft-borra las líneas del usuario para los productos dados
// (consumo por checkout).
func (r *CartRepo) ConsumeByUser(tenantID, userID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	query := `
		UPDATE cart_items SET deleted_at = now()
		WHERE tenant_id = $1 AND user_id = $2 AND product_id = ANY($3) AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, tenantID, userID, productIDs)
	if err != nil {
		return fmt.Errorf("consume cart items: %w", err)
	}
	return nil
}
