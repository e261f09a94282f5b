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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, tenant_id, user_id, order_date, subtotal, tax_amount, discount_amount, total_amount, discount_type, discount_value, label_ids, is_voided, voided_by, voided_at, void_reason, created_by, created_at, updated_at, deleted_at`

// Create persiste la cabecera y todas las líneas. Debe llamarse dentro de la
// misma transacción que los descuentos de stock.
func (r *OrderRepo) Create(order *entity.Order, items []*entity.OrderItem) error {
	query := `
		INSERT INTO orders (id, tenant_id, user_id, order_date, subtotal, tax_amount, discount_amount, total_amount, discount_type, discount_value, label_ids, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.TenantID, order.UserID, order.OrderDate,
		order.Subtotal, order.TaxAmount, order.DiscountAmount, order.TotalAmount,
		order.DiscountType, order.DiscountValue, order.LabelIDs,
		order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return r.insertItems(order.ID, items)
}

func (r *OrderRepo) insertItems(orderID string, items []*entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, tax_rate, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, item := range items {
		_, err := r.q.Exec(context.Background(), query,
			item.ID, orderID, item.ProductID, item.ProductName,
			item.Quantity, item.UnitPrice, item.TaxRate, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden no soft-borrada. Devuelve nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders WHERE id = $1 AND deleted_at IS NULL`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.TenantID, &o.UserID, &o.OrderDate,
		&o.Subtotal, &o.TaxAmount, &o.DiscountAmount, &o.TotalAmount,
		&o.DiscountType, &o.DiscountValue, &o.LabelIDs,
		&o.IsVoided, &o.VoidedBy, &o.VoidedAt, &o.VoidReason,
		&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// GetItems devuelve las líneas de la orden en orden de inserción.
func (r *OrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, tax_rate, subtotal
		FROM order_items WHERE order_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.TaxRate, &item.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// Update persiste la cabecera completa (totales, descuento, labels y metadatos
// de anulación).
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET
			order_date = $2, subtotal = $3, tax_amount = $4, discount_amount = $5,
			total_amount = $6, discount_type = $7, discount_value = $8, label_ids = $9,
			is_voided = $10, voided_by = $11, voided_at = $12, void_reason = $13,
			updated_at = $14
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderDate, order.Subtotal, order.TaxAmount, order.DiscountAmount,
		order.TotalAmount, order.DiscountType, order.DiscountValue, order.LabelIDs,
		order.IsVoided, order.VoidedBy, order.VoidedAt, order.VoidReason,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// ReplaceItems borra y reinserta las líneas de la orden. Solo para ediciones
// de órdenes no anuladas, dentro de transacción.
func (r *OrderRepo) ReplaceItems(orderID string, items []*entity.OrderItem) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(orderID, items)
}

// SoftDelete oculta la orden de listados y consultas. No toca el stock.
func (r *OrderRepo) SoftDelete(id string) error {
	query := `
		UPDATE orders SET deleted_at = now()
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("soft delete order: %w", err)
	}
	return nil
}

// ListByTenant lista órdenes activas del tenant, más recientes primero.
func (r *OrderRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders WHERE tenant_id = $1 AND deleted_at IS NULL
		ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.TenantID, &o.UserID, &o.OrderDate,
			&o.Subtotal, &o.TaxAmount, &o.DiscountAmount, &o.TotalAmount,
			&o.DiscountType, &o.DiscountValue, &o.LabelIDs,
			&o.IsVoided, &o.VoidedBy, &o.VoidedAt, &o.VoidReason,
			&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// SumActiveTotalByUser suma el total de las órdenes vigentes del usuario
// (ni anuladas ni soft-borradas). Alimenta TotalPurchases del cliente.
func (r *OrderRepo) SumActiveTotalByUser(tenantID, userID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE tenant_id = $1 AND user_id = $2 AND is_voided = false AND deleted_at IS NULL`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, tenantID, userID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum order totals: %w", err)
	}
	return sum, nil
}
