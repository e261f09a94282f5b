package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación de StockAdjustmentRepository (usable con pool o tx).
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

const adjustmentColumns = `id, tenant_id, product_id, adjustment_type, quantity, previous_quantity, new_quantity, reason, notes, created_by, created_at, updated_at, deleted_at`

// Create persiste un ajuste con sus snapshots previo/nuevo.
func (r *StockAdjustmentRepo) Create(adjustment *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, tenant_id, product_id, adjustment_type, quantity, previous_quantity, new_quantity, reason, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.TenantID, adjustment.ProductID, adjustment.AdjustmentType,
		adjustment.Quantity, adjustment.PreviousQuantity, adjustment.NewQuantity,
		adjustment.Reason, adjustment.Notes, adjustment.CreatedBy,
		adjustment.CreatedAt, adjustment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// GetActiveByID obtiene un ajuste no revertido. Devuelve nil si no existe o ya
// fue soft-borrado.
func (r *StockAdjustmentRepo) GetActiveByID(id string) (*entity.StockAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM stock_adjustments WHERE id = $1 AND deleted_at IS NULL`
	var a entity.StockAdjustment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.TenantID, &a.ProductID, &a.AdjustmentType,
		&a.Quantity, &a.PreviousQuantity, &a.NewQuantity,
		&a.Reason, &a.Notes, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return &a, nil
}

// ListByTenant lista ajustes activos del tenant, opcionalmente por producto,
// más recientes primero.
func (r *StockAdjustmentRepo) ListByTenant(tenantID, productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM stock_adjustments WHERE tenant_id = $1 AND deleted_at IS NULL`
	args := []any{tenantID}
	pos := 2
	if productID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, productID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(
			&a.ID, &a.TenantID, &a.ProductID, &a.AdjustmentType,
			&a.Quantity, &a.PreviousQuantity, &a.NewQuantity,
			&a.Reason, &a.Notes, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// UpdateNotes actualiza reason/notes de un ajuste activo. Cantidad y tipo
// quedan fuera a propósito: son inmutables.
func (r *StockAdjustmentRepo) UpdateNotes(id, reason, notes string, updatedAt time.Time) error {
	query := `
		UPDATE stock_adjustments SET reason = $2, notes = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id, reason, notes, updatedAt)
	if err != nil {
		return fmt.Errorf("update adjustment: %w", err)
	}
	return nil
}

// SoftDelete marca el ajuste como revertido.
func (r *StockAdjustmentRepo) SoftDelete(id string, deletedAt time.Time) error {
	query := `
		UPDATE stock_adjustments SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete adjustment: %w", err)
	}
	return nil
}
