package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "products_tenant_id_sku_key"}

	assert.True(t, isUniqueViolation(uniqueErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert product: %w", uniqueErr)),
		"debe detectar el código a través de wraps")
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueViolation(errors.New("conexión perdida")))
}

func TestIsCheckViolation(t *testing.T) {
	checkErr := &pgconn.PgError{Code: "23514", ConstraintName: "product_stock_quantity_check"}

	assert.True(t, isCheckViolation(checkErr))
	assert.True(t, isCheckViolation(fmt.Errorf("upsert stock: %w", checkErr)))
	assert.False(t, isCheckViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isCheckViolation(errors.New("conexión perdida")))
}
