package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/stock"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		quantity decimal.Decimal
		minimum  *decimal.Decimal
		want     string
	}{
		{"cero es out_of_stock", dec(0), decPtr(5), entity.StockStatusOutOfStock},
		{"cero sin minimo es out_of_stock", dec(0), nil, entity.StockStatusOutOfStock},
		{"igual al minimo es low_stock", dec(5), decPtr(5), entity.StockStatusLowStock},
		{"debajo del minimo es low_stock", dec(4), decPtr(5), entity.StockStatusLowStock},
		{"encima del minimo es in_stock", dec(6), decPtr(5), entity.StockStatusInStock},
		{"sin minimo configurado es in_stock", dec(1), nil, entity.StockStatusInStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stock.DeriveStatus(tt.quantity, tt.minimum))
		})
	}
}

// Escenario: quantity=10, minimum=5. Tras restar 6 queda 4 (low_stock); tras
// restar 4 más queda 0 (out_of_stock); restar 1 adicional no es aplicable.
func TestDeriveStatus_SecuenciaDeDescuentos(t *testing.T) {
	min := decPtr(5)
	qty := dec(10)

	qty = qty.Sub(dec(6))
	assert.True(t, qty.Equal(dec(4)))
	assert.Equal(t, entity.StockStatusLowStock, stock.DeriveStatus(qty, min))

	qty = qty.Sub(dec(4))
	assert.True(t, qty.IsZero())
	assert.Equal(t, entity.StockStatusOutOfStock, stock.DeriveStatus(qty, min))

	assert.False(t, stock.CanApply(qty, dec(-1)), "no debe permitir stock negativo")
}

func TestCanApply(t *testing.T) {
	assert.True(t, stock.CanApply(dec(3), dec(-3)), "descontar exactamente el stock actual es válido")
	assert.False(t, stock.CanApply(dec(3), dec(-4)))
	assert.True(t, stock.CanApply(dec(0), dec(7)))
}
