package order_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/order"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Subtotal $100, descuento 10% y tasa de impuesto 8%: el impuesto se calcula
// sobre el subtotal antes del descuento, así que total = 100 + 8 - 10 = 98.
func TestComputeTotals_PorcentajeConImpuesto(t *testing.T) {
	lines := []order.LineAmounts{
		{Quantity: dec(2), UnitPrice: dec(50), TaxRate: dec(8)},
	}
	got, err := order.ComputeTotals(lines, entity.DiscountTypePercentage, dec(10))
	require.NoError(t, err)

	assert.True(t, got.Subtotal.Equal(dec(100)), "subtotal: %s", got.Subtotal)
	assert.True(t, got.Tax.Equal(dec(8)), "tax: %s", got.Tax)
	assert.True(t, got.Discount.Equal(dec(10)), "discount: %s", got.Discount)
	assert.True(t, got.Total.Equal(dec(98)), "total: %s", got.Total)
}

func TestComputeTotals_DescuentoFijoConClamp(t *testing.T) {
	lines := []order.LineAmounts{
		{Quantity: dec(1), UnitPrice: dec(30), TaxRate: decimal.Zero},
	}
	// Descuento fijo mayor al subtotal: se recorta al subtotal, total queda en 0.
	got, err := order.ComputeTotals(lines, entity.DiscountTypeFixed, dec(50))
	require.NoError(t, err)
	assert.True(t, got.Discount.Equal(dec(30)))
	assert.True(t, got.Total.IsZero())
}

func TestComputeTotals_AcumulaVariasLineas(t *testing.T) {
	lines := []order.LineAmounts{
		{Quantity: dec(3), UnitPrice: dec(10), TaxRate: dec(19)},
		{Quantity: dec(1), UnitPrice: dec(20), TaxRate: dec(5)},
	}
	got, err := order.ComputeTotals(lines, "", decimal.Zero)
	require.NoError(t, err)

	assert.True(t, got.Subtotal.Equal(dec(50)))
	// 30*0.19 + 20*0.05 = 5.70 + 1.00
	assert.True(t, got.Tax.Equal(decimal.RequireFromString("6.7")), "tax: %s", got.Tax)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("56.7")))
}

func TestComputeTotals_DescuentosInvalidos(t *testing.T) {
	lines := []order.LineAmounts{{Quantity: dec(1), UnitPrice: dec(10), TaxRate: decimal.Zero}}

	_, err := order.ComputeTotals(lines, entity.DiscountTypePercentage, dec(101))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = order.ComputeTotals(lines, entity.DiscountTypeFixed, dec(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = order.ComputeTotals(lines, "bogus", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin tipo de descuento no se acepta un valor distinto de cero.
	_, err = order.ComputeTotals(lines, "", dec(5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
