// Package order contiene la aritmética pura de totales de orden.
package order

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals agrupa los montos calculados de una orden.
// Total = Subtotal + Tax - Discount, con Discount <= Subtotal (clamp).
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// LineAmounts es la entrada mínima por línea para calcular totales.
// TaxRate es porcentaje (8 = 8%).
type LineAmounts struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
}

// Subtotal devuelve UnitPrice * Quantity.
func (l LineAmounts) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(l.Quantity)
}

// ComputeTotals acumula subtotal e impuesto línea a línea (el impuesto se
// calcula sobre el subtotal de cada línea, antes del descuento) y aplica el
// descuento global: percentage -> subtotal*valor/100, fixed -> valor, siempre
// con clamp a subtotal. Valores de descuento fuera de rango retornan
// ErrInvalidInput.
func ComputeTotals(lines []LineAmounts, discountType string, discountValue decimal.Decimal) (Totals, error) {
	var t Totals
	for _, l := range lines {
		lineSubtotal := l.Subtotal()
		t.Subtotal = t.Subtotal.Add(lineSubtotal)
		t.Tax = t.Tax.Add(lineSubtotal.Mul(l.TaxRate).Div(hundred))
	}

	switch discountType {
	case "":
		if !discountValue.IsZero() {
			return Totals{}, domain.ErrInvalidInput
		}
	case entity.DiscountTypePercentage:
		if discountValue.IsNegative() || discountValue.GreaterThan(hundred) {
			return Totals{}, domain.ErrInvalidInput
		}
		t.Discount = t.Subtotal.Mul(discountValue).Div(hundred)
	case entity.DiscountTypeFixed:
		if discountValue.IsNegative() {
			return Totals{}, domain.ErrInvalidInput
		}
		t.Discount = discountValue
	default:
		return Totals{}, domain.ErrInvalidInput
	}

	if t.Discount.GreaterThan(t.Subtotal) {
		t.Discount = t.Subtotal
	}
	t.Total = t.Subtotal.Add(t.Tax).Sub(t.Discount)
	return t, nil
}
