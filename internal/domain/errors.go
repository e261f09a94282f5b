package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrUserNotFound            = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists      = errors.New("el email ya está registrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
	ErrConflict                = errors.New("conflicto con el estado actual")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrOrderVoided             = errors.New("la orden ya fue anulada")
	ErrHasActivePayments       = errors.New("la orden tiene pagos activos")
	ErrPaymentCheckUnavailable = errors.New("verificación de pagos no disponible")
)

// InsufficientStockError detalla un rechazo por stock insuficiente con las
// cantidades involucradas, para construir mensajes accionables al usuario.
type InsufficientStockError struct {
	ProductID string
	Current   decimal.Decimal // cantidad actual en stock
	Requested decimal.Decimal // cantidad solicitada
	Available decimal.Decimal // cuánto puede agregarse todavía (>= 0)
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stock insuficiente. Puede agregar hasta %s artículo(s) más.", e.Available.String())
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NewInsufficientStockError construye el error con Available = max(0, current - alreadyTaken).
func NewInsufficientStockError(productID string, current, requested, alreadyTaken decimal.Decimal) *InsufficientStockError {
	available := current.Sub(alreadyTaken)
	if available.IsNegative() {
		available = decimal.Zero
	}
	return &InsufficientStockError{
		ProductID: productID,
		Current:   current,
		Requested: requested,
		Available: available,
	}
}
