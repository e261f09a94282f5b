package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasPgCode(err, "23505") // unique_violation
}

// isCheckViolation verifica si un error es una violación de CHECK (23514).
// El CHECK (quantity >= 0) de product_stock es la última línea de defensa
// contra cantidades negativas; los repos lo traducen a dominio.
func isCheckViolation(err error) bool {
	return hasPgCode(err, "23514") // check_violation
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}
