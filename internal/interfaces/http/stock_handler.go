package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/stock"
)

// StockHandler consultas de stock y del libro de movimientos (protegido).
type StockHandler struct {
	query *stock.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(query *stock.QueryUseCase) *StockHandler {
	return &StockHandler{query: query}
}

// GetStock obtiene cantidad y estado de stock de un producto.
// GET /api/products/:id/stock
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	productID := c.Params("id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	out, err := h.query.GetStock(c.Context(), tenantID, productID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListMovements lista el libro de movimientos con filtros opcionales.
// GET /api/stock/movements?product_id=&type=&reason=&from=&to=&limit=&offset=
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.query.ListMovements(c.Context(), tenantID, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
