package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/customer"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
)

// CustomerHandler agregado de cliente (protegido, solo lectura).
type CustomerHandler struct {
	uc *customer.SyncUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customer.SyncUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List lista clientes del tenant con su total histórico de compras.
// GET /api/customers?limit=&offset=
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListByTenant(c.Context(), tenantID, page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByUser obtiene el cliente ligado a un usuario.
// GET /api/customers/by-user/:userId
func (h *CustomerHandler) GetByUser(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.GetByUser(c.Context(), tenantID, c.Params("userId"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
