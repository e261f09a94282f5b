package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/cart"
	"github.com/jhoicas/backoffice-api/internal/application/customer"
	"github.com/jhoicas/backoffice-api/internal/application/order"
	"github.com/jhoicas/backoffice-api/internal/application/stock"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	StockQuery   *stock.QueryUseCase
	AdjustmentUC *stock.AdjustmentUseCase
	CartUC       *cart.UseCase
	OrderUC      *order.UseCase
	CustomerUC   *customer.SyncUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stock: consulta por producto y libro de movimientos (protegido)
	stockHandler := NewStockHandler(deps.StockQuery)
	protected.Get("/products/:id/stock", stockHandler.GetStock)
	protected.Get("/stock/movements", stockHandler.ListMovements)

	// Ajustes manuales de stock (protegido; escribir requiere admin u operador)
	adjustments := protected.Group("/stock/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustmentWrite := RequireRole(entity.RoleAdmin, entity.RoleOperador)
	adjustments.Post("/", adjustmentWrite, adjustmentHandler.Create)
	adjustments.Put("/:id", adjustmentWrite, adjustmentHandler.Update)
	adjustments.Delete("/:id", adjustmentWrite, adjustmentHandler.Delete)

	// Carrito del usuario autenticado (protegido)
	cartGroup := protected.Group("/cart/items")
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup.Post("/", cartHandler.AddItem)
	cartGroup.Get("/", cartHandler.List)
	cartGroup.Put("/:id", cartHandler.UpdateItem)
	cartGroup.Delete("/:id", cartHandler.RemoveItem)

	// Órdenes (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Post("/:id/void", orderHandler.Void)
	orders.Post("/:id/payments", orderHandler.RecordPayment)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	// Clientes (protegido, lectura)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/by-user/:userId", customerHandler.GetByUser)
}
