package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frescosur/mayorista-api/internal/application/auth"
	"github.com/frescosur/mayorista-api/internal/application/merma"
	"github.com/frescosur/mayorista-api/internal/application/orders"
	"github.com/frescosur/mayorista-api/internal/application/reporting"
	appstock "github.com/frescosur/mayorista-api/internal/application/stock"
	"github.com/frescosur/mayorista-api/internal/application/usecase"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	Engine       *appstock.Engine
	MermaUC      *merma.UseCase
	OrderUC      *orders.UseCase
	ProveedorUC  *usecase.ProveedorUseCase
	ClienteUC    *usecase.ClienteUseCase
	ReceivableUC *usecase.ReceivableUseCase
	DashboardUC  *reporting.DashboardUseCase
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

	// Roles con permiso de escritura sobre stock y catálogo.
	bodegaRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products (protegido; escritura solo admin/bodeguero)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", bodegaRoles, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", bodegaRoles, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Movimientos de stock (protegido; registro manual solo admin/bodeguero)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Engine, deps.DashboardUC)
	movements.Post("/", bodegaRoles, movementHandler.Register)
	movements.Get("/", movementHandler.List)
	movements.Get("/summary", movementHandler.Summary)

	// Mermas (protegido; registro solo admin/bodeguero)
	mermas := protected.Group("/mermas")
	mermaHandler := NewMermaHandler(deps.MermaUC)
	mermas.Post("/", bodegaRoles, mermaHandler.Register)
	mermas.Get("/", mermaHandler.List)

	// Órdenes de compra y venta (protegido)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/:id/complete", orderHandler.Complete)
	ordersGroup.Post("/:id/cancel", orderHandler.Cancel)

	// Proveedores (protegido)
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Post("/", proveedorHandler.Create)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Get("/:id", proveedorHandler.GetByID)
	proveedores.Put("/:id", proveedorHandler.Update)
	proveedores.Delete("/:id", adminOnly, proveedorHandler.Delete)

	// Clientes (protegido)
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Delete("/:id", adminOnly, clienteHandler.Delete)

	// Cuentas por cobrar (protegido)
	cuentas := protected.Group("/cuentas")
	receivableHandler := NewReceivableHandler(deps.ReceivableUC)
	cuentas.Get("/vencidas", receivableHandler.ListOverdue)
	cuentas.Get("/cliente/:clienteId", receivableHandler.ListByCliente)
	cuentas.Get("/:id", receivableHandler.GetByID)
	cuentas.Post("/:id/pagos", receivableHandler.RegisterPayment)

	// Dashboard (protegido, solo lectura)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/low-stock", dashboardHandler.LowStock)
	dashboard.Get("/reconcile", dashboardHandler.ReconcileAll)
	dashboard.Get("/reconcile/:id", dashboardHandler.Reconcile)
}
