package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/elhornero/panaderia-api/internal/application/auth"
	"github.com/elhornero/panaderia-api/internal/application/inventory"
	"github.com/elhornero/panaderia-api/internal/application/usecase"
	"github.com/elhornero/panaderia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC  *usecase.WarehouseUseCase
	ItemUC       *usecase.ItemUseCase
	RecipeUC     *usecase.RecipeUseCase
	StockQueries *usecase.StockQueryUseCase
	PurchaseUC   *usecase.PurchaseUseCase
	OrderUC      *usecase.OrderUseCase
	ProductionUC *usecase.ProductionUseCase

	ReceivePurchase *inventory.ReceivePurchaseUseCase
	PayOrder        *inventory.PayOrderUseCase
	Production      *inventory.ProductionUseCase
	AdjustStock     *inventory.AdjustStockUseCase

	AuthUC    *auth.UseCase
	JWTSecret string
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

	adminOnly := RequireRole(entity.RoleAdmin)
	adminOrBaker := RequireRole(entity.RoleAdmin, entity.RolePanadero)
	adminOrSeller := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Bodegas
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)

	// Ítems (insumos y productos terminados)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", adminOnly, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", adminOnly, itemHandler.Update)

	// Recetas
	recipes := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Post("/", adminOrBaker, recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)

	// Existencias y kardex
	stockHandler := NewStockHandler(deps.StockQueries, deps.AdjustStock)
	stock := protected.Group("/stock")
	stock.Get("/level", stockHandler.GetLevel)
	stock.Post("/adjust", adminOnly, stockHandler.Adjust)
	protected.Get("/warehouses/:warehouseID/stock", stockHandler.ListByWarehouse)
	protected.Get("/warehouses/:warehouseID/low-stock", stockHandler.ListBelowMinimum)
	protected.Get("/warehouses/:warehouseID/kardex", stockHandler.KardexByWarehouse)
	protected.Get("/items/:itemID/kardex", stockHandler.KardexByItem)
	protected.Get("/kardex/reference/:reference", stockHandler.KardexByReference)

	// Compras a proveedor
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.ReceivePurchase)
	purchases.Post("/", adminOnly, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/confirm", adminOnly, purchaseHandler.Confirm)
	purchases.Post("/:id/receive", adminOnly, purchaseHandler.Receive)
	purchases.Post("/:id/invoice", adminOnly, purchaseHandler.MarkInvoiced)
	purchases.Post("/:id/pay", adminOnly, purchaseHandler.MarkPaid)
	purchases.Post("/:id/cancel", adminOnly, purchaseHandler.Cancel)

	// Pedidos de venta
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.PayOrder)
	orders.Post("/", adminOrSeller, orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/pay", adminOrSeller, orderHandler.Pay)
	orders.Post("/:id/deliver", adminOrSeller, orderHandler.Deliver)
	orders.Post("/:id/cancel", adminOrSeller, orderHandler.Cancel)

	// Órdenes de producción
	productions := protected.Group("/productions")
	productionHandler := NewProductionHandler(deps.ProductionUC, deps.Production)
	productions.Post("/", adminOrBaker, productionHandler.Create)
	productions.Get("/", productionHandler.List)
	productions.Get("/:id", productionHandler.GetByID)
	productions.Post("/:id/start", adminOrBaker, productionHandler.Start)
	productions.Post("/:id/complete", adminOrBaker, productionHandler.Complete)
	productions.Post("/:id/cancel", adminOrBaker, productionHandler.Cancel)
}
