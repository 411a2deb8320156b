package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/transactions"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC   *usecase.WarehouseUseCase
	ProductUC     *usecase.ProductUseCase
	TransactionUC *transactions.UseCase
	BarcodeUC     *transactions.BarcodeUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Lecturas abiertas a cualquier usuario
// autenticado; mutaciones de catálogo solo admin; mutaciones de traslados
// admin o bodeguero.
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
	warehouseStaff := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Warehouses (protegido; mutaciones solo admin)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)

	// Products (protegido; mutaciones solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)

	// Warehouse transactions (protegido; mutaciones admin o bodeguero)
	txGroup := protected.Group("/transactions")
	txHandler := NewTransactionHandler(deps.TransactionUC)
	txGroup.Post("/", warehouseStaff, txHandler.Create)
	txGroup.Get("/", txHandler.List)
	txGroup.Post("/cancel", warehouseStaff, txHandler.Cancel)
	txGroup.Get("/:id", txHandler.GetByID)
	txGroup.Put("/:id", warehouseStaff, txHandler.Edit)
	txGroup.Get("/:id/items", txHandler.ListItems)
	txGroup.Post("/:id/receive", warehouseStaff, txHandler.Receive)

	// Stock (protegido, solo lectura)
	stockHandler := NewStockHandler(deps.TransactionUC)
	protected.Get("/stock", stockHandler.Get)
	warehouses.Get("/:id/stock", stockHandler.ListByWarehouse)

	// Barcodes (protegido, solo lectura)
	barcodeHandler := NewBarcodeHandler(deps.BarcodeUC)
	protected.Get("/barcodes/:code", barcodeHandler.Resolve)
}
