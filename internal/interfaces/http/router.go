package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
)

// Roles con permiso de escritura sobre stock y proveedores.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	ProductUC     *usecase.ProductUseCase
	SupplierUC    *usecase.SupplierUseCase
	StockMovement *inventory.StockMovementUseCase
	LowStock      *inventory.LowStockUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Companies: alta pública (raíz del tenant)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	companies := protected.Group("/companies")
	alertHandler := NewAlertHandler(deps.LowStock)
	companies.Get("/:id", RequireCompanyParam("id"), companyHandler.GetByID)
	companies.Get("/:company_id/alerts/low-stock", RequireCompanyParam("company_id"), alertHandler.LowStock)
	companies.Get("/:company_id/alerts/low-stock/pdf", RequireCompanyParam("company_id"), alertHandler.ReorderSheet)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/bundle-items", RequireRole(RoleAdmin, RoleBodeguero), productHandler.AddBundleItem)
	products.Get("/:id/bundle-items", productHandler.ListBundleItems)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", RequireRole(RoleAdmin), supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/:id/products", RequireRole(RoleAdmin), supplierHandler.LinkProduct)

	inventoryHandler := NewInventoryHandler(deps.StockMovement)
	protected.Post("/sales", RequireRole(RoleAdmin, RoleVendedor, RoleBodeguero), inventoryHandler.RegisterSale)
	protected.Post("/inventory/adjustments", RequireRole(RoleAdmin, RoleBodeguero), inventoryHandler.Adjust)
}
