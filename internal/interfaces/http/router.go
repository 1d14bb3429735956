package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/application/catalog"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/reporting"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CatalogUC   *catalog.CatalogUseCase
	LedgerUC    *inventory.LedgerUseCase
	ReportingUC *reporting.ReportingUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público). register acepta token opcional: crear un admin exige ser admin.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret, deps.AuthUC), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CatalogUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.CatalogUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Movimientos: /today va antes de /:id
	movements := protected.Group("/movements")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ReportingUC)
	movements.Post("/", inventoryHandler.RegisterMovement)
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Get("/today", inventoryHandler.Today)
	movements.Get("/:id", inventoryHandler.GetMovement)
	movements.Delete("/:id", adminOnly, inventoryHandler.ReverseMovement)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportingUC)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/categories", reportHandler.Categories)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/export", reportHandler.Export)
	reports.Get("/export/pdf", reportHandler.ExportPDF)
}
