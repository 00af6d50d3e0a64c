package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/evodia-api/internal/application/analytics"
	"github.com/jhoicas/evodia-api/internal/application/auth"
	"github.com/jhoicas/evodia-api/internal/application/inventory"
	"github.com/jhoicas/evodia-api/internal/application/recipe"
	"github.com/jhoicas/evodia-api/internal/application/reports"
	"github.com/jhoicas/evodia-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ConsumptionUC *inventory.ConsumptionUseCase
	IntakeUC      *inventory.IntakeUseCase
	StockUC       *inventory.StockQueryUseCase
	RecipeUC      *recipe.RecipeUseCase
	ReportsUC     *reports.ReportsUseCase
	ReceiptUC     *sales.ReceiptUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	JWTSecret     string
	JWTIssuer     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Ventas
	salesHandler := NewSalesHandler(deps.ConsumptionUC, deps.ReportsUC, deps.ReceiptUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Put("/", salesHandler.Update)
	salesGroup.Get("/export", salesHandler.Export)
	salesGroup.Get("/:id/receipt", salesHandler.Receipt)

	// Producción interna
	productionHandler := NewProductionHandler(deps.ConsumptionUC)
	protected.Post("/production", productionHandler.Create)

	// Compras
	purchaseHandler := NewPurchaseHandler(deps.IntakeUC, deps.ReportsUC)
	purchases := protected.Group("/purchases")
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Put("/", purchaseHandler.Update)
	purchases.Get("/export", purchaseHandler.Export)

	// Stock
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	protected.Get("/inventory", inventoryHandler.List)

	// Recetas
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes := protected.Group("/recipes")
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:product", recipeHandler.Get)
	recipes.Put("/:product", recipeHandler.Save)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
