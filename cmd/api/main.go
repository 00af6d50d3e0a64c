package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/evodia-api/internal/application/analytics"
	"github.com/jhoicas/evodia-api/internal/application/auth"
	"github.com/jhoicas/evodia-api/internal/application/inventory"
	"github.com/jhoicas/evodia-api/internal/application/recipe"
	"github.com/jhoicas/evodia-api/internal/application/reports"
	"github.com/jhoicas/evodia-api/internal/application/sales"
	"github.com/jhoicas/evodia-api/internal/infrastructure/cache"
	"github.com/jhoicas/evodia-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/evodia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/evodia-api/internal/infrastructure/records"
	"github.com/jhoicas/evodia-api/internal/infrastructure/sheets"
	"github.com/jhoicas/evodia-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/evodia-api/internal/interfaces/http"
	"github.com/jhoicas/evodia-api/pkg/config"
	"github.com/jhoicas/evodia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}
	if cfg.Operator.PasswordHash == "" {
		log.Warn().Msg("OPERATOR_PASSWORD_HASH vacío: nadie podrá iniciar sesión")
	}

	ctx := context.Background()
	backend, closeStore, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de registros")
	}
	defer closeStore()

	recorder := metrics.New()
	recordStore := cache.New(backend, cfg.Store.CacheTTL(), cache.WithObserver(recorder))
	if err := recordStore.EnsureTables(ctx); err != nil {
		log.Fatal().Err(err).Msg("inicializar tablas")
	}

	loc := cfg.App.Location()
	inventoryRepo := records.NewInventoryRepository(recordStore, log)
	recipeRepo := records.NewRecipeRepository(recordStore)
	salesRepo := records.NewSalesOrderRepository(recordStore, loc)
	purchaseRepo := records.NewPurchaseOrderRepository(recordStore, loc)

	// Un solo lock para venta, producción, compra y editores: serializa leer-modificar-escribir.
	writeLock := inventory.NewWriteLock()
	engineOpts := inventory.Options{
		IDs: inventory.IDConfig{
			SalesPrefix:    cfg.IDs.SalesPrefix,
			PurchasePrefix: cfg.IDs.PurchasePrefix,
			MaterialPrefix: cfg.IDs.MaterialPrefix,
			Width:          cfg.IDs.Width,
		},
		DefaultCategory: cfg.Inventory.DefaultCategory,
		Clock:           func() time.Time { return time.Now().In(loc) },
		Metrics:         recorder,
		Lock:            writeLock,
	}
	resolver := inventory.NewBOMResolver(recipeRepo)
	consumptionUC := inventory.NewConsumptionUseCase(resolver, inventoryRepo, salesRepo, log, engineOpts)
	intakeUC := inventory.NewIntakeUseCase(inventoryRepo, purchaseRepo, log, engineOpts)
	stockUC := inventory.NewStockQueryUseCase(inventoryRepo, cfg.Inventory.LowStockThreshold)
	recipeUC := recipe.NewRecipeUseCase(recipeRepo, writeLock, log)
	reportsUC := reports.NewReportsUseCase(recordStore, sheets.NewReportExporter(), loc, writeLock)
	dashboardUC := appanalytics.NewDashboardUseCase(recordStore, stockUC)

	// PDF: comprobante de venta
	receiptUC := sales.NewReceiptUseCase(salesRepo, resolver, infrapdf.NewMarotoPDFGenerator(), cfg.App.BusinessName, log)

	authUC := auth.NewAuthUseCase(
		auth.Operator{Username: cfg.Operator.Username, PasswordHash: cfg.Operator.PasswordHash},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		UnescapePath: true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	if cfg.Metrics.Enabled {
		app.Use(httpRouter.MetricsMiddleware(recorder))
		app.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))
	}

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Evodia API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Backend})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ConsumptionUC: consumptionUC,
		IntakeUC:      intakeUC,
		StockUC:       stockUC,
		RecipeUC:      recipeUC,
		ReportsUC:     reportsUC,
		ReceiptUC:     receiptUC,
		DashboardUC:   dashboardUC,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
