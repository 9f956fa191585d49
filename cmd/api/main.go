package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/atolyeos/atolye-api/internal/application/analytics"
	"github.com/atolyeos/atolye-api/internal/application/auth"
	"github.com/atolyeos/atolye-api/internal/application/order"
	"github.com/atolyeos/atolye-api/internal/application/production"
	"github.com/atolyeos/atolye-api/internal/application/shipment"
	"github.com/atolyeos/atolye-api/internal/application/usecase"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/infrastructure/excel"
	infrapdf "github.com/atolyeos/atolye-api/internal/infrastructure/pdf"
	"github.com/atolyeos/atolye-api/internal/infrastructure/postgres"
	httpRouter "github.com/atolyeos/atolye-api/internal/interfaces/http"
	"github.com/atolyeos/atolye-api/pkg/config"
	"github.com/atolyeos/atolye-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("schema migration")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.New(cfg.PDF.WorkshopName, cfg.PDF.FontDir, log)
	exporter := excel.NewForecastExporter()

	fallback := make(map[entity.Stage]float64, len(cfg.Production.FallbackHours))
	for stage, hours := range cfg.Production.FallbackHours {
		fallback[entity.Stage(stage)] = hours
	}

	authUC := auth.NewUseCase(userRepo, cfg.JWT)
	materialUC := usecase.NewMaterialUseCase(materialRepo)
	productUC := usecase.NewProductUseCase(productRepo, materialRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	orderUC := order.NewUseCase(orderRepo, productRepo, customerRepo, pdfGenerator)
	productionUC := production.NewUseCase(txRunner, orderRepo, productionRepo)
	shipmentUC := shipment.NewUseCase(shipmentRepo, orderRepo, pdfGenerator)
	costUC := analytics.NewCostUseCase(productRepo, materialRepo)
	bottleneckUC := analytics.NewBottleneckUseCase(productionRepo, fallback, cfg.Production.MinSampleSize)
	forecastUC := analytics.NewForecastUseCase(orderRepo, productRepo, materialRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AtölyeOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		MaterialUC:   materialUC,
		ProductUC:    productUC,
		CustomerUC:   customerUC,
		OrderUC:      orderUC,
		ProductionUC: productionUC,
		ShipmentUC:   shipmentUC,
		CostUC:       costUC,
		BottleneckUC: bottleneckUC,
		ForecastUC:   forecastUC,
		Exporter:     exporter,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
