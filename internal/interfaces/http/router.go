package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atolyeos/atolye-api/internal/application/analytics"
	"github.com/atolyeos/atolye-api/internal/application/auth"
	"github.com/atolyeos/atolye-api/internal/application/order"
	"github.com/atolyeos/atolye-api/internal/application/production"
	"github.com/atolyeos/atolye-api/internal/application/shipment"
	"github.com/atolyeos/atolye-api/internal/application/usecase"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	MaterialUC   *usecase.MaterialUseCase
	ProductUC    *usecase.ProductUseCase
	CustomerUC   *usecase.CustomerUseCase
	OrderUC      *order.UseCase
	ProductionUC *production.UseCase
	ShipmentUC   *shipment.UseCase
	CostUC       *analytics.CostUseCase
	BottleneckUC *analytics.BottleneckUseCase
	ForecastUC   *analytics.ForecastUseCase
	Exporter     ForecastExporter
	JWTSecret    string
}

// Router registers the API routes. Everything except auth requires a Bearer
// token; destructive catalog operations additionally require the ADMIN role.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Materials
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Post("/:id/stock", materialHandler.AdjustStock)
	materials.Get("/:id/price-history", materialHandler.PriceHistory)
	materials.Delete("/:id", adminOnly, materialHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Get("/:id/proforma", orderHandler.Proforma)
	orders.Delete("/:id", adminOnly, orderHandler.Delete)

	// Production tracker
	productionGroup := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	productionGroup.Post("/start", productionHandler.Start)
	productionGroup.Post("/ensure", productionHandler.Ensure)
	productionGroup.Get("/", productionHandler.ListActive)
	productionGroup.Get("/:id", productionHandler.GetByID)
	productionGroup.Patch("/:id/stage", productionHandler.UpdateStage)

	// Shipments
	shipments := protected.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Get("/:id/waybill", shipmentHandler.Waybill)

	// Analytics
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.CostUC, deps.BottleneckUC, deps.ForecastUC, deps.Exporter)
	analyticsGroup.Get("/cost/:productId", analyticsHandler.CostAnalysis)
	analyticsGroup.Get("/bottlenecks", analyticsHandler.Bottlenecks)
	analyticsGroup.Get("/stock-forecast", analyticsHandler.StockForecast)
	analyticsGroup.Get("/stock-forecast/export", analyticsHandler.StockForecastExport)
}
