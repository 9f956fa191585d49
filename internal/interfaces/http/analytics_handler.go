package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/atolyeos/atolye-api/internal/application/analytics"
	"github.com/atolyeos/atolye-api/internal/application/dto"
)

// ForecastExporter serializes the stock forecast as a downloadable workbook.
type ForecastExporter interface {
	Export(report *dto.StockForecastDTO) ([]byte, error)
}

// AnalyticsHandler handles the reporting endpoints (protected).
type AnalyticsHandler struct {
	costUC     *analytics.CostUseCase
	bottleneck *analytics.BottleneckUseCase
	forecastUC *analytics.ForecastUseCase
	exporter   ForecastExporter
}

// NewAnalyticsHandler builds the handler.
func NewAnalyticsHandler(
	costUC *analytics.CostUseCase,
	bottleneck *analytics.BottleneckUseCase,
	forecastUC *analytics.ForecastUseCase,
	exporter ForecastExporter,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		costUC:     costUC,
		bottleneck: bottleneck,
		forecastUC: forecastUC,
		exporter:   exporter,
	}
}

// CostAnalysis godoc
// @Summary      Material cost breakdown of a product, current or at a date
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "Product ID"
// @Param        date       query  string  false  "Price date (RFC 3339 or YYYY-MM-DD)"
// @Success      200  {object}  dto.CostAnalysisDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/analytics/cost/{productId} [get]
func (h *AnalyticsHandler) CostAnalysis(c *fiber.Ctx) error {
	var asOf *time.Time
	if raw := c.Query("date"); raw != "" {
		ts, err := parseDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date must be RFC 3339 or YYYY-MM-DD"})
		}
		asOf = &ts
	}
	report, err := h.costUC.GetCostAnalysis(c.Context(), c.Params("productId"), asOf)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Bottlenecks godoc
// @Summary      Stage duration benchmarks and delayed orders
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BottleneckReportDTO
// @Router       /api/analytics/bottlenecks [get]
func (h *AnalyticsHandler) Bottlenecks(c *fiber.Ctx) error {
	report, err := h.bottleneck.GetBottlenecks(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// StockForecast godoc
// @Summary      Projected stock against pending-order demand (problem rows only)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockForecastDTO
// @Router       /api/analytics/stock-forecast [get]
func (h *AnalyticsHandler) StockForecast(c *fiber.Ctx) error {
	report, err := h.forecastUC.GetStockForecast(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// StockForecastExport godoc
// @Summary      Download the stock forecast as an .xlsx workbook
// @Tags         analytics
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/analytics/stock-forecast/export [get]
func (h *AnalyticsHandler) StockForecastExport(c *fiber.Ctx) error {
	report, err := h.forecastUC.GetStockForecast(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	workbook, err := h.exporter.Export(report)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-forecast.xlsx"`)
	return c.Send(workbook)
}

// parseDate accepts RFC 3339 timestamps or bare dates.
func parseDate(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", raw)
}
