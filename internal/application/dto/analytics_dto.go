package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Cost analysis ─────────────────────────────────────────────────────────────

// MaterialCostDTO one recipe line of the cost breakdown. UnitPrice is the
// current price, or the price effective at the requested date when
// IsHistorical is true.
type MaterialCostDTO struct {
	MaterialID   string            `json:"material_id"`
	MaterialName string            `json:"material_name"`
	Quantity     decimal.Decimal   `json:"quantity"`
	UnitPrice    decimal.Decimal   `json:"unit_price"`
	TotalCost    decimal.Decimal   `json:"total_cost"`
	IsHistorical bool              `json:"is_historical"`
	PriceHistory []PriceHistoryDTO `json:"price_history"`
}

// CostAnalysisDTO response of GET /api/analytics/cost/:productId.
type CostAnalysisDTO struct {
	ProductID     string            `json:"product_id"`
	ProductName   string            `json:"product_name"`
	TotalCost     decimal.Decimal   `json:"total_cost"`
	AnalysisDate  time.Time         `json:"analysis_date"`
	MaterialCosts []MaterialCostDTO `json:"material_costs"`
}

// ── Bottleneck analysis ───────────────────────────────────────────────────────

// StageBenchmarkDTO duration statistics for one non-terminal stage. With
// fewer than the minimum sample size, the fixed fallback duration is
// reported (IsFallback true) and max/min stay zero.
type StageBenchmarkDTO struct {
	Stage                string  `json:"stage"`
	AverageDurationHours float64 `json:"average_duration_hours"`
	MaxDurationHours     float64 `json:"max_duration_hours"`
	MinDurationHours     float64 `json:"min_duration_hours"`
	SampleSize           int     `json:"sample_size"`
	IsFallback           bool    `json:"is_fallback"`
}

// DelayAlertDTO an in-progress order whose current stage has run strictly
// longer than 1.2x its benchmark average.
type DelayAlertDTO struct {
	OrderID         string  `json:"order_id"`
	Stage           string  `json:"stage"`
	ElapsedHours    float64 `json:"elapsed_hours"`
	AverageExpected float64 `json:"average_expected"`
	DelayRisk       string  `json:"delay_risk"`
}

// BottleneckReportDTO response of GET /api/analytics/bottlenecks.
type BottleneckReportDTO struct {
	StageBenchmarks []StageBenchmarkDTO `json:"stage_benchmarks"`
	ActiveDelays    []DelayAlertDTO     `json:"active_delays"`
}

// ── Stock forecast ────────────────────────────────────────────────────────────

// MaterialForecastDTO projected stock for one material against pending
// demand. Only problem rows (status != OK) are surfaced in the report.
type MaterialForecastDTO struct {
	MaterialID         string          `json:"material_id"`
	MaterialName       string          `json:"material_name"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReservedForPending decimal.Decimal `json:"reserved_for_pending"`
	ProjectedStock     decimal.Decimal `json:"projected_stock"`
	MinStockLevel      decimal.Decimal `json:"min_stock_level"`
	Status             string          `json:"status"`          // CRITICAL_SHORTAGE | OUT_OF_STOCK | OK
	ProjectedState     string          `json:"projected_state"` // tri-state of the projected stock
}

// StockForecastDTO response of GET /api/analytics/stock-forecast.
type StockForecastDTO struct {
	PendingOrdersCount int                   `json:"pending_orders_count"`
	Forecast           []MaterialForecastDTO `json:"forecast"`
}
