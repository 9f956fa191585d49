package analytics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

// Forecast status values. OK rows are computed but filtered out of the
// report; only problem materials are surfaced.
const (
	ForecastStatusCritical   = "CRITICAL_SHORTAGE"
	ForecastStatusOutOfStock = "OUT_OF_STOCK"
	ForecastStatusOK         = "OK"
)

// ForecastUseCase projects stock levels against the aggregate material
// demand of orders still waiting to start. Orders already in production have
// already consumed their materials and are excluded by construction.
type ForecastUseCase struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
}

// NewForecastUseCase builds the stock-forecast use case.
func NewForecastUseCase(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, materialRepo repository.MaterialRepository) *ForecastUseCase {
	return &ForecastUseCase{orderRepo: orderRepo, productRepo: productRepo, materialRepo: materialRepo}
}

// GetStockForecast aggregates recipe demand across all PENDING orders and
// reports every material whose projected stock is problematic.
func (uc *ForecastUseCase) GetStockForecast(ctx context.Context) (*dto.StockForecastDTO, error) {
	pending, err := uc.orderRepo.ListByStatus(ctx, entity.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return &dto.StockForecastDTO{PendingOrdersCount: 0, Forecast: []dto.MaterialForecastDTO{}}, nil
	}

	required := make(map[string]decimal.Decimal)
	for _, order := range pending {
		for _, item := range order.Items {
			recipe, err := uc.productRepo.GetRecipe(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			qty := decimal.NewFromInt(int64(item.Quantity))
			for _, ri := range recipe {
				required[ri.MaterialID] = required[ri.MaterialID].Add(ri.Quantity.Mul(qty))
			}
		}
	}
	if len(required) == 0 {
		return &dto.StockForecastDTO{PendingOrdersCount: len(pending), Forecast: []dto.MaterialForecastDTO{}}, nil
	}

	ids := make([]string, 0, len(required))
	for id := range required {
		ids = append(ids, id)
	}
	materials, err := uc.materialRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	forecast := make([]dto.MaterialForecastDTO, 0)
	for _, material := range materials {
		needed := required[material.ID]
		projected := material.CurrentStock.Sub(needed)

		status := ForecastStatusOK
		switch {
		case projected.LessThan(material.MinStockLevel):
			status = ForecastStatusCritical
		case projected.IsNegative():
			status = ForecastStatusOutOfStock
		}
		if status == ForecastStatusOK {
			continue
		}

		forecast = append(forecast, dto.MaterialForecastDTO{
			MaterialID:         material.ID,
			MaterialName:       material.Name,
			CurrentStock:       material.CurrentStock,
			ReservedForPending: needed,
			ProjectedStock:     projected,
			MinStockLevel:      material.MinStockLevel,
			Status:             status,
			ProjectedState:     string(entity.StockStateOf(projected, material.MinStockLevel)),
		})
	}

	return &dto.StockForecastDTO{
		PendingOrdersCount: len(pending),
		Forecast:           forecast,
	}, nil
}
