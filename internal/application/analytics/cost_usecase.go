// Package analytics contains the read-only business-intelligence use cases:
// product cost analysis, production bottleneck detection and the stock
// forecast. All three tolerate sparse data and never write.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/domain"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

// priceHistoryWindow caps how much history is loaded per material for the
// effective-at lookup and the breakdown payload.
const priceHistoryWindow = 50

// CostUseCase computes the material cost breakdown of a product, either at
// current prices or at the prices effective on a given date.
type CostUseCase struct {
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
}

// NewCostUseCase builds the cost-analysis use case.
func NewCostUseCase(productRepo repository.ProductRepository, materialRepo repository.MaterialRepository) *CostUseCase {
	return &CostUseCase{productRepo: productRepo, materialRepo: materialRepo}
}

// GetCostAnalysis resolves the product's recipe and prices every line.
// With asOf nil the material's current unit price is used; otherwise the
// nearest price effective at or before asOf wins (falling back to the
// current price when no history entry qualifies).
func (uc *CostUseCase) GetCostAnalysis(ctx context.Context, productID string, asOf *time.Time) (*dto.CostAnalysisDTO, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, productID)
	}

	recipe, err := uc.productRepo.GetRecipe(ctx, productID)
	if err != nil {
		return nil, err
	}

	analysisDate := time.Now()
	if asOf != nil {
		analysisDate = *asOf
	}

	total := decimal.Zero
	costs := make([]dto.MaterialCostDTO, 0, len(recipe))
	for _, item := range recipe {
		material, err := uc.materialRepo.GetByID(ctx, item.MaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, item.MaterialID)
		}
		history, err := uc.materialRepo.ListRecentPriceHistory(ctx, item.MaterialID, priceHistoryWindow)
		if err != nil {
			return nil, err
		}

		unitPrice := material.UnitPrice
		if asOf != nil {
			unitPrice = entity.PriceEffectiveAt(history, *asOf, material.UnitPrice)
		}

		lineTotal := item.Quantity.Mul(unitPrice)
		total = total.Add(lineTotal)

		costs = append(costs, dto.MaterialCostDTO{
			MaterialID:   material.ID,
			MaterialName: material.Name,
			Quantity:     item.Quantity,
			UnitPrice:    unitPrice,
			TotalCost:    lineTotal,
			IsHistorical: asOf != nil,
			PriceHistory: dto.NewPriceHistoryDTOs(history),
		})
	}

	return &dto.CostAnalysisDTO{
		ProductID:     product.ID,
		ProductName:   product.Name,
		TotalCost:     total,
		AnalysisDate:  analysisDate,
		MaterialCosts: costs,
	}, nil
}
