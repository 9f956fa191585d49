// Package usecase holds the plain CRUD use cases that need no transaction
// orchestration of their own.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/domain"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

// MaterialUseCase manages the raw-material ledger: CRUD, manual stock
// adjustment and the append-only price history.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase builds the material use case.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create registers a new material.
func (uc *MaterialUseCase) Create(ctx context.Context, req dto.CreateMaterialRequest) (*entity.Material, error) {
	if req.Name == "" || req.Unit == "" {
		return nil, fmt.Errorf("%w: name and unit are required", domain.ErrInvalidInput)
	}
	currency := req.Currency
	if currency == "" {
		currency = "TRY"
	}
	now := time.Now()
	material := &entity.Material{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Unit:          req.Unit,
		CurrentStock:  req.CurrentStock,
		MinStockLevel: req.MinStockLevel,
		UnitPrice:     req.UnitPrice,
		Currency:      currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// GetByID returns one material.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, id)
	}
	return material, nil
}

// List returns all materials ordered by name.
func (uc *MaterialUseCase) List(ctx context.Context) ([]*entity.Material, error) {
	return uc.repo.List(ctx)
}

// Update applies the non-nil fields. When the unit price changes, the price
// that was current until now is first recorded as an immutable history row;
// an update carrying the same price leaves the history untouched.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, req dto.UpdateMaterialRequest) (*entity.Material, error) {
	material, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.UnitPrice != nil && !req.UnitPrice.Equal(material.UnitPrice) {
		history := &entity.MaterialPriceHistory{
			ID:         uuid.NewString(),
			MaterialID: material.ID,
			Price:      material.UnitPrice,
			Currency:   material.Currency,
			ChangedAt:  time.Now(),
		}
		if err := uc.repo.AppendPriceHistory(ctx, history); err != nil {
			return nil, err
		}
		material.UnitPrice = *req.UnitPrice
	}

	if req.Name != nil {
		material.Name = *req.Name
	}
	if req.Unit != nil {
		material.Unit = *req.Unit
	}
	if req.CurrentStock != nil {
		material.CurrentStock = *req.CurrentStock
	}
	if req.MinStockLevel != nil {
		material.MinStockLevel = *req.MinStockLevel
	}
	if req.Currency != nil {
		material.Currency = *req.Currency
	}
	material.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// AdjustStock applies a stock delta (negative deducts, positive replenishes)
// and returns the material afterwards. No floor: stock may go negative.
func (uc *MaterialUseCase) AdjustStock(ctx context.Context, id string, req dto.AdjustStockRequest) (*entity.Material, error) {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.repo.AdjustStock(ctx, id, req.Quantity); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// ListPriceHistory returns the material's full price history, oldest first.
func (uc *MaterialUseCase) ListPriceHistory(ctx context.Context, id string) ([]entity.MaterialPriceHistory, error) {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.repo.ListPriceHistory(ctx, id)
}

// Delete removes a material.
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}
