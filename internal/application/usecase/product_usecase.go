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

// ProductUseCase manages the product catalog and each product's
// bill-of-materials. Recipe quantities are per single unit of product.
type ProductUseCase struct {
	repo         repository.ProductRepository
	materialRepo repository.MaterialRepository
}

// NewProductUseCase builds the product use case.
func NewProductUseCase(repo repository.ProductRepository, materialRepo repository.MaterialRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, materialRepo: materialRepo}
}

// Create registers a product and its recipe. Every recipe line must point at
// an existing material.
func (uc *ProductUseCase) Create(ctx context.Context, req dto.CreateProductRequest) (*entity.Product, []entity.RecipeItem, error) {
	if req.Name == "" {
		return nil, nil, fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	currency := req.Currency
	if currency == "" {
		currency = "TRY"
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Currency:    currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	recipe, err := uc.buildRecipe(ctx, product.ID, req.Recipe)
	if err != nil {
		return nil, nil, err
	}

	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, nil, err
	}
	if len(recipe) > 0 {
		if err := uc.repo.ReplaceRecipe(ctx, product.ID, recipe); err != nil {
			return nil, nil, err
		}
	}
	return product, recipe, nil
}

// GetByID returns one product with its recipe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, []entity.RecipeItem, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	recipe, err := uc.repo.GetRecipe(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return product, recipe, nil
}

// List returns all products ordered by name.
func (uc *ProductUseCase) List(ctx context.Context) ([]*entity.Product, error) {
	return uc.repo.List(ctx)
}

// Update applies the non-nil fields; a non-nil Recipe replaces the whole
// bill-of-materials. Base-price changes do not touch existing orders: their
// unit prices were frozen at order time.
func (uc *ProductUseCase) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*entity.Product, []entity.RecipeItem, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.BasePrice != nil {
		product.BasePrice = *req.BasePrice
	}
	if req.Currency != nil {
		product.Currency = *req.Currency
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, nil, err
	}

	if req.Recipe != nil {
		recipe, err := uc.buildRecipe(ctx, product.ID, req.Recipe)
		if err != nil {
			return nil, nil, err
		}
		if err := uc.repo.ReplaceRecipe(ctx, product.ID, recipe); err != nil {
			return nil, nil, err
		}
		return product, recipe, nil
	}

	recipe, err := uc.repo.GetRecipe(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return product, recipe, nil
}

// Delete removes a product and its recipe.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) buildRecipe(ctx context.Context, productID string, lines []dto.RecipeItemRequest) ([]entity.RecipeItem, error) {
	recipe := make([]entity.RecipeItem, 0, len(lines))
	for _, line := range lines {
		if !line.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: recipe quantity must be positive", domain.ErrInvalidInput)
		}
		material, err := uc.materialRepo.GetByID(ctx, line.MaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, fmt.Errorf("%w: material %s", domain.ErrNotFound, line.MaterialID)
		}
		recipe = append(recipe, entity.RecipeItem{
			ID:         uuid.NewString(),
			ProductID:  productID,
			MaterialID: line.MaterialID,
			Quantity:   line.Quantity,
		})
	}
	return recipe, nil
}
