package repository

import (
	"context"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// ProductRepository is the product catalog port. GetRecipe is the recipe
// resolver boundary: quantities are per single unit of product and an unknown
// product yields an empty bill-of-materials, not an error.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error

	GetRecipe(ctx context.Context, productID string) ([]entity.RecipeItem, error)
	// ReplaceRecipe swaps the product's whole bill-of-materials.
	ReplaceRecipe(ctx context.Context, productID string, items []entity.RecipeItem) error
}
