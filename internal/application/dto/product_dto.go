package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// RecipeItemRequest one bill-of-materials line (quantity per product unit).
type RecipeItemRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	BasePrice   decimal.Decimal     `json:"base_price"`
	Currency    string              `json:"currency"`
	Recipe      []RecipeItemRequest `json:"recipe"`
}

// UpdateProductRequest body for PUT /api/products/:id. A non-nil Recipe
// replaces the whole bill-of-materials.
type UpdateProductRequest struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	BasePrice   *decimal.Decimal    `json:"base_price,omitempty"`
	Currency    *string             `json:"currency,omitempty"`
	Recipe      []RecipeItemRequest `json:"recipe,omitempty"`
}

// RecipeItemDTO one bill-of-materials line of a product response.
type RecipeItemDTO struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ProductResponse product with its bill-of-materials.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Currency    string          `json:"currency"`
	Recipe      []RecipeItemDTO `json:"recipe"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewProductResponse maps a product and its recipe to the public view.
func NewProductResponse(p *entity.Product, recipe []entity.RecipeItem) ProductResponse {
	items := make([]RecipeItemDTO, 0, len(recipe))
	for _, ri := range recipe {
		items = append(items, RecipeItemDTO{
			ID:         ri.ID,
			MaterialID: ri.MaterialID,
			Quantity:   ri.Quantity,
		})
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		Currency:    p.Currency,
		Recipe:      items,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
