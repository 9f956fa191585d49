package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable door model. BasePrice is the list price frozen onto
// order items at order time.
type Product struct {
	ID          string
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipeItem is one bill-of-materials line: Quantity units of the material
// are consumed per single unit of the product. Pure reference data.
type RecipeItem struct {
	ID         string
	ProductID  string
	MaterialID string
	Quantity   decimal.Decimal
}
