package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// CreateMaterialRequest body for POST /api/materials.
type CreateMaterialRequest struct {
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Currency      string          `json:"currency"`
}

// UpdateMaterialRequest body for PUT /api/materials/:id. Pointer fields are
// optional; a changed UnitPrice appends a price-history row storing the old
// price.
type UpdateMaterialRequest struct {
	Name          *string          `json:"name,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	CurrentStock  *decimal.Decimal `json:"current_stock,omitempty"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	Currency      *string          `json:"currency,omitempty"`
}

// AdjustStockRequest body for POST /api/materials/:id/stock. Quantity is a
// delta: negative deducts, positive replenishes.
type AdjustStockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// MaterialResponse material with its derived stock condition.
type MaterialResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Currency      string          `json:"currency"`
	StockState    string          `json:"stock_state"` // SUFFICIENT | BELOW_MINIMUM | NEGATIVE
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PriceHistoryDTO one immutable price-change record (stores the price that
// was current before the change).
type PriceHistoryDTO struct {
	ID        string          `json:"id"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	ChangedAt time.Time       `json:"changed_at"`
}

// NewMaterialResponse maps a material to its public view.
func NewMaterialResponse(m *entity.Material) MaterialResponse {
	return MaterialResponse{
		ID:            m.ID,
		Name:          m.Name,
		Unit:          m.Unit,
		CurrentStock:  m.CurrentStock,
		MinStockLevel: m.MinStockLevel,
		UnitPrice:     m.UnitPrice,
		Currency:      m.Currency,
		StockState:    string(m.StockState()),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// NewPriceHistoryDTOs maps price-history records preserving their order.
func NewPriceHistoryDTOs(history []entity.MaterialPriceHistory) []PriceHistoryDTO {
	out := make([]PriceHistoryDTO, 0, len(history))
	for _, h := range history {
		out = append(out, PriceHistoryDTO{
			ID:        h.ID,
			Price:     h.Price,
			Currency:  h.Currency,
			ChangedAt: h.ChangedAt,
		})
	}
	return out
}
