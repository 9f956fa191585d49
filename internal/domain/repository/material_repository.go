package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// MaterialRepository is the stock ledger port.
//
// AdjustStock adds delta (negative = deduction) to current_stock in a single
// statement. There is deliberately no floor check: stock may go negative and
// the analytics layer treats that as signal.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	List(ctx context.Context) ([]*entity.Material, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Material, error)
	Update(ctx context.Context, m *entity.Material) error
	Delete(ctx context.Context, id string) error

	AdjustStock(ctx context.Context, id string, delta decimal.Decimal) error

	// AppendPriceHistory records an immutable price-change row. Callers only
	// invoke it when the new price differs from the old one, storing the
	// previous price with its effective timestamp.
	AppendPriceHistory(ctx context.Context, h *entity.MaterialPriceHistory) error
	// ListPriceHistory returns the full history ordered ascending by ChangedAt.
	ListPriceHistory(ctx context.Context, materialID string) ([]entity.MaterialPriceHistory, error)
	// ListRecentPriceHistory returns the most recent entries, ordered
	// descending by ChangedAt (first match wins for effective-at lookups).
	ListRecentPriceHistory(ctx context.Context, materialID string, limit int) ([]entity.MaterialPriceHistory, error)
}
