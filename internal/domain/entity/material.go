package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockState classifies a material's stock level. Stock is allowed to go
// negative (over-deduction is signal, not a hard error), so callers get the
// condition as an explicit tagged state instead of re-deriving it from signs.
type StockState string

const (
	StockSufficient   StockState = "SUFFICIENT"
	StockBelowMinimum StockState = "BELOW_MINIMUM"
	StockNegative     StockState = "NEGATIVE"
)

// Material is a raw material tracked by the stock ledger.
// CurrentStock may go negative; deduction never floors it.
type Material struct {
	ID            string
	Name          string
	Unit          string // m2, kg, adet, takım...
	CurrentStock  decimal.Decimal
	MinStockLevel decimal.Decimal
	UnitPrice     decimal.Decimal
	Currency      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockState returns the tri-state condition of the current stock.
func (m *Material) StockState() StockState {
	return StockStateOf(m.CurrentStock, m.MinStockLevel)
}

// StockStateOf classifies an arbitrary stock quantity against a minimum level.
// Negative wins over below-minimum.
func StockStateOf(stock, minLevel decimal.Decimal) StockState {
	switch {
	case stock.IsNegative():
		return StockNegative
	case stock.LessThan(minLevel):
		return StockBelowMinimum
	default:
		return StockSufficient
	}
}

// MaterialPriceHistory is one append-only price-change record. It stores the
// price that was current immediately *before* the update that produced it,
// and is only ever written when the new price differs from the old one.
type MaterialPriceHistory struct {
	ID         string
	MaterialID string
	Price      decimal.Decimal
	Currency   string
	ChangedAt  time.Time
}

// PriceEffectiveAt resolves the unit price in effect at ts. history must be
// ordered by ChangedAt descending; the first entry with ChangedAt <= ts wins
// (nearest prior price, no interpolation). Falls back to current when no
// entry qualifies.
func PriceEffectiveAt(history []MaterialPriceHistory, ts time.Time, current decimal.Decimal) decimal.Decimal {
	for _, h := range history {
		if !h.ChangedAt.After(ts) {
			return h.Price
		}
	}
	return current
}
