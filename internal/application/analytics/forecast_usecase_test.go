package analytics

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Order / product / material stubs
// ──────────────────────────────────────────────────────────────────────────────

type stubOrderRepo struct{ byStatus map[string][]*entity.Order }

func (s *stubOrderRepo) Create(context.Context, *entity.Order) error { return nil }
func (s *stubOrderRepo) GetByID(context.Context, string) (*entity.Order, error) {
	return nil, nil
}
func (s *stubOrderRepo) List(context.Context) ([]*entity.Order, error) { return nil, nil }
func (s *stubOrderRepo) ListByStatus(_ context.Context, status string) ([]*entity.Order, error) {
	return s.byStatus[status], nil
}
func (s *stubOrderRepo) SetStatus(context.Context, string, string) error { return nil }
func (s *stubOrderRepo) Delete(context.Context, string) error            { return nil }

type stubProductRepo struct {
	products map[string]*entity.Product
	recipes  map[string][]entity.RecipeItem
}

func (s *stubProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (s *stubProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return s.products[id], nil
}
func (s *stubProductRepo) List(context.Context) ([]*entity.Product, error) { return nil, nil }
func (s *stubProductRepo) Update(context.Context, *entity.Product) error   { return nil }
func (s *stubProductRepo) Delete(context.Context, string) error            { return nil }
func (s *stubProductRepo) GetRecipe(_ context.Context, productID string) ([]entity.RecipeItem, error) {
	return s.recipes[productID], nil
}
func (s *stubProductRepo) ReplaceRecipe(context.Context, string, []entity.RecipeItem) error {
	return nil
}

type stubMaterialRepo struct {
	materials map[string]*entity.Material
	// history per material, ordered descending by ChangedAt like the real
	// repository returns it
	history map[string][]entity.MaterialPriceHistory
}

func (s *stubMaterialRepo) Create(context.Context, *entity.Material) error { return nil }
func (s *stubMaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	return s.materials[id], nil
}
func (s *stubMaterialRepo) List(context.Context) ([]*entity.Material, error) { return nil, nil }
func (s *stubMaterialRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, id := range ids {
		if m, ok := s.materials[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}
func (s *stubMaterialRepo) Update(context.Context, *entity.Material) error { return nil }
func (s *stubMaterialRepo) Delete(context.Context, string) error           { return nil }
func (s *stubMaterialRepo) AdjustStock(context.Context, string, decimal.Decimal) error {
	return nil
}
func (s *stubMaterialRepo) AppendPriceHistory(context.Context, *entity.MaterialPriceHistory) error {
	return nil
}
func (s *stubMaterialRepo) ListPriceHistory(context.Context, string) ([]entity.MaterialPriceHistory, error) {
	return nil, nil
}
func (s *stubMaterialRepo) ListRecentPriceHistory(_ context.Context, materialID string, limit int) ([]entity.MaterialPriceHistory, error) {
	out := s.history[materialID]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func di(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func pendingOrder(id, productID string, qty int) *entity.Order {
	return &entity.Order{
		ID:     id,
		Status: entity.OrderStatusPending,
		Items:  []entity.OrderItem{{ProductID: productID, Quantity: qty}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GetStockForecast
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStockForecast_NoPendingOrders(t *testing.T) {
	uc := NewForecastUseCase(&stubOrderRepo{}, &stubProductRepo{}, &stubMaterialRepo{})

	got, err := uc.GetStockForecast(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.PendingOrdersCount)
	assert.NotNil(t, got.Forecast, "forecast must be an empty slice, not nil")
	assert.Empty(t, got.Forecast)
}

func TestGetStockForecast_PendingWithoutRecipes(t *testing.T) {
	orders := &stubOrderRepo{byStatus: map[string][]*entity.Order{
		entity.OrderStatusPending: {pendingOrder("o1", "door", 3)},
	}}
	uc := NewForecastUseCase(orders, &stubProductRepo{recipes: map[string][]entity.RecipeItem{}}, &stubMaterialRepo{})

	got, err := uc.GetStockForecast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got.PendingOrdersCount)
	assert.Empty(t, got.Forecast)
}

func TestGetStockForecast_AggregatesAcrossOrdersAndFilters(t *testing.T) {
	// two pending orders for the same door: 2 + 3 doors, 10 sheet per door
	orders := &stubOrderRepo{byStatus: map[string][]*entity.Order{
		entity.OrderStatusPending: {
			pendingOrder("o1", "door", 2),
			pendingOrder("o2", "door", 3),
		},
		// an IN_PRODUCTION order exists but must not contribute demand
		entity.OrderStatusInProduction: {pendingOrder("o3", "door", 100)},
	}}
	products := &stubProductRepo{recipes: map[string][]entity.RecipeItem{
		"door": {
			{MaterialID: "sheet", Quantity: di(10)}, // demand 50
			{MaterialID: "lock", Quantity: di(1)},   // demand 5
			{MaterialID: "paint", Quantity: di(2)},  // demand 10
		},
	}}
	materials := &stubMaterialRepo{materials: map[string]*entity.Material{
		// 60 - 50 = 10, min 5  -> OK, filtered out
		"sheet": {ID: "sheet", Name: "DKP Sac", CurrentStock: di(60), MinStockLevel: di(5)},
		// 8 - 5 = 3, min 10    -> CRITICAL_SHORTAGE
		"lock": {ID: "lock", Name: "Kilit", CurrentStock: di(8), MinStockLevel: di(10)},
		// 4 - 10 = -6, min -10 -> projected not below min, but negative -> OUT_OF_STOCK
		"paint": {ID: "paint", Name: "Boya", CurrentStock: di(4), MinStockLevel: di(-10)},
	}}

	got, err := NewForecastUseCase(orders, products, materials).GetStockForecast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got.PendingOrdersCount, "only PENDING orders counted")
	require.Len(t, got.Forecast, 2, "OK rows are filtered out")

	byID := map[string]int{}
	for i, f := range got.Forecast {
		byID[f.MaterialID] = i
	}

	lock := got.Forecast[byID["lock"]]
	assert.Equal(t, ForecastStatusCritical, lock.Status)
	assert.True(t, di(5).Equal(lock.ReservedForPending))
	assert.True(t, di(3).Equal(lock.ProjectedStock))
	assert.Equal(t, string(entity.StockBelowMinimum), lock.ProjectedState)

	paint := got.Forecast[byID["paint"]]
	assert.Equal(t, ForecastStatusOutOfStock, paint.Status)
	assert.True(t, di(-6).Equal(paint.ProjectedStock))
	assert.Equal(t, string(entity.StockNegative), paint.ProjectedState)
}

func TestGetStockForecast_CriticalWinsOverOutOfStock(t *testing.T) {
	// projected is negative AND below minimum: CRITICAL_SHORTAGE wins
	orders := &stubOrderRepo{byStatus: map[string][]*entity.Order{
		entity.OrderStatusPending: {pendingOrder("o1", "door", 1)},
	}}
	products := &stubProductRepo{recipes: map[string][]entity.RecipeItem{
		"door": {{MaterialID: "sheet", Quantity: di(20)}},
	}}
	materials := &stubMaterialRepo{materials: map[string]*entity.Material{
		"sheet": {ID: "sheet", Name: "DKP Sac", CurrentStock: di(10), MinStockLevel: di(5)},
	}}

	got, err := NewForecastUseCase(orders, products, materials).GetStockForecast(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Forecast, 1)
	assert.Equal(t, ForecastStatusCritical, got.Forecast[0].Status)
	assert.Equal(t, string(entity.StockNegative), got.Forecast[0].ProjectedState)
}
