package usecase_test

import (
	"context"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	appusecase "github.com/atolyeos/atolye-api/internal/application/usecase"
	"github.com/atolyeos/atolye-api/internal/domain"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// memMaterialRepo is an in-memory ledger with the same history ordering
// contracts as the real repository.
type memMaterialRepo struct {
	materials map[string]*entity.Material
	history   map[string][]entity.MaterialPriceHistory
}

func newMemMaterialRepo() *memMaterialRepo {
	return &memMaterialRepo{
		materials: map[string]*entity.Material{},
		history:   map[string][]entity.MaterialPriceHistory{},
	}
}

func (r *memMaterialRepo) Create(_ context.Context, m *entity.Material) error {
	r.materials[m.ID] = m
	return nil
}

func (r *memMaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMaterialRepo) List(_ context.Context) ([]*entity.Material, error) { return nil, nil }

func (r *memMaterialRepo) ListByIDs(_ context.Context, _ []string) ([]*entity.Material, error) {
	return nil, nil
}

func (r *memMaterialRepo) Update(_ context.Context, m *entity.Material) error {
	if _, ok := r.materials[m.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *m
	r.materials[m.ID] = &cp
	return nil
}

func (r *memMaterialRepo) Delete(_ context.Context, id string) error {
	delete(r.materials, id)
	return nil
}

func (r *memMaterialRepo) AdjustStock(_ context.Context, id string, delta decimal.Decimal) error {
	m, ok := r.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentStock = m.CurrentStock.Add(delta)
	return nil
}

func (r *memMaterialRepo) AppendPriceHistory(_ context.Context, h *entity.MaterialPriceHistory) error {
	r.history[h.MaterialID] = append(r.history[h.MaterialID], *h)
	return nil
}

func (r *memMaterialRepo) ListPriceHistory(_ context.Context, materialID string) ([]entity.MaterialPriceHistory, error) {
	out := append([]entity.MaterialPriceHistory(nil), r.history[materialID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangedAt.Before(out[j].ChangedAt) })
	return out, nil
}

func (r *memMaterialRepo) ListRecentPriceHistory(_ context.Context, materialID string, limit int) ([]entity.MaterialPriceHistory, error) {
	out := append([]entity.MaterialPriceHistory(nil), r.history[materialID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].ChangedAt.After(out[j].ChangedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func createMaterial(t *testing.T, uc *appusecase.MaterialUseCase, price string) *entity.Material {
	t.Helper()
	m, err := uc.Create(context.Background(), dto.CreateMaterialRequest{
		Name:          "DKP Sac 1.5mm",
		Unit:          "m2",
		CurrentStock:  dec("100"),
		MinStockLevel: dec("20"),
		UnitPrice:     dec(price),
	})
	require.NoError(t, err)
	return m
}

func TestMaterialCreate_DefaultsCurrencyToTRY(t *testing.T) {
	uc := appusecase.NewMaterialUseCase(newMemMaterialRepo())
	m := createMaterial(t, uc, "185.50")
	assert.Equal(t, "TRY", m.Currency)
}

func TestMaterialCreate_RequiresNameAndUnit(t *testing.T) {
	uc := appusecase.NewMaterialUseCase(newMemMaterialRepo())
	_, err := uc.Create(context.Background(), dto.CreateMaterialRequest{Name: "", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Three consecutive price raises must leave three history rows, each storing
// the price that was current before its raise.
func TestMaterialUpdate_PriceChangeAppendsOldPrice(t *testing.T) {
	repo := newMemMaterialRepo()
	uc := appusecase.NewMaterialUseCase(repo)
	m := createMaterial(t, uc, "100")

	ctx := context.Background()
	for _, newPrice := range []string{"110", "125", "140"} {
		p := dec(newPrice)
		_, err := uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{UnitPrice: &p})
		require.NoError(t, err)
	}

	history, err := uc.ListPriceHistory(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// ascending order: the stored prices are the pre-update ones
	assert.True(t, dec("100").Equal(history[0].Price), "first row stores the original price")
	assert.True(t, dec("110").Equal(history[1].Price))
	assert.True(t, dec("125").Equal(history[2].Price))

	got, err := uc.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, dec("140").Equal(got.UnitPrice), "current price is the latest one")
}

func TestMaterialUpdate_SamePriceLeavesHistoryUntouched(t *testing.T) {
	repo := newMemMaterialRepo()
	uc := appusecase.NewMaterialUseCase(repo)
	m := createMaterial(t, uc, "100")

	ctx := context.Background()
	same := dec("100.00") // equal in value, different representation
	_, err := uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{UnitPrice: &same})
	require.NoError(t, err)

	history, err := uc.ListPriceHistory(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, history, "no-op price update must not append history")
}

func TestMaterialUpdate_NonPriceFieldsOnly(t *testing.T) {
	repo := newMemMaterialRepo()
	uc := appusecase.NewMaterialUseCase(repo)
	m := createMaterial(t, uc, "100")

	name := "DKP Sac 2.0mm"
	updated, err := uc.Update(context.Background(), m.ID, dto.UpdateMaterialRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "DKP Sac 2.0mm", updated.Name)
	history, _ := uc.ListPriceHistory(context.Background(), m.ID)
	assert.Empty(t, history)
}

func TestMaterialAdjustStock_DeltaApplied(t *testing.T) {
	repo := newMemMaterialRepo()
	uc := appusecase.NewMaterialUseCase(repo)
	m := createMaterial(t, uc, "100")

	ctx := context.Background()
	got, err := uc.AdjustStock(ctx, m.ID, dto.AdjustStockRequest{Quantity: dec("-30")})
	require.NoError(t, err)
	assert.True(t, dec("70").Equal(got.CurrentStock), "want 70, got %s", got.CurrentStock)

	// deduction below zero is allowed
	got, err = uc.AdjustStock(ctx, m.ID, dto.AdjustStockRequest{Quantity: dec("-100")})
	require.NoError(t, err)
	assert.True(t, dec("-30").Equal(got.CurrentStock))
	assert.Equal(t, entity.StockNegative, got.StockState())
}

func TestMaterialAdjustStock_UnknownMaterial(t *testing.T) {
	uc := appusecase.NewMaterialUseCase(newMemMaterialRepo())
	_, err := uc.AdjustStock(context.Background(), "nope", dto.AdjustStockRequest{Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
