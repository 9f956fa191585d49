package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/atolyeos/atolye-api/internal/domain"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo MaterialRepository over PostgreSQL (usable with pool or tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository builds the material adapter. Pass pool or tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, name, unit, current_stock, min_stock_level, unit_price, currency, created_at, updated_at`

// Create inserts a material.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (id, name, unit, current_stock, min_stock_level, unit_price, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Unit, m.CurrentStock, m.MinStockLevel, m.UnitPrice, m.Currency, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// GetByID returns a material, or nil when absent.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// List returns all materials ordered by name.
func (r *MaterialRepo) List(ctx context.Context) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	return collectMaterials(rows)
}

// ListByIDs returns the materials with the given IDs, ordered by name.
func (r *MaterialRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Material, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = ANY($1) ORDER BY name`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list materials by ids: %w", err)
	}
	defer rows.Close()
	return collectMaterials(rows)
}

// Update rewrites all mutable columns.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials
		SET name = $2, unit = $3, current_stock = $4, min_stock_level = $5,
		    unit_price = $6, currency = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Unit, m.CurrentStock, m.MinStockLevel, m.UnitPrice, m.Currency, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// Delete removes a material and its price history.
func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}

// AdjustStock adds delta to current_stock in a single statement. No floor:
// concurrent deductions serialize on the row lock and stock may go negative.
func (r *MaterialRepo) AdjustStock(ctx context.Context, id string, delta decimal.Decimal) error {
	query := `UPDATE materials SET current_stock = current_stock + $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: material %s", domain.ErrNotFound, id)
	}
	return nil
}

// AppendPriceHistory inserts an immutable price-change row.
func (r *MaterialRepo) AppendPriceHistory(ctx context.Context, h *entity.MaterialPriceHistory) error {
	query := `
		INSERT INTO material_price_history (id, material_id, price, currency, changed_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, h.ID, h.MaterialID, h.Price, h.Currency, h.ChangedAt)
	if err != nil {
		return fmt.Errorf("append price history: %w", err)
	}
	return nil
}

// ListPriceHistory returns the full history, oldest first.
func (r *MaterialRepo) ListPriceHistory(ctx context.Context, materialID string) ([]entity.MaterialPriceHistory, error) {
	query := `
		SELECT id, material_id, price, currency, changed_at
		FROM material_price_history
		WHERE material_id = $1
		ORDER BY changed_at ASC`
	rows, err := r.q.Query(ctx, query, materialID)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	return collectPriceHistory(rows)
}

// ListRecentPriceHistory returns the newest entries first, capped at limit.
func (r *MaterialRepo) ListRecentPriceHistory(ctx context.Context, materialID string, limit int) ([]entity.MaterialPriceHistory, error) {
	query := `
		SELECT id, material_id, price, currency, changed_at
		FROM material_price_history
		WHERE material_id = $1
		ORDER BY changed_at DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, materialID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent price history: %w", err)
	}
	defer rows.Close()
	return collectPriceHistory(rows)
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(
		&m.ID, &m.Name, &m.Unit, &m.CurrentStock, &m.MinStockLevel, &m.UnitPrice, &m.Currency,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMaterials(rows pgx.Rows) ([]*entity.Material, error) {
	var out []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func collectPriceHistory(rows pgx.Rows) ([]entity.MaterialPriceHistory, error) {
	var out []entity.MaterialPriceHistory
	for rows.Next() {
		var h entity.MaterialPriceHistory
		if err := rows.Scan(&h.ID, &h.MaterialID, &h.Price, &h.Currency, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
