package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo ProductionRepository over PostgreSQL (usable with pool or tx).
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository builds the tracker adapter. Pass pool or tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

const trackingColumns = `id, order_id, current_stage, started_at, completed_at, created_at, updated_at`

// Create inserts the tracking together with its initial history entries.
func (r *ProductionRepo) Create(ctx context.Context, t *entity.ProductionTracking) error {
	query := `
		INSERT INTO production_trackings (id, order_id, current_stage, started_at, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.OrderID, string(t.CurrentStage), t.StartedAt, t.CompletedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create tracking: %w", err)
	}
	for i := range t.History {
		if err := r.AppendHistory(ctx, &t.History[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns a tracking with its history, or nil when absent.
func (r *ProductionRepo) GetByID(ctx context.Context, id string) (*entity.ProductionTracking, error) {
	query := `SELECT ` + trackingColumns + ` FROM production_trackings WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByOrderID returns the order's tracking with history, or nil when absent.
func (r *ProductionRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.ProductionTracking, error) {
	query := `SELECT ` + trackingColumns + ` FROM production_trackings WHERE order_id = $1`
	return r.getOne(ctx, query, orderID)
}

// ListActive returns trackings whose order is still on the shop floor.
func (r *ProductionRepo) ListActive(ctx context.Context) ([]*entity.ProductionTracking, error) {
	query := `
		SELECT t.id, t.order_id, t.current_stage, t.started_at, t.completed_at, t.created_at, t.updated_at
		FROM production_trackings t
		JOIN orders o ON o.id = t.order_id
		WHERE o.status IN ('IN_PRODUCTION', 'READY_FOR_SHIPMENT')
		ORDER BY t.started_at DESC`
	return r.queryTrackings(ctx, query)
}

// ListCompleted returns the most recent finished trackings, capped at limit.
func (r *ProductionRepo) ListCompleted(ctx context.Context, limit int) ([]*entity.ProductionTracking, error) {
	query := `
		SELECT ` + trackingColumns + `
		FROM production_trackings
		WHERE completed_at IS NOT NULL
		ORDER BY started_at DESC
		LIMIT $1`
	return r.queryTrackings(ctx, query, limit)
}

// ListOpen returns all in-progress trackings.
func (r *ProductionRepo) ListOpen(ctx context.Context) ([]*entity.ProductionTracking, error) {
	query := `
		SELECT ` + trackingColumns + `
		FROM production_trackings
		WHERE completed_at IS NULL
		ORDER BY started_at`
	return r.queryTrackings(ctx, query)
}

// UpdateStage sets the tracking's current stage.
func (r *ProductionRepo) UpdateStage(ctx context.Context, trackingID string, stage entity.Stage) error {
	query := `UPDATE production_trackings SET current_stage = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, trackingID, string(stage))
	if err != nil {
		return fmt.Errorf("update stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stage: tracking %s not found", trackingID)
	}
	return nil
}

// CloseOpenHistory stamps CompletedAt on the tracking's open history rows.
func (r *ProductionRepo) CloseOpenHistory(ctx context.Context, trackingID string, at time.Time) error {
	query := `
		UPDATE production_history SET completed_at = $2
		WHERE tracking_id = $1 AND completed_at IS NULL`
	if _, err := r.q.Exec(ctx, query, trackingID, at); err != nil {
		return fmt.Errorf("close open history: %w", err)
	}
	return nil
}

// AppendHistory inserts one stage-entry record.
func (r *ProductionRepo) AppendHistory(ctx context.Context, h *entity.ProductionHistory) error {
	query := `
		INSERT INTO production_history (id, tracking_id, stage, entered_at, completed_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, h.ID, h.TrackingID, string(h.Stage), h.EnteredAt, h.CompletedAt, h.Notes)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (r *ProductionRepo) getOne(ctx context.Context, query string, arg any) (*entity.ProductionTracking, error) {
	var t entity.ProductionTracking
	var stage string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&t.ID, &t.OrderID, &stage, &t.StartedAt, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tracking: %w", err)
	}
	t.CurrentStage = entity.Stage(stage)
	if err := r.loadHistory(ctx, []*entity.ProductionTracking{&t}); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ProductionRepo) queryTrackings(ctx context.Context, query string, args ...any) ([]*entity.ProductionTracking, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trackings: %w", err)
	}
	defer rows.Close()

	var trackings []*entity.ProductionTracking
	for rows.Next() {
		var t entity.ProductionTracking
		var stage string
		err := rows.Scan(&t.ID, &t.OrderID, &stage, &t.StartedAt, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan tracking: %w", err)
		}
		t.CurrentStage = entity.Stage(stage)
		trackings = append(trackings, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadHistory(ctx, trackings); err != nil {
		return nil, err
	}
	return trackings, nil
}

// loadHistory expands stage history onto the given trackings, oldest first.
func (r *ProductionRepo) loadHistory(ctx context.Context, trackings []*entity.ProductionTracking) error {
	if len(trackings) == 0 {
		return nil
	}
	byID := make(map[string]*entity.ProductionTracking, len(trackings))
	ids := make([]string, 0, len(trackings))
	for _, t := range trackings {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	query := `
		SELECT id, tracking_id, stage, entered_at, completed_at, notes
		FROM production_history
		WHERE tracking_id = ANY($1)
		ORDER BY entered_at, id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h entity.ProductionHistory
		var stage string
		if err := rows.Scan(&h.ID, &h.TrackingID, &stage, &h.EnteredAt, &h.CompletedAt, &h.Notes); err != nil {
			return fmt.Errorf("scan history: %w", err)
		}
		h.Stage = entity.Stage(stage)
		if t, ok := byID[h.TrackingID]; ok {
			t.History = append(t.History, h)
		}
	}
	return rows.Err()
}
