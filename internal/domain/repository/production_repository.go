package repository

import (
	"context"
	"time"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// ProductionRepository is the production tracker port. Create persists the
// tracking together with its initial history entry. The list methods used by
// analytics always expand history.
type ProductionRepository interface {
	Create(ctx context.Context, t *entity.ProductionTracking) error
	GetByID(ctx context.Context, id string) (*entity.ProductionTracking, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.ProductionTracking, error)
	// ListActive returns trackings whose order is not yet shipped or completed.
	ListActive(ctx context.Context) ([]*entity.ProductionTracking, error)
	// ListCompleted returns the most recent completed trackings (tracking-level
	// CompletedAt set), ordered by StartedAt descending, capped at limit.
	ListCompleted(ctx context.Context, limit int) ([]*entity.ProductionTracking, error)
	// ListOpen returns all in-progress trackings (tracking-level CompletedAt null).
	ListOpen(ctx context.Context) ([]*entity.ProductionTracking, error)

	UpdateStage(ctx context.Context, trackingID string, stage entity.Stage) error
	// CloseOpenHistory sets CompletedAt on the tracking's currently open
	// history entry, if any.
	CloseOpenHistory(ctx context.Context, trackingID string, at time.Time) error
	AppendHistory(ctx context.Context, h *entity.ProductionHistory) error
}
