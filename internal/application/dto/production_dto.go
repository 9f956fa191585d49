package dto

import (
	"time"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// StartProductionRequest body for POST /api/production/start.
type StartProductionRequest struct {
	OrderID string `json:"order_id"`
}

// UpdateStageRequest body for PATCH /api/production/:id/stage.
type UpdateStageRequest struct {
	Stage string `json:"stage"`
}

// HistoryEntryDTO one stage-entry record of a tracking response.
type HistoryEntryDTO struct {
	ID          string     `json:"id"`
	Stage       string     `json:"stage"`
	EnteredAt   time.Time  `json:"entered_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// TrackingResponse production tracking with its full stage history.
type TrackingResponse struct {
	ID           string            `json:"id"`
	OrderID      string            `json:"order_id"`
	CurrentStage string            `json:"current_stage"`
	StartedAt    time.Time         `json:"started_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
	History      []HistoryEntryDTO `json:"history"`
}

// NewTrackingResponse maps a tracking to its public view.
func NewTrackingResponse(t *entity.ProductionTracking) TrackingResponse {
	history := make([]HistoryEntryDTO, 0, len(t.History))
	for _, h := range t.History {
		history = append(history, HistoryEntryDTO{
			ID:          h.ID,
			Stage:       string(h.Stage),
			EnteredAt:   h.EnteredAt,
			CompletedAt: h.CompletedAt,
			Notes:       h.Notes,
		})
	}
	return TrackingResponse{
		ID:           t.ID,
		OrderID:      t.OrderID,
		CurrentStage: string(t.CurrentStage),
		StartedAt:    t.StartedAt,
		CompletedAt:  t.CompletedAt,
		History:      history,
	}
}
