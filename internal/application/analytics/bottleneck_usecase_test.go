package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Production repository stub
// ──────────────────────────────────────────────────────────────────────────────

type stubProductionRepo struct {
	completed []*entity.ProductionTracking
	open      []*entity.ProductionTracking
}

func (s *stubProductionRepo) Create(context.Context, *entity.ProductionTracking) error { return nil }
func (s *stubProductionRepo) GetByID(context.Context, string) (*entity.ProductionTracking, error) {
	return nil, nil
}
func (s *stubProductionRepo) GetByOrderID(context.Context, string) (*entity.ProductionTracking, error) {
	return nil, nil
}
func (s *stubProductionRepo) ListActive(context.Context) ([]*entity.ProductionTracking, error) {
	return nil, nil
}
func (s *stubProductionRepo) ListCompleted(_ context.Context, limit int) ([]*entity.ProductionTracking, error) {
	if len(s.completed) > limit {
		return s.completed[:limit], nil
	}
	return s.completed, nil
}
func (s *stubProductionRepo) ListOpen(context.Context) ([]*entity.ProductionTracking, error) {
	return s.open, nil
}
func (s *stubProductionRepo) UpdateStage(context.Context, string, entity.Stage) error { return nil }
func (s *stubProductionRepo) CloseOpenHistory(context.Context, string, time.Time) error {
	return nil
}
func (s *stubProductionRepo) AppendHistory(context.Context, *entity.ProductionHistory) error {
	return nil
}

var testFallbacks = map[entity.Stage]float64{
	entity.StageCuttingBending:    4,
	entity.StageWeldingGrinding:   6,
	entity.StagePaintingWashing:   12,
	entity.StageAssemblyPackaging: 4,
}

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// completedRun builds a tracking where cuttingHours were spent in the first
// stage; the other stages get one hour each.
func completedRun(cuttingHours float64) *entity.ProductionTracking {
	start := fixedNow.Add(-100 * time.Hour)
	tracking := &entity.ProductionTracking{CurrentStage: entity.StageReadyForShipment, StartedAt: start}
	cursor := start
	for _, stage := range entity.BenchmarkStages() {
		hours := 1.0
		if stage == entity.StageCuttingBending {
			hours = cuttingHours
		}
		done := cursor.Add(time.Duration(hours * float64(time.Hour)))
		tracking.History = append(tracking.History, entity.ProductionHistory{
			Stage: stage, EnteredAt: cursor, CompletedAt: &done,
		})
		cursor = done
	}
	tracking.CompletedAt = &cursor
	return tracking
}

// openRun builds an in-progress tracking sitting in stage for elapsedHours.
func openRun(orderID string, stage entity.Stage, elapsedHours float64) *entity.ProductionTracking {
	entered := fixedNow.Add(-time.Duration(elapsedHours * float64(time.Hour)))
	return &entity.ProductionTracking{
		OrderID:      orderID,
		CurrentStage: stage,
		History: []entity.ProductionHistory{
			{Stage: stage, EnteredAt: entered},
		},
	}
}

func newBottleneckFixture(repo *stubProductionRepo) *BottleneckUseCase {
	uc := NewBottleneckUseCase(repo, testFallbacks, 5)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Benchmarks and cold start
// ──────────────────────────────────────────────────────────────────────────────

func TestGetBottlenecks_ColdStartUsesFallback(t *testing.T) {
	uc := newBottleneckFixture(&stubProductionRepo{})

	report, err := uc.GetBottlenecks(context.Background())
	require.NoError(t, err)
	require.Len(t, report.StageBenchmarks, 4)

	for _, b := range report.StageBenchmarks {
		assert.True(t, b.IsFallback, "%s must use the fallback with zero samples", b.Stage)
		assert.Equal(t, testFallbacks[entity.Stage(b.Stage)], b.AverageDurationHours)
		assert.Zero(t, b.MaxDurationHours)
		assert.Zero(t, b.MinDurationHours)
		assert.Zero(t, b.SampleSize)
	}
	assert.Empty(t, report.ActiveDelays)
}

func TestGetBottlenecks_SampleThresholdBoundary(t *testing.T) {
	// 4 samples: one below the minimum of 5, still fallback
	repo := &stubProductionRepo{}
	for i := 0; i < 4; i++ {
		repo.completed = append(repo.completed, completedRun(8))
	}
	report, err := newBottleneckFixture(repo).GetBottlenecks(context.Background())
	require.NoError(t, err)
	cutting := report.StageBenchmarks[0]
	assert.True(t, cutting.IsFallback)
	assert.Equal(t, 4, cutting.SampleSize)
	assert.Equal(t, 4.0, cutting.AverageDurationHours, "fallback ignores the real samples")

	// 5th sample crosses the threshold: real average takes over
	repo.completed = append(repo.completed, completedRun(8))
	report, err = newBottleneckFixture(repo).GetBottlenecks(context.Background())
	require.NoError(t, err)
	cutting = report.StageBenchmarks[0]
	assert.False(t, cutting.IsFallback)
	assert.Equal(t, 5, cutting.SampleSize)
	assert.Equal(t, 8.0, cutting.AverageDurationHours)
	assert.Equal(t, 8.0, cutting.MaxDurationHours)
	assert.Equal(t, 8.0, cutting.MinDurationHours)
}

func TestGetBottlenecks_AverageMaxMinRounded(t *testing.T) {
	repo := &stubProductionRepo{}
	for _, h := range []float64{3, 4, 5, 6, 7.333} {
		repo.completed = append(repo.completed, completedRun(h))
	}
	report, err := newBottleneckFixture(repo).GetBottlenecks(context.Background())
	require.NoError(t, err)

	cutting := report.StageBenchmarks[0]
	assert.InDelta(t, 5.07, cutting.AverageDurationHours, 0.001) // (3+4+5+6+7.333)/5 rounded
	assert.InDelta(t, 7.33, cutting.MaxDurationHours, 0.001)
	assert.Equal(t, 3.0, cutting.MinDurationHours)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delay alerts
// ──────────────────────────────────────────────────────────────────────────────

func TestGetBottlenecks_DelayStrictlyAboveThreshold(t *testing.T) {
	// fallback average for CUTTING_BENDING is 4h, threshold = 4 * 1.2 = 4.8h
	repo := &stubProductionRepo{
		open: []*entity.ProductionTracking{
			openRun("on-time", entity.StageCuttingBending, 4.8),  // exactly at threshold
			openRun("delayed", entity.StageCuttingBending, 4.81), // strictly above
		},
	}
	report, err := newBottleneckFixture(repo).GetBottlenecks(context.Background())
	require.NoError(t, err)

	require.Len(t, report.ActiveDelays, 1, "exactly 1.2x average must NOT be flagged")
	alert := report.ActiveDelays[0]
	assert.Equal(t, "delayed", alert.OrderID)
	assert.Equal(t, string(entity.StageCuttingBending), alert.Stage)
	assert.Equal(t, 4.0, alert.AverageExpected)
	assert.InDelta(t, 4.81, alert.ElapsedHours, 0.001)
	assert.Equal(t, "HIGH", alert.DelayRisk)
}

func TestGetBottlenecks_TerminalStageNeverFlagged(t *testing.T) {
	repo := &stubProductionRepo{
		open: []*entity.ProductionTracking{
			openRun("waiting-dock", entity.StageReadyForShipment, 500),
		},
	}
	report, err := newBottleneckFixture(repo).GetBottlenecks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.ActiveDelays, "terminal stage has no benchmark and no alerts")
}

func TestGetBottlenecks_NoOpenEntrySkipped(t *testing.T) {
	closed := fixedNow.Add(-time.Hour)
	repo := &stubProductionRepo{
		open: []*entity.ProductionTracking{{
			OrderID:      "odd-history",
			CurrentStage: entity.StageWeldingGrinding,
			History: []entity.ProductionHistory{
				{Stage: entity.StageWeldingGrinding, EnteredAt: fixedNow.Add(-48 * time.Hour), CompletedAt: &closed},
			},
		}},
	}
	report, err := newBottleneckFixture(repo).GetBottlenecks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.ActiveDelays)
}
