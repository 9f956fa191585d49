package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// The pipeline order is load-bearing: transition legality is decided by
// ordinal comparison, so these tests pin the exact vocabulary and ordering.

func TestStages_FixedOrder(t *testing.T) {
	stages := entity.Stages()
	require.Len(t, stages, 5)

	expected := []entity.Stage{
		entity.StageCuttingBending,
		entity.StageWeldingGrinding,
		entity.StagePaintingWashing,
		entity.StageAssemblyPackaging,
		entity.StageReadyForShipment,
	}
	assert.Equal(t, expected, stages)

	for i, s := range stages {
		assert.Equal(t, i, s.Ordinal(), "ordinal of %s must match pipeline position", s)
	}
}

func TestBenchmarkStages_ExcludeTerminal(t *testing.T) {
	stages := entity.BenchmarkStages()
	require.Len(t, stages, 4)
	for _, s := range stages {
		assert.False(t, s.Terminal(), "%s must not be terminal", s)
	}
}

func TestStage_Valid(t *testing.T) {
	assert.True(t, entity.StageCuttingBending.Valid())
	assert.True(t, entity.StageReadyForShipment.Valid())
	assert.False(t, entity.Stage("POLISHING").Valid())
	assert.False(t, entity.Stage("").Valid())
}

func TestStage_OrdinalUnknown(t *testing.T) {
	assert.Equal(t, -1, entity.Stage("POLISHING").Ordinal())
}

func TestStage_Terminal(t *testing.T) {
	assert.True(t, entity.StageReadyForShipment.Terminal())
	assert.False(t, entity.StageAssemblyPackaging.Terminal())
}

func TestTracking_OpenHistoryEntry(t *testing.T) {
	now := time.Now()
	closed := now.Add(-2 * time.Hour)

	tracking := &entity.ProductionTracking{
		CurrentStage: entity.StageWeldingGrinding,
		History: []entity.ProductionHistory{
			{Stage: entity.StageCuttingBending, EnteredAt: now.Add(-4 * time.Hour), CompletedAt: &closed},
			{Stage: entity.StageWeldingGrinding, EnteredAt: closed},
		},
	}

	open := tracking.OpenHistoryEntry()
	require.NotNil(t, open)
	assert.Equal(t, entity.StageWeldingGrinding, open.Stage)
	assert.Nil(t, open.CompletedAt)
}

func TestTracking_OpenHistoryEntry_NoneOpen(t *testing.T) {
	now := time.Now()
	tracking := &entity.ProductionTracking{
		CurrentStage: entity.StageCuttingBending,
		History: []entity.ProductionHistory{
			{Stage: entity.StageCuttingBending, EnteredAt: now.Add(-time.Hour), CompletedAt: &now},
		},
	}
	assert.Nil(t, tracking.OpenHistoryEntry())
}
