package entity

import "time"

// Stage is one step of the fixed, linearly-ordered production pipeline.
// The ordinal is explicit in stageOrdinals; legality of a transition is
// decided by ordinal comparison, never by collection order.
type Stage string

const (
	StageCuttingBending    Stage = "CUTTING_BENDING"
	StageWeldingGrinding   Stage = "WELDING_GRINDING"
	StagePaintingWashing   Stage = "PAINTING_WASHING"
	StageAssemblyPackaging Stage = "ASSEMBLY_PACKAGING"
	StageReadyForShipment  Stage = "READY_FOR_SHIPMENT"
)

var stageOrdinals = map[Stage]int{
	StageCuttingBending:    0,
	StageWeldingGrinding:   1,
	StagePaintingWashing:   2,
	StageAssemblyPackaging: 3,
	StageReadyForShipment:  4,
}

// Stages returns the full pipeline in order, terminal stage last.
func Stages() []Stage {
	return []Stage{
		StageCuttingBending,
		StageWeldingGrinding,
		StagePaintingWashing,
		StageAssemblyPackaging,
		StageReadyForShipment,
	}
}

// BenchmarkStages returns the non-terminal stages, the ones with duration
// benchmarks in the bottleneck report.
func BenchmarkStages() []Stage {
	return []Stage{
		StageCuttingBending,
		StageWeldingGrinding,
		StagePaintingWashing,
		StageAssemblyPackaging,
	}
}

// Valid reports whether s belongs to the fixed stage vocabulary.
func (s Stage) Valid() bool {
	_, ok := stageOrdinals[s]
	return ok
}

// Ordinal returns the position of s in the pipeline, or -1 for unknown stages.
func (s Stage) Ordinal() int {
	ord, ok := stageOrdinals[s]
	if !ok {
		return -1
	}
	return ord
}

// Terminal reports whether s is the last stage of the pipeline.
func (s Stage) Terminal() bool {
	return s == StageReadyForShipment
}

// ProductionTracking is the live record of one order's progress through the
// pipeline (unique per order). CompletedAt on the tracking itself is
// independent of per-stage completion: the live stage-update path never sets
// it, only the offline seeder fabricating finished history does.
type ProductionTracking struct {
	ID           string
	OrderID      string
	CurrentStage Stage
	StartedAt    time.Time
	CompletedAt  *time.Time
	History      []ProductionHistory
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OpenHistoryEntry returns the currently open history entry (nil CompletedAt)
// for the tracking's current stage, or nil if there is none. At most one
// entry is open at any time.
func (t *ProductionTracking) OpenHistoryEntry() *ProductionHistory {
	for i := range t.History {
		h := &t.History[i]
		if h.Stage == t.CurrentStage && h.CompletedAt == nil {
			return h
		}
	}
	return nil
}

// ProductionHistory is one stage-entry record. CompletedAt is nil while the
// stage is the tracking's current one; it is closed at the instant the next
// stage's entry opens.
type ProductionHistory struct {
	ID          string
	TrackingID  string
	Stage       Stage
	EnteredAt   time.Time
	CompletedAt *time.Time
	Notes       string
}
