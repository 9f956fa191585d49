package analytics

import (
	"context"
	"math"
	"time"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
	"github.com/atolyeos/atolye-api/internal/domain/repository"
)

const (
	// completedWindow is how many recently completed trackings feed the
	// stage benchmarks.
	completedWindow = 100

	// delayFactor: an in-progress stage is flagged only when its elapsed
	// time strictly exceeds delayFactor times the benchmark average.
	delayFactor = 1.2
)

// BottleneckUseCase computes per-stage duration benchmarks from recent
// completed production runs and flags currently delayed orders. Stages with
// too few samples fall back to fixed expected durations so the report stays
// useful from day one.
type BottleneckUseCase struct {
	productionRepo repository.ProductionRepository
	fallbackHours  map[entity.Stage]float64
	minSamples     int

	now func() time.Time
}

// NewBottleneckUseCase builds the bottleneck use case. fallbackHours maps
// each non-terminal stage to its expected duration when real samples are
// scarce; minSamples is the threshold below which the fallback is used.
func NewBottleneckUseCase(productionRepo repository.ProductionRepository, fallbackHours map[entity.Stage]float64, minSamples int) *BottleneckUseCase {
	return &BottleneckUseCase{
		productionRepo: productionRepo,
		fallbackHours:  fallbackHours,
		minSamples:     minSamples,
		now:            time.Now,
	}
}

// GetBottlenecks builds the benchmark table and scans open trackings for
// delay alerts.
func (uc *BottleneckUseCase) GetBottlenecks(ctx context.Context) (*dto.BottleneckReportDTO, error) {
	completed, err := uc.productionRepo.ListCompleted(ctx, completedWindow)
	if err != nil {
		return nil, err
	}

	durations := make(map[entity.Stage][]float64)
	for _, tracking := range completed {
		for _, h := range tracking.History {
			if h.CompletedAt == nil {
				continue
			}
			hours := h.CompletedAt.Sub(h.EnteredAt).Hours()
			durations[h.Stage] = append(durations[h.Stage], hours)
		}
	}

	benchmarks := make([]dto.StageBenchmarkDTO, 0, len(entity.BenchmarkStages()))
	averages := make(map[entity.Stage]float64)
	for _, stage := range entity.BenchmarkStages() {
		samples := durations[stage]
		b := dto.StageBenchmarkDTO{
			Stage:      string(stage),
			SampleSize: len(samples),
		}
		if len(samples) < uc.minSamples {
			b.AverageDurationHours = uc.fallbackHours[stage]
			b.IsFallback = true
		} else {
			sum, maxH, minH := 0.0, samples[0], samples[0]
			for _, s := range samples {
				sum += s
				maxH = math.Max(maxH, s)
				minH = math.Min(minH, s)
			}
			b.AverageDurationHours = round2(sum / float64(len(samples)))
			b.MaxDurationHours = round2(maxH)
			b.MinDurationHours = round2(minH)
		}
		averages[stage] = b.AverageDurationHours
		benchmarks = append(benchmarks, b)
	}

	open, err := uc.productionRepo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]dto.DelayAlertDTO, 0)
	now := uc.now()
	for _, tracking := range open {
		avg, ok := averages[tracking.CurrentStage]
		if !ok {
			// terminal stage, no benchmark to compare against
			continue
		}
		entry := tracking.OpenHistoryEntry()
		if entry == nil {
			continue
		}
		elapsed := now.Sub(entry.EnteredAt).Hours()
		if elapsed > avg*delayFactor {
			alerts = append(alerts, dto.DelayAlertDTO{
				OrderID:         tracking.OrderID,
				Stage:           string(tracking.CurrentStage),
				ElapsedHours:    round2(elapsed),
				AverageExpected: avg,
				DelayRisk:       "HIGH",
			})
		}
	}

	return &dto.BottleneckReportDTO{
		StageBenchmarks: benchmarks,
		ActiveDelays:    alerts,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
