package metric

import (
	"time"

	"github.com/jacobarthurs/pgplanstats/pkg/explain"
	"github.com/jacobarthurs/pgplanstats/pkg/planstats"
)

// Record is the flat, per-plan row exported for later analysis. Block totals
// are truncated toward zero; rows and loops keep their fractional part.
type Record struct {
	Label      string    `json:"label"`
	CapturedAt time.Time `json:"captured_at"`

	StartupCost   float64 `json:"startup_cost"`
	TotalCost     float64 `json:"total_cost"`
	PlanningTime  float64 `json:"planning_time_ms"`
	ExecutionTime float64 `json:"execution_time_ms"`

	ActualRows  float64 `json:"actual_rows"`
	ActualLoops float64 `json:"actual_loops"`

	SharedHitBlocks     int64 `json:"shared_hit_blocks"`
	SharedReadBlocks    int64 `json:"shared_read_blocks"`
	SharedDirtiedBlocks int64 `json:"shared_dirtied_blocks"`
	SharedWrittenBlocks int64 `json:"shared_written_blocks"`
	LocalHitBlocks      int64 `json:"local_hit_blocks"`
	LocalReadBlocks     int64 `json:"local_read_blocks"`
	LocalDirtiedBlocks  int64 `json:"local_dirtied_blocks"`
	LocalWrittenBlocks  int64 `json:"local_written_blocks"`
	TempReadBlocks      int64 `json:"temp_read_blocks"`
	TempWrittenBlocks   int64 `json:"temp_written_blocks"`
}

func NewRecord(label string, doc explain.Document, capturedAt time.Time) (Record, error) {
	stats, err := doc.Stats()
	if err != nil {
		return Record{}, err
	}
	s := doc.Summary()

	return Record{
		Label:      label,
		CapturedAt: capturedAt,

		StartupCost:   s.StartupCost,
		TotalCost:     s.TotalCost,
		PlanningTime:  s.PlanningTime,
		ExecutionTime: s.ExecutionTime,

		ActualRows:  stats.Get(planstats.ActualRows),
		ActualLoops: stats.Get(planstats.ActualLoops),

		SharedHitBlocks:     stats.Truncated(planstats.SharedHitBlocks),
		SharedReadBlocks:    stats.Truncated(planstats.SharedReadBlocks),
		SharedDirtiedBlocks: stats.Truncated(planstats.SharedDirtiedBlocks),
		SharedWrittenBlocks: stats.Truncated(planstats.SharedWrittenBlocks),
		LocalHitBlocks:      stats.Truncated(planstats.LocalHitBlocks),
		LocalReadBlocks:     stats.Truncated(planstats.LocalReadBlocks),
		LocalDirtiedBlocks:  stats.Truncated(planstats.LocalDirtiedBlocks),
		LocalWrittenBlocks:  stats.Truncated(planstats.LocalWrittenBlocks),
		TempReadBlocks:      stats.Truncated(planstats.TempReadBlocks),
		TempWrittenBlocks:   stats.Truncated(planstats.TempWrittenBlocks),
	}, nil
}

// Blocks returns the truncated block total for c, or 0 for row and loop
// counters.
func (r Record) Blocks(c planstats.Counter) int64 {
	switch c {
	case planstats.SharedHitBlocks:
		return r.SharedHitBlocks
	case planstats.SharedReadBlocks:
		return r.SharedReadBlocks
	case planstats.SharedDirtiedBlocks:
		return r.SharedDirtiedBlocks
	case planstats.SharedWrittenBlocks:
		return r.SharedWrittenBlocks
	case planstats.LocalHitBlocks:
		return r.LocalHitBlocks
	case planstats.LocalReadBlocks:
		return r.LocalReadBlocks
	case planstats.LocalDirtiedBlocks:
		return r.LocalDirtiedBlocks
	case planstats.LocalWrittenBlocks:
		return r.LocalWrittenBlocks
	case planstats.TempReadBlocks:
		return r.TempReadBlocks
	case planstats.TempWrittenBlocks:
		return r.TempWrittenBlocks
	default:
		return 0
	}
}
