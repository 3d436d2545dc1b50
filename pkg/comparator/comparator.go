// Package comparator compares the whole-plan totals of a baseline plan with a
// candidate plan.
package comparator

import (
	"github.com/jacobarthurs/pgplanstats/pkg/planstats"
)

// Comparator treats changes smaller than Threshold percent as unchanged.
type Comparator struct {
	Threshold float64
}

func New() *Comparator {
	return &Comparator{Threshold: DefaultThresholdPct}
}

func (c *Comparator) Compare(old, new planstats.Stats) Result {
	var result Result

	for _, counter := range planstats.Counters() {
		delta := c.diffCounter(counter, old.Get(counter), new.Get(counter))
		result.Deltas = append(result.Deltas, delta)

		switch delta.Dir {
		case Improved:
			result.Summary.Improved++
		case Regressed:
			result.Summary.Regressed++
		default:
			result.Summary.Unchanged++
		}
	}

	result.Summary.OldDiskBlocks = diskBlocks(old)
	result.Summary.NewDiskBlocks = diskBlocks(new)
	result.Summary.DiskDir = c.direction(result.Summary.OldDiskBlocks, result.Summary.NewDiskBlocks, true)
	result.Summary.Verdict = verdict(result.Summary)

	return result
}

func diskBlocks(s planstats.Stats) float64 {
	return s.Get(planstats.SharedReadBlocks) + s.Get(planstats.TempReadBlocks) + s.Get(planstats.TempWrittenBlocks)
}

func verdict(s Summary) string {
	switch {
	case s.Improved == 0 && s.Regressed == 0:
		return "no significant change in buffer usage"
	case s.Regressed == 0:
		return "buffer usage improved"
	case s.Improved == 0:
		return "buffer usage regressed"
	case s.DiskDir == Improved:
		return "mixed changes, less disk traffic"
	case s.DiskDir == Regressed:
		return "mixed changes, more disk traffic"
	default:
		return "mixed changes"
	}
}
