package comparator

import (
	"math"

	"github.com/jacobarthurs/pgplanstats/pkg/planstats"
)

func (c *Comparator) diffCounter(counter planstats.Counter, old, new float64) CounterDelta {
	delta := CounterDelta{
		Counter: counter,
		Name:    counter.String(),
		Old:     old,
		New:     new,
		Delta:   new - old,
		Pct:     pctChange(old, new),
	}

	// Rows and loops describe the workload, not its cost.
	if counter.IsBlocks() {
		delta.Dir = c.direction(old, new, true)
	}

	return delta
}

func (c *Comparator) direction(old, new float64, lowerPreference bool) Direction {
	if old == new || math.Abs(pctChange(old, new)) < c.Threshold {
		return Unchanged
	}
	if lowerPreference {
		if new < old {
			return Improved
		}
		return Regressed
	}
	if new > old {
		return Improved
	}
	return Regressed
}

// PctChange is the relative change from old to new in percent. Growth from
// zero counts as 100%.
func PctChange(old, new float64) float64 {
	return pctChange(old, new)
}

func pctChange(old, new float64) float64 {
	if old == 0 {
		if new == 0 {
			return 0
		}
		return 100
	}
	return ((new - old) / old) * 100
}
