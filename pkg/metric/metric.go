// Package metric names the values callers extract from a captured plan, so a
// benchmark can be parameterised by metric instead of by copied code.
package metric

import (
	"math"
	"strings"

	"github.com/jacobarthurs/pgplanstats/pkg/explain"
	"github.com/jacobarthurs/pgplanstats/pkg/planstats"
)

type Extractor func(doc explain.Document) (float64, error)

type Metric struct {
	Name    string
	Label   string
	Unit    string
	Extract Extractor
}

var (
	SharedHits = Metric{
		Name:  "shared_hits",
		Label: "Shared Hits",
		Unit:  "blocks",
		Extract: func(doc explain.Document) (float64, error) {
			hits, err := planstats.TotalSharedHits(doc.Root())
			return float64(hits), err
		},
	}

	EstimatedCost = Metric{
		Name:    "estimated_cost",
		Label:   "Estimated Cost",
		Unit:    "planner units",
		Extract: summaryField(func(s explain.Summary) float64 { return s.TotalCost }),
	}

	StartupCost = Metric{
		Name:    "startup_cost",
		Label:   "Startup Cost",
		Unit:    "planner units",
		Extract: summaryField(func(s explain.Summary) float64 { return s.StartupCost }),
	}

	PlanningTime = Metric{
		Name:    "planning_time",
		Label:   "Planning Time",
		Unit:    "ms",
		Extract: summaryField(func(s explain.Summary) float64 { return s.PlanningTime }),
	}

	ExecutionTime = Metric{
		Name:    "execution_time",
		Label:   "Execution Time",
		Unit:    "ms",
		Extract: summaryField(func(s explain.Summary) float64 { return s.ExecutionTime }),
	}
)

var registry = buildRegistry()

func buildRegistry() []Metric {
	metrics := []Metric{SharedHits, EstimatedCost, StartupCost, PlanningTime, ExecutionTime}
	for _, c := range planstats.Counters() {
		metrics = append(metrics, ForCounter(c))
	}
	return metrics
}

// ForCounter returns the metric reporting the whole-plan total of c. Block
// counters are truncated toward zero; row and loop totals keep fractions.
func ForCounter(c planstats.Counter) Metric {
	unit := "blocks"
	if !c.IsBlocks() {
		unit = strings.ToLower(strings.TrimPrefix(c.String(), "Actual "))
	}
	return Metric{
		Name:  counterMetricName(c),
		Label: c.String(),
		Unit:  unit,
		Extract: func(doc explain.Document) (float64, error) {
			stats, err := doc.Stats()
			if err != nil {
				return 0, err
			}
			if c.IsBlocks() {
				return float64(stats.Truncated(c)), nil
			}
			return stats.Get(c), nil
		},
	}
}

// All returns every built-in metric: the summary metrics first, then one per
// known counter in counter order.
func All() []Metric {
	out := make([]Metric, len(registry))
	copy(out, registry)
	return out
}

func Lookup(name string) (Metric, bool) {
	for _, m := range registry {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

func counterMetricName(c planstats.Counter) string {
	return strings.ReplaceAll(strings.ToLower(c.String()), " ", "_")
}

func summaryField(field func(explain.Summary) float64) Extractor {
	return func(doc explain.Document) (float64, error) {
		v := field(doc.Summary())
		if math.IsNaN(v) {
			return 0, nil
		}
		return v, nil
	}
}
