// Package explain turns PostgreSQL EXPLAIN output into documents whose plan
// trees can be totalled by planstats.
package explain

import (
	"encoding/json"
	"strconv"

	"github.com/jacobarthurs/pgplanstats/pkg/planstats"
)

// Document is one top-level EXPLAIN entry: the wrapper object holding "Plan"
// plus fields such as "Planning Time" and "Execution Time".
type Document struct {
	root map[string]any
}

// Summary holds the whole-plan facts PostgreSQL reports outside the node
// counters. Missing values are zero.
type Summary struct {
	NodeType      string  `json:"node_type"`
	StartupCost   float64 `json:"startup_cost"`
	TotalCost     float64 `json:"total_cost"`
	PlanningTime  float64 `json:"planning_time_ms"`
	ExecutionTime float64 `json:"execution_time_ms"`
}

func newDocument(val any, path string) (Document, error) {
	obj, ok := val.(map[string]any)
	if !ok {
		return Document{}, &planstats.StructureError{Path: path, Reason: "expected EXPLAIN object"}
	}
	plan, ok := obj["Plan"]
	if !ok {
		return Document{}, &planstats.StructureError{Path: path, Reason: `missing top-level "Plan" key`}
	}
	if _, ok := plan.(map[string]any); !ok {
		return Document{}, &planstats.StructureError{Path: joinPath(path, "Plan"), Reason: "expected object"}
	}
	return Document{root: obj}, nil
}

// Root returns the decoded wrapper object. Callers must not modify it.
func (d Document) Root() map[string]any {
	return d.root
}

func (d Document) Stats() (planstats.Stats, error) {
	return planstats.Accumulate(d.root)
}

func (d Document) Summary() Summary {
	plan, _ := d.root["Plan"].(map[string]any)
	return Summary{
		NodeType:      asString(plan["Node Type"]),
		StartupCost:   asFloat(plan["Startup Cost"]),
		TotalCost:     asFloat(plan["Total Cost"]),
		PlanningTime:  asFloat(d.root["Planning Time"]),
		ExecutionTime: asFloat(d.root["Execution Time"]),
	}
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func asString(val any) string {
	s, _ := val.(string)
	return s
}

func asFloat(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
