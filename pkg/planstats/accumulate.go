// Package planstats totals the per-node resource counters of a PostgreSQL
// EXPLAIN (ANALYZE, BUFFERS) plan tree.
//
// Each plan node reports only its own contribution; Accumulate walks the whole
// tree and sums every known counter. Input is the generic decoded form of an
// EXPLAIN document (map[string]any with a "Plan" key), as produced by
// encoding/json, gopkg.in/yaml.v3 or a database driver.
package planstats

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	planKey     = "Plan"
	childrenKey = "Plans"
)

// Accumulate sums every known counter across all nodes of the plan wrapped by
// doc. Counters missing from a node count as zero and unknown keys are
// ignored. The tree is not modified.
func Accumulate(doc map[string]any) (Stats, error) {
	if doc == nil {
		return Stats{}, structureErrorf("", "nil plan document")
	}
	rootVal, ok := doc[planKey]
	if !ok {
		return Stats{}, structureErrorf("", "missing top-level %q key", planKey)
	}
	root, ok := rootVal.(map[string]any)
	if !ok {
		return Stats{}, structureErrorf(planKey, "expected object, got %T", rootVal)
	}

	var stats Stats
	if err := accumulateNode(root, planKey, &stats); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// TotalSharedHits returns the whole-plan "Shared Hit Blocks" total truncated
// toward zero.
func TotalSharedHits(doc map[string]any) (int64, error) {
	stats, err := Accumulate(doc)
	if err != nil {
		return 0, err
	}
	return stats.Truncated(SharedHitBlocks), nil
}

func accumulateNode(node map[string]any, path string, stats *Stats) error {
	for c, name := range counterNames {
		raw, ok := node[name]
		if !ok {
			continue
		}
		v, err := asCounterValue(raw)
		if err != nil {
			return structureErrorf(path, "%q: %v", name, err)
		}
		stats.add(Counter(c), v)
	}

	childrenVal, ok := node[childrenKey]
	if !ok || childrenVal == nil {
		return nil
	}
	children, ok := childrenVal.([]any)
	if !ok {
		return structureErrorf(path, "%q: expected list, got %T", childrenKey, childrenVal)
	}

	for i, childVal := range children {
		childPath := fmt.Sprintf("%s.%s[%d]", path, childrenKey, i)
		child, ok := childVal.(map[string]any)
		if !ok {
			return structureErrorf(childPath, "expected object, got %T", childVal)
		}
		if err := accumulateNode(child, childPath, stats); err != nil {
			return err
		}
	}
	return nil
}

// asCounterValue accepts int, int8-int64, uint, uint8-uint64, float32, float64
// and json.Number.
func asCounterValue(val any) (float64, error) {
	var f float64
	switch v := val.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", v.String())
		}
		f = parsed
	default:
		return 0, fmt.Errorf("expected number, got %T", val)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %v", f)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative value %v", f)
	}
	return f, nil
}
