package metric

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobarthurs/pgplanstats/pkg/explain"
	"github.com/jacobarthurs/pgplanstats/pkg/planstats"
)

const plan = `[{
	"Plan": {
		"Node Type": "Hash Join",
		"Startup Cost": 12.5,
		"Total Cost": 140.75,
		"Actual Rows": 10,
		"Actual Loops": 1,
		"Shared Hit Blocks": 70,
		"Temp Written Blocks": 3,
		"Plans": [
			{"Node Type": "Seq Scan", "Actual Rows": 500, "Actual Loops": 1, "Shared Hit Blocks": 20, "Shared Read Blocks": 5},
			{"Node Type": "Hash", "Actual Rows": 40, "Actual Loops": 1.5, "Shared Hit Blocks": 9.9, "Temp Read Blocks": 2}
		]
	},
	"Planning Time": 0.4,
	"Execution Time": 12.25
}]`

func parse(t *testing.T, src string) explain.Document {
	t.Helper()
	doc, err := explain.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestBuiltinMetrics(t *testing.T) {
	doc := parse(t, plan)

	tests := []struct {
		metric Metric
		want   float64
	}{
		{SharedHits, 99},
		{EstimatedCost, 140.75},
		{StartupCost, 12.5},
		{PlanningTime, 0.4},
		{ExecutionTime, 12.25},
	}
	for _, tt := range tests {
		got, err := tt.metric.Extract(doc)
		require.NoError(t, err, tt.metric.Name)
		assert.Equal(t, tt.want, got, tt.metric.Name)
	}
}

func TestForCounter(t *testing.T) {
	doc := parse(t, plan)

	loops := ForCounter(planstats.ActualLoops)
	assert.Equal(t, "actual_loops", loops.Name)
	assert.Equal(t, "loops", loops.Unit)
	got, err := loops.Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, 3.5, got)

	reads := ForCounter(planstats.SharedReadBlocks)
	assert.Equal(t, "shared_read_blocks", reads.Name)
	assert.Equal(t, "blocks", reads.Unit)
	got, err = reads.Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
}

func TestLookupAndAll(t *testing.T) {
	all := All()
	assert.Len(t, all, 5+len(planstats.Counters()))

	seen := map[string]bool{}
	for _, m := range all {
		assert.False(t, seen[m.Name], "duplicate metric %s", m.Name)
		seen[m.Name] = true

		found, ok := Lookup(m.Name)
		assert.True(t, ok, m.Name)
		assert.Equal(t, m.Label, found.Label)
	}

	_, ok := Lookup("memory_usage")
	assert.False(t, ok)

	all[0] = Metric{Name: "mutated"}
	assert.Equal(t, "shared_hits", All()[0].Name)
}

func TestMetric_PropagatesStructureError(t *testing.T) {
	doc, err := explain.FromValue(map[string]any{
		"Plan": map[string]any{"Plans": []any{"not a node"}},
	})
	require.NoError(t, err)

	_, err = SharedHits.Extract(doc)
	var se *planstats.StructureError
	assert.True(t, errors.As(err, &se))
}

func TestNewRecord(t *testing.T) {
	doc := parse(t, plan)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	r, err := NewRecord("Q1 Hash Join", doc, at)
	require.NoError(t, err)

	assert.Equal(t, "Q1 Hash Join", r.Label)
	assert.Equal(t, at, r.CapturedAt)
	assert.Equal(t, 12.5, r.StartupCost)
	assert.Equal(t, 140.75, r.TotalCost)
	assert.Equal(t, 0.4, r.PlanningTime)
	assert.Equal(t, 12.25, r.ExecutionTime)
	assert.Equal(t, 550.0, r.ActualRows)
	assert.Equal(t, 3.5, r.ActualLoops)
	assert.Equal(t, int64(99), r.SharedHitBlocks)
	assert.Equal(t, int64(5), r.SharedReadBlocks)
	assert.Equal(t, int64(2), r.TempReadBlocks)
	assert.Equal(t, int64(3), r.TempWrittenBlocks)
	assert.Zero(t, r.LocalHitBlocks)

	assert.Equal(t, r.SharedHitBlocks, r.Blocks(planstats.SharedHitBlocks))
	assert.Equal(t, r.TempWrittenBlocks, r.Blocks(planstats.TempWrittenBlocks))
	assert.Zero(t, r.Blocks(planstats.ActualRows))
}
