package planstats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters_TableIsComplete(t *testing.T) {
	names := []string{
		"Shared Hit Blocks", "Shared Read Blocks", "Shared Dirtied Blocks", "Shared Written Blocks",
		"Local Hit Blocks", "Local Read Blocks", "Local Dirtied Blocks", "Local Written Blocks",
		"Temp Read Blocks", "Temp Written Blocks", "Actual Rows", "Actual Loops",
	}

	counters := Counters()
	require.Len(t, counters, len(names))
	for i, c := range counters {
		assert.Equal(t, names[i], c.String())
		got, ok := LookupCounter(names[i])
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
}

func TestLookupCounter_ExactMatchOnly(t *testing.T) {
	for _, name := range []string{"shared hit blocks", "Shared Hit Blocks ", "Plan Rows", ""} {
		_, ok := LookupCounter(name)
		assert.False(t, ok, name)
	}
}

func TestCounter_IsBlocks(t *testing.T) {
	assert.True(t, SharedHitBlocks.IsBlocks())
	assert.True(t, TempWrittenBlocks.IsBlocks())
	assert.False(t, ActualRows.IsBlocks())
	assert.False(t, ActualLoops.IsBlocks())
	assert.Equal(t, "unknown", Counter(99).String())
}

func TestStats_TruncatesTowardZero(t *testing.T) {
	var s Stats
	s.add(SharedHitBlocks, 9.99)
	s.add(ActualLoops, 0.5)

	assert.Equal(t, int64(9), s.Truncated(SharedHitBlocks))
	assert.Equal(t, int64(0), s.Truncated(ActualLoops))
	assert.Zero(t, s.Get(Counter(-1)))
}

func TestStats_TruncatedSaturates(t *testing.T) {
	var s Stats
	s.add(TempWrittenBlocks, 9e18)
	s.add(TempReadBlocks, 1e30)

	assert.Equal(t, int64(9e18), s.Truncated(TempWrittenBlocks))
	assert.Equal(t, int64(math.MaxInt64), s.Truncated(TempReadBlocks))
}

func TestStats_LookupAndMap(t *testing.T) {
	var s Stats
	s.add(TempReadBlocks, 4)

	v, ok := s.Lookup("Temp Read Blocks")
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)

	_, ok = s.Lookup("Node Type")
	assert.False(t, ok)

	m := s.Map()
	assert.Len(t, m, len(Counters()))
	assert.Equal(t, 4.0, m["Temp Read Blocks"])
	assert.Zero(t, m["Actual Rows"])
}

func TestStats_Add(t *testing.T) {
	var a, b Stats
	a.add(SharedHitBlocks, 1)
	b.add(SharedHitBlocks, 2)
	b.add(ActualRows, 3)

	sum := a.Add(b)
	assert.Equal(t, 3.0, sum.Get(SharedHitBlocks))
	assert.Equal(t, 3.0, sum.Get(ActualRows))
	assert.Equal(t, 1.0, a.Get(SharedHitBlocks))
}

func TestStats_MarshalJSON(t *testing.T) {
	var s Stats
	s.add(SharedHitBlocks, 7)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var out map[string]float64
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Len(t, out, len(Counters()))
	assert.Equal(t, 7.0, out["Shared Hit Blocks"])
}
