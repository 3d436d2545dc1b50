package planstats

// Counter identifies one of the per-node resource counters PostgreSQL reports
// under EXPLAIN (ANALYZE, BUFFERS).
type Counter int

const (
	SharedHitBlocks Counter = iota
	SharedReadBlocks
	SharedDirtiedBlocks
	SharedWrittenBlocks
	LocalHitBlocks
	LocalReadBlocks
	LocalDirtiedBlocks
	LocalWrittenBlocks
	TempReadBlocks
	TempWrittenBlocks
	ActualRows
	ActualLoops

	numCounters
)

// counterNames holds the exact EXPLAIN JSON keys, indexed by Counter.
var counterNames = [numCounters]string{
	SharedHitBlocks:     "Shared Hit Blocks",
	SharedReadBlocks:    "Shared Read Blocks",
	SharedDirtiedBlocks: "Shared Dirtied Blocks",
	SharedWrittenBlocks: "Shared Written Blocks",
	LocalHitBlocks:      "Local Hit Blocks",
	LocalReadBlocks:     "Local Read Blocks",
	LocalDirtiedBlocks:  "Local Dirtied Blocks",
	LocalWrittenBlocks:  "Local Written Blocks",
	TempReadBlocks:      "Temp Read Blocks",
	TempWrittenBlocks:   "Temp Written Blocks",
	ActualRows:          "Actual Rows",
	ActualLoops:         "Actual Loops",
}

var countersByName = func() map[string]Counter {
	m := make(map[string]Counter, numCounters)
	for c, name := range counterNames {
		m[name] = Counter(c)
	}
	return m
}()

func (c Counter) String() string {
	if !c.valid() {
		return "unknown"
	}
	return counterNames[c]
}

// IsBlocks reports whether the counter is measured in buffer blocks.
func (c Counter) IsBlocks() bool {
	return c >= SharedHitBlocks && c <= TempWrittenBlocks
}

func (c Counter) valid() bool {
	return c >= 0 && c < numCounters
}

// Counters returns every known counter in reporting order.
func Counters() []Counter {
	out := make([]Counter, numCounters)
	for i := range out {
		out[i] = Counter(i)
	}
	return out
}

// LookupCounter resolves an EXPLAIN key to its Counter. Matching is exact.
func LookupCounter(name string) (Counter, bool) {
	c, ok := countersByName[name]
	return c, ok
}
