package planstats

import (
	"encoding/json"
	"math"
)

// Stats holds whole-plan totals for every known counter. The zero value has
// every counter at zero.
type Stats struct {
	totals [numCounters]float64
}

// Get returns the running total for c, or 0 for an unknown counter.
func (s Stats) Get(c Counter) float64 {
	if !c.valid() {
		return 0
	}
	return s.totals[c]
}

// Truncated returns the total for c truncated toward zero, the convention
// used when reporting block counts. Totals beyond the int64 range saturate at
// math.MaxInt64.
func (s Stats) Truncated(c Counter) int64 {
	v := math.Trunc(s.Get(c))
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

// Lookup returns the total for the counter with the given EXPLAIN key.
func (s Stats) Lookup(name string) (float64, bool) {
	c, ok := LookupCounter(name)
	if !ok {
		return 0, false
	}
	return s.totals[c], true
}

// Add returns the counter-wise sum of s and other.
func (s Stats) Add(other Stats) Stats {
	for i := range s.totals {
		s.totals[i] += other.totals[i]
	}
	return s
}

// Map returns the totals keyed by EXPLAIN key. It always has one entry per
// known counter.
func (s Stats) Map() map[string]float64 {
	m := make(map[string]float64, numCounters)
	for c, v := range s.totals {
		m[counterNames[c]] = v
	}
	return m
}

func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

func (s *Stats) add(c Counter, v float64) {
	s.totals[c] += v
}
