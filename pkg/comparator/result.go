package comparator

import "github.com/jacobarthurs/pgplanstats/pkg/planstats"

type Direction int

const (
	Unchanged Direction = 0
	Improved  Direction = 1
	Regressed Direction = 2

	DefaultThresholdPct = 5.0
)

func (d Direction) String() string {
	switch d {
	case Improved:
		return "improved"
	case Regressed:
		return "regressed"
	default:
		return "unchanged"
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type CounterDelta struct {
	Counter planstats.Counter `json:"-"`
	Name    string            `json:"name"`

	Old   float64   `json:"old"`
	New   float64   `json:"new"`
	Delta float64   `json:"delta"`
	Pct   float64   `json:"pct"`
	Dir   Direction `json:"direction"`
}

type Summary struct {
	Improved  int `json:"improved"`
	Regressed int `json:"regressed"`
	Unchanged int `json:"unchanged"`

	// Block traffic: shared read + temp read + temp written.
	OldDiskBlocks float64   `json:"old_disk_blocks"`
	NewDiskBlocks float64   `json:"new_disk_blocks"`
	DiskDir       Direction `json:"disk_direction"`

	Verdict string `json:"verdict"`
}

type Result struct {
	Deltas  []CounterDelta `json:"deltas"`
	Summary Summary        `json:"summary"`
}
