package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/jacobarthurs/pgplanstats/pkg/metric"
	"github.com/jacobarthurs/pgplanstats/pkg/planstats"
)

// CSVHeader is the column order written by RenderCSV.
func CSVHeader() []string {
	header := []string{"label", "captured_at", "startup_cost", "total_cost", "planning_time_ms", "execution_time_ms"}
	for _, c := range planstats.Counters() {
		header = append(header, metric.ForCounter(c).Name)
	}
	return header
}

// RenderCSV writes one row per record, with block totals truncated.
func RenderCSV(w io.Writer, records []metric.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader()); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Label,
			formatTime(r.CapturedAt),
			formatFloat(r.StartupCost),
			formatFloat(r.TotalCost),
			formatFloat(r.PlanningTime),
			formatFloat(r.ExecutionTime),
		}
		for _, c := range planstats.Counters() {
			switch c {
			case planstats.ActualRows:
				row = append(row, formatFloat(r.ActualRows))
			case planstats.ActualLoops:
				row = append(row, formatFloat(r.ActualLoops))
			default:
				row = append(row, strconv.FormatInt(r.Blocks(c), 10))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
