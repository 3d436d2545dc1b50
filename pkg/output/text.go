package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/jacobarthurs/pgplanstats/pkg/comparator"
	"github.com/jacobarthurs/pgplanstats/pkg/planstats"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"

	// DefaultBlockSize is PostgreSQL's default BLCKSZ.
	DefaultBlockSize = 8192
)

type Options struct {
	// BlockSize converts block counts into bytes. Zero means DefaultBlockSize.
	BlockSize uint64
	// HideZero omits counters whose total is zero.
	HideZero bool
}

type textWriter struct {
	w   io.Writer
	err error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

// RenderStatsText writes the whole-plan counter totals as a table.
func RenderStatsText(w io.Writer, stats planstats.Stats, opts Options) error {
	tw := &textWriter{w: w}
	blockSize := opts.BlockSize
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}

	tw.printf("%s%sPlan Totals%s\n\n", colorBold, colorCyan, colorReset)

	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Counter", "Total", "Size"})

	rows := 0
	for _, c := range planstats.Counters() {
		if opts.HideZero && stats.Get(c) == 0 {
			continue
		}
		table.Append([]string{c.String(), formatTotal(stats, c), formatSize(stats, c, blockSize)})
		rows++
	}

	if rows == 0 {
		tw.printf("  %sNo counters recorded.%s\n", colorDim, colorReset)
		return tw.err
	}

	table.Render()
	tw.printf("%s", sb.String())
	return tw.err
}

func formatTotal(stats planstats.Stats, c planstats.Counter) string {
	if c.IsBlocks() {
		return humanize.Comma(stats.Truncated(c))
	}
	return humanize.CommafWithDigits(stats.Get(c), 2)
}

func formatSize(stats planstats.Stats, c planstats.Counter, blockSize uint64) string {
	if !c.IsBlocks() {
		return ""
	}
	return humanize.IBytes(uint64(stats.Truncated(c)) * blockSize)
}

// RenderComparisonText writes the per-counter changes between two plans,
// skipping counters that are zero on both sides.
func RenderComparisonText(w io.Writer, result comparator.Result) error {
	tw := &textWriter{w: w}
	s := result.Summary

	tw.printf("%s%sSummary%s\n\n", colorBold, colorCyan, colorReset)
	tw.printf("  Disk blocks: %s\n", formatDelta(s.OldDiskBlocks, s.NewDiskBlocks,
		comparator.PctChange(s.OldDiskBlocks, s.NewDiskBlocks), s.DiskDir, "%.0f"))
	tw.printf("  Changes:     %d improved, %d regressed, %d unchanged\n\n", s.Improved, s.Regressed, s.Unchanged)

	if s.Improved == 0 && s.Regressed == 0 {
		tw.printf("%s%sBuffer usage is unchanged.%s\n", colorBold, colorGreen, colorReset)
		return tw.err
	}

	tw.printf("%s%sCounter Details%s\n\n", colorBold, colorCyan, colorReset)

	for _, d := range result.Deltas {
		if d.Old == 0 && d.New == 0 {
			continue
		}
		format := "%.0f"
		if !d.Counter.IsBlocks() {
			format = "%.2f"
		}
		tw.printf("  %-22s %s\n", d.Name+":", formatDelta(d.Old, d.New, d.Pct, d.Dir, format))
	}

	tw.renderVerdict(s)

	return tw.err
}

func formatDelta(oldVal, newVal, pct float64, dir comparator.Direction, fmtStr string) string {
	color := dirColor(dir)
	arrow := dirArrow(dir)
	oldStr := fmt.Sprintf(fmtStr, oldVal)
	newStr := fmt.Sprintf(fmtStr, newVal)
	return fmt.Sprintf("%s → %s%s %s (%+.1f%%)%s", oldStr, color, newStr, arrow, pct, colorReset)
}

func dirColor(d comparator.Direction) string {
	switch d {
	case comparator.Improved:
		return colorGreen
	case comparator.Regressed:
		return colorRed
	default:
		return ""
	}
}

func dirArrow(d comparator.Direction) string {
	switch d {
	case comparator.Improved:
		return "↓"
	case comparator.Regressed:
		return "↑"
	default:
		return ""
	}
}

func (tw *textWriter) renderVerdict(s comparator.Summary) {
	var color string
	switch {
	case s.Regressed == 0:
		color = colorGreen
	case s.Improved == 0:
		color = colorRed
	default:
		color = colorYellow
	}
	tw.printf("\n%sVerdict: %s%s\n", color, s.Verdict, colorReset)
}
