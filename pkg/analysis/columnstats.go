// Package analysis computes summary statistics over the hub table's
// visible rows, shown in the status bar when a numeric column has
// focus.
package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/drillworks/bithub/pkg/table"
)

// ColumnStats summarizes the numeric cells of one column among the
// currently visible top-level rows.
type ColumnStats struct {
	Column int
	Count  int // numeric cells only; blanks and text excluded
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// String renders the stats line for the status bar.
func (c ColumnStats) String() string {
	if c.Count == 0 {
		return "no numeric values"
	}
	return fmt.Sprintf("n=%d min=%s max=%s mean=%s σ=%s",
		c.Count, trim(c.Min), trim(c.Max), trim(c.Mean), trim(c.StdDev))
}

func trim(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e9 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.2f", f)
}

// Compute classifies every visible design cell of the column and
// aggregates the ones that read as numbers. Level rows are excluded,
// matching what the table sorts and filters on.
func Compute(s *table.State, column int) ColumnStats {
	var values []float64
	for _, r := range s.VisibleRows() {
		if r.IsLevel() || column >= len(r.Cells) {
			continue
		}
		v := table.Classify(r.Cells[column])
		if v.Kind == table.KindNumber {
			values = append(values, v.Num)
		}
	}

	stats := ColumnStats{Column: column, Count: len(values)}
	if len(values) == 0 {
		return stats
	}

	stats.Min = floats.Min(values)
	stats.Max = floats.Max(values)
	stats.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		stats.StdDev = stat.StdDev(values, nil)
	}
	return stats
}
