package table

import (
	"sort"
	"strings"

	"github.com/drillworks/bithub/pkg/metrics"
	"github.com/drillworks/bithub/pkg/model"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc", the form used in preference snapshots.
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection maps a persisted direction string back to a Direction.
// Anything other than "desc" reads as ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, "desc") {
		return Descending
	}
	return Ascending
}

// SortKey is one entry of the SortSpec. List position encodes priority:
// the first key is the primary sort.
type SortKey struct {
	Column    int
	Direction Direction
}

// SortKeys returns the current SortSpec in priority order.
func (s *State) SortKeys() []SortKey {
	out := make([]SortKey, len(s.sorts))
	copy(out, s.sorts)
	return out
}

// SortBy mutates the SortSpec and reorders the rows.
//
// Non-additive: the spec is replaced with the single key (column, asc).
// Additive with the column already present: its direction cycles
// ascending → descending → removed, without disturbing the relative
// order of the other keys. Additive with the column absent: the column
// is appended ascending as the lowest-priority key.
func (s *State) SortBy(column int, additive bool) {
	if column < 0 || column >= len(s.columns) {
		return
	}

	if !additive {
		s.sorts = []SortKey{{Column: column, Direction: Ascending}}
	} else {
		idx := -1
		for i, k := range s.sorts {
			if k.Column == column {
				idx = i
				break
			}
		}
		switch {
		case idx == -1:
			s.sorts = append(s.sorts, SortKey{Column: column, Direction: Ascending})
		case s.sorts[idx].Direction == Ascending:
			s.sorts[idx].Direction = Descending
		default:
			s.sorts = append(s.sorts[:idx], s.sorts[idx+1:]...)
		}
	}

	s.applySort()
	s.notify()
}

// applySort stably reorders the top-level rows by the full SortSpec and
// regroups each design's level rows immediately after it, preserving
// their original relative order. With an empty SortSpec the current
// order stands.
func (s *State) applySort() {
	defer metrics.Timer(metrics.SortApply)()

	designs := make([]model.Row, 0, len(s.rows))
	levels := make(map[string][]model.Row)
	for _, r := range s.rows {
		if r.IsLevel() {
			levels[r.DesignID] = append(levels[r.DesignID], r)
		} else {
			designs = append(designs, r)
		}
	}

	if len(s.sorts) > 0 {
		sort.SliceStable(designs, func(i, j int) bool {
			return s.compareRows(designs[i], designs[j]) < 0
		})
	}

	out := make([]model.Row, 0, len(s.rows))
	for _, d := range designs {
		out = append(out, d)
		out = append(out, levels[d.ID]...)
	}
	s.rows = out
}

// compareRows applies the composite comparator: keys in priority order,
// first non-zero comparison decides, full tie returns 0 so the stable
// sort preserves prior relative order.
func (s *State) compareRows(a, b model.Row) int {
	for _, k := range s.sorts {
		c := compareCells(cellAt(a, k.Column), cellAt(b, k.Column))
		if k.Direction == Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// compareCells compares two cells after classifying each. Both numbers
// compare numerically, both dates by timestamp, everything else falls
// back to case-folded string comparison.
func compareCells(a, b string) int {
	va, vb := Classify(a), Classify(b)

	if va.Kind == KindNumber && vb.Kind == KindNumber {
		switch {
		case va.Num < vb.Num:
			return -1
		case va.Num > vb.Num:
			return 1
		}
		return 0
	}

	if va.Kind == KindDate && vb.Kind == KindDate {
		switch {
		case va.Time.Before(vb.Time):
			return -1
		case va.Time.After(vb.Time):
			return 1
		}
		return 0
	}

	return strings.Compare(strings.ToLower(va.Text), strings.ToLower(vb.Text))
}

func cellAt(r model.Row, column int) string {
	if column < 0 || column >= len(r.Cells) {
		return ""
	}
	return r.Cells[column]
}
