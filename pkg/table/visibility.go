package table

import "github.com/drillworks/bithub/pkg/model"

// anchorColumn is the ordinal of the expand-toggle column. It is never
// hideable; every other column is a pure presentation toggle that does
// not interact with row visibility.
const anchorColumn = 0

// SetColumnVisible shows or hides a column across every row uniformly.
// Hiding the anchor column is refused silently.
func (s *State) SetColumnVisible(column int, visible bool) {
	if column <= anchorColumn || column >= len(s.columns) {
		return
	}
	if visible == !s.hidden[column] {
		return
	}
	if visible {
		delete(s.hidden, column)
	} else {
		s.hidden[column] = true
	}
	s.notify()
}

// ColumnVisible reports whether a column is currently shown.
func (s *State) ColumnVisible(column int) bool { return !s.hidden[column] }

// HiddenColumns returns the hidden ordinals in ascending order.
func (s *State) HiddenColumns() []int {
	var out []int
	for i := range s.columns {
		if s.hidden[i] {
			out = append(out, i)
		}
	}
	return out
}

// VisibleColumns returns the shown columns in ordinal order. Exports
// must use this set so hidden columns never leak into output.
func (s *State) VisibleColumns() []model.Column {
	out := make([]model.Column, 0, len(s.columns))
	for _, c := range s.columns {
		if !s.hidden[c.Ordinal] {
			out = append(out, c)
		}
	}
	return out
}

// VisibleColumnKeys returns the preference keys of the shown columns,
// the shape stored by the remote table-columns endpoint.
func (s *State) VisibleColumnKeys() []string {
	cols := s.VisibleColumns()
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	return keys
}

// ApplyVisibleColumnKeys reconciles visibility from a persisted list of
// visible column keys: listed columns show, unlisted ones hide. The
// anchor column stays visible regardless. An empty list is treated as
// "no preference" and leaves the current state alone.
func (s *State) ApplyVisibleColumnKeys(keys []string) {
	if len(keys) == 0 {
		return
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	s.hidden = make(map[int]bool)
	for _, c := range s.columns {
		if c.Ordinal == anchorColumn {
			continue
		}
		if !want[c.Key] {
			s.hidden[c.Ordinal] = true
		}
	}
}
