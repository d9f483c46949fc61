package table

import (
	"github.com/drillworks/bithub/pkg/model"
)

// State is the one shared mutable object behind a hub table instance.
// It is owned exclusively by the controller that constructed it; the
// subsystem methods (sort, filter, hierarchy, visibility) all mutate it
// synchronously, so no transition is ever observable half-applied.
type State struct {
	columns []model.Column
	rows    []model.Row // display order: design, then its levels

	expanded map[string]bool // ExpansionSet: design IDs currently expanded
	sorts    []SortKey       // SortSpec: priority-ordered
	filters  []Filter        // FilterSpec: at most one per column
	hidden   map[int]bool    // VisibilitySet: hidden column ordinals
	selected map[string]bool // checkbox selection for bulk actions

	visible map[string]bool // derived: design IDs passing all filters

	onMutate func() // invoked after every preference-relevant mutation
}

// New constructs a state over the given columns and rows. Rows must be
// in document order (each design followed by its levels); level rows
// whose design is absent are dropped.
func New(columns []model.Column, rows []model.Row) *State {
	s := &State{
		columns:  columns,
		expanded: make(map[string]bool),
		hidden:   make(map[int]bool),
		selected: make(map[string]bool),
		visible:  make(map[string]bool),
	}
	s.SetRows(rows)
	return s
}

// SetRows replaces the row set, e.g. after a data source reload.
// Preference state (expansion, sorts, filters, visibility) is kept;
// stale expanded/selected IDs are pruned. The current SortSpec is
// re-applied so the new rows land in the order the user chose.
func (s *State) SetRows(rows []model.Row) {
	known := make(map[string]bool, len(rows))
	for _, r := range rows {
		if !r.IsLevel() {
			known[r.ID] = true
		}
	}

	s.rows = make([]model.Row, 0, len(rows))
	for _, r := range rows {
		if r.IsLevel() && !known[r.DesignID] {
			continue // orphan level, parent missing
		}
		s.rows = append(s.rows, r)
	}

	for id := range s.expanded {
		if !known[id] {
			delete(s.expanded, id)
		}
	}
	for id := range s.selected {
		if !known[id] {
			delete(s.selected, id)
		}
	}

	s.recomputeVisibility()
	if len(s.sorts) > 0 {
		s.applySort()
	}
}

// OnMutate registers the callback invoked after every mutation that
// should persist a preference snapshot. Pass nil to disable.
func (s *State) OnMutate(fn func()) { s.onMutate = fn }

func (s *State) notify() {
	if s.onMutate != nil {
		s.onMutate()
	}
}

// Columns returns the full column set in ordinal order.
func (s *State) Columns() []model.Column { return s.columns }

// Rows returns all rows in current display order, regardless of
// visibility. Callers must not mutate the returned slice.
func (s *State) Rows() []model.Row { return s.rows }

// DesignRows returns the top-level rows in current display order.
func (s *State) DesignRows() []model.Row {
	var out []model.Row
	for _, r := range s.rows {
		if !r.IsLevel() {
			out = append(out, r)
		}
	}
	return out
}

// VisibleRows returns the rows a renderer should draw, in order: every
// design passing all filters, and beneath each expanded visible design
// its level rows. A level row is never emitted without its parent.
func (s *State) VisibleRows() []model.Row {
	var out []model.Row
	for _, r := range s.rows {
		if r.IsLevel() {
			if s.visible[r.DesignID] && s.expanded[r.DesignID] {
				out = append(out, r)
			}
			continue
		}
		if s.visible[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// RowVisible reports whether the given row is currently rendered.
func (s *State) RowVisible(r model.Row) bool {
	if r.IsLevel() {
		return s.visible[r.DesignID] && s.expanded[r.DesignID]
	}
	return s.visible[r.ID]
}

// ToggleSelect flips the bulk-action selection state of a design row.
func (s *State) ToggleSelect(designID string) {
	if s.selected[designID] {
		delete(s.selected, designID)
	} else {
		s.selected[designID] = true
	}
}

// SelectedIDs returns the bulk-action selection in row display order.
func (s *State) SelectedIDs() []string {
	var out []string
	for _, r := range s.rows {
		if !r.IsLevel() && s.selected[r.ID] {
			out = append(out, r.ID)
		}
	}
	return out
}

// Selected reports whether a design is in the bulk-action selection.
func (s *State) Selected(designID string) bool { return s.selected[designID] }

// ClearSelection empties the bulk-action selection.
func (s *State) ClearSelection() {
	s.selected = make(map[string]bool)
}

// Restore applies a previously saved preference snapshot: expansion set,
// sort keys, filters and hidden columns, in that order. Unknown design
// IDs, out-of-range ordinals and malformed filters are dropped rather
// than failing the whole restore. Restore does not fire OnMutate.
func (s *State) Restore(expanded []string, sorts []SortKey, filters []Filter, hidden []int) {
	known := make(map[string]bool)
	for _, r := range s.rows {
		if !r.IsLevel() {
			known[r.ID] = true
		}
	}

	s.expanded = make(map[string]bool)
	for _, id := range expanded {
		if known[id] {
			s.expanded[id] = true
		}
	}

	s.sorts = nil
	seen := make(map[int]bool)
	for _, k := range sorts {
		if k.Column < 0 || k.Column >= len(s.columns) || seen[k.Column] {
			continue
		}
		if k.Direction != Ascending && k.Direction != Descending {
			continue
		}
		seen[k.Column] = true
		s.sorts = append(s.sorts, k)
	}

	s.filters = nil
	for _, f := range filters {
		if f.Column < 0 || f.Column >= len(s.columns) || !f.Condition.Valid() {
			continue
		}
		if f.Operand == "" && !f.Condition.AllowsEmptyOperand() {
			continue
		}
		s.setFilter(f)
	}

	s.hidden = make(map[int]bool)
	for _, ord := range hidden {
		if ord > anchorColumn && ord < len(s.columns) {
			s.hidden[ord] = true
		}
	}

	s.recomputeVisibility()
	if len(s.sorts) > 0 {
		s.applySort()
	}
}

// ExpandedIDs returns the expansion set in row display order.
func (s *State) ExpandedIDs() []string {
	var out []string
	for _, r := range s.rows {
		if !r.IsLevel() && s.expanded[r.ID] {
			out = append(out, r.ID)
		}
	}
	return out
}
