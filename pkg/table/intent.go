package table

import "fmt"

// Intent names a user-initiated table mutation. The dispatch table maps
// intents to handlers operating on the owned State, which keeps the
// engine drivable (and testable) without any rendering surface on top.
type Intent string

const (
	IntentToggleExpand  Intent = "toggle-expand"
	IntentExpandAll     Intent = "expand-all"
	IntentCollapseAll   Intent = "collapse-all"
	IntentSort          Intent = "sort"
	IntentFilterApply   Intent = "filter-apply"
	IntentFilterClear   Intent = "filter-clear"
	IntentFilterReset   Intent = "filter-reset"
	IntentColumnToggle  Intent = "column-toggle"
	IntentToggleSelect  Intent = "toggle-select"
	IntentClearSelected Intent = "clear-selected"
)

// Request carries the arguments of one intent. Unused fields are zero.
type Request struct {
	Intent    Intent
	DesignID  string
	Column    int
	Additive  bool
	Visible   bool
	Condition Condition
	Operand   string
}

type handler func(*State, Request) error

var dispatch = map[Intent]handler{
	IntentToggleExpand: func(s *State, r Request) error {
		s.Toggle(r.DesignID)
		return nil
	},
	IntentExpandAll: func(s *State, r Request) error {
		s.ExpandAll()
		return nil
	},
	IntentCollapseAll: func(s *State, r Request) error {
		s.CollapseAll()
		return nil
	},
	IntentSort: func(s *State, r Request) error {
		s.SortBy(r.Column, r.Additive)
		return nil
	},
	IntentFilterApply: func(s *State, r Request) error {
		return s.ApplyFilter(r.Column, r.Condition, r.Operand)
	},
	IntentFilterClear: func(s *State, r Request) error {
		s.ClearFilter(r.Column)
		return nil
	},
	IntentFilterReset: func(s *State, r Request) error {
		s.ClearAllFilters()
		return nil
	},
	IntentColumnToggle: func(s *State, r Request) error {
		s.SetColumnVisible(r.Column, r.Visible)
		return nil
	},
	IntentToggleSelect: func(s *State, r Request) error {
		s.ToggleSelect(r.DesignID)
		return nil
	},
	IntentClearSelected: func(s *State, r Request) error {
		s.ClearSelection()
		return nil
	},
}

// Dispatch routes a request to its handler. Unknown intents error.
func (s *State) Dispatch(r Request) error {
	h, ok := dispatch[r.Intent]
	if !ok {
		return fmt.Errorf("unknown intent %q", r.Intent)
	}
	return h(s, r)
}
