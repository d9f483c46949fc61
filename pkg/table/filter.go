package table

import (
	"fmt"
	"strings"

	"github.com/drillworks/bithub/pkg/metrics"
	"github.com/drillworks/bithub/pkg/model"
)

// Condition identifies a filter predicate. String comparisons are
// case-insensitive; the numeric conditions classify the cell first and
// never match non-numeric cells.
type Condition string

const (
	CondContains    Condition = "contains"
	CondEquals      Condition = "equals"
	CondNotEquals   Condition = "not_equals"
	CondStartsWith  Condition = "starts_with"
	CondEndsWith    Condition = "ends_with"
	CondGreaterThan Condition = "greater_than"
	CondLessThan    Condition = "less_than"
	CondIsEmpty     Condition = "is_empty"
	CondIsNotEmpty  Condition = "is_not_empty"
)

// Conditions lists every supported condition in menu order.
var Conditions = []Condition{
	CondContains, CondEquals, CondNotEquals, CondStartsWith, CondEndsWith,
	CondGreaterThan, CondLessThan, CondIsEmpty, CondIsNotEmpty,
}

// Valid reports whether c is a known condition.
func (c Condition) Valid() bool {
	for _, k := range Conditions {
		if c == k {
			return true
		}
	}
	return false
}

// AllowsEmptyOperand reports whether the condition is meaningful with no
// operand. Only the emptiness checks are.
func (c Condition) AllowsEmptyOperand() bool {
	return c == CondIsEmpty || c == CondIsNotEmpty
}

// Label returns the human-readable form used in chips and menus.
func (c Condition) Label() string {
	switch c {
	case CondContains:
		return "contains"
	case CondEquals:
		return "equals"
	case CondNotEquals:
		return "not equals"
	case CondStartsWith:
		return "starts with"
	case CondEndsWith:
		return "ends with"
	case CondGreaterThan:
		return ">"
	case CondLessThan:
		return "<"
	case CondIsEmpty:
		return "is empty"
	case CondIsNotEmpty:
		return "is not empty"
	}
	return string(c)
}

// Filter is one (column, condition, operand) predicate. The live
// FilterSpec holds at most one Filter per column and rows must pass
// every active filter to be visible (AND composition).
type Filter struct {
	Column    int
	Condition Condition
	Operand   string
}

// Chip is the user-facing summary of one active filter, independently
// removable by column.
type Chip struct {
	Column int
	Label  string
}

// ApplyFilter stores or replaces the predicate for a column and
// recomputes row visibility. An empty operand is rejected except for
// the emptiness conditions.
func (s *State) ApplyFilter(column int, cond Condition, operand string) error {
	if column < 0 || column >= len(s.columns) {
		return fmt.Errorf("filter column %d out of range", column)
	}
	if !cond.Valid() {
		return fmt.Errorf("unknown filter condition %q", cond)
	}
	if strings.TrimSpace(operand) == "" && !cond.AllowsEmptyOperand() {
		return fmt.Errorf("condition %q requires a value", cond.Label())
	}

	s.setFilter(Filter{Column: column, Condition: cond, Operand: operand})
	s.recomputeVisibility()
	s.notify()
	return nil
}

// setFilter inserts or replaces without recomputing; replacement keeps
// the column's position in the chip order.
func (s *State) setFilter(f Filter) {
	for i := range s.filters {
		if s.filters[i].Column == f.Column {
			s.filters[i] = f
			return
		}
	}
	s.filters = append(s.filters, f)
}

// ClearFilter removes the predicate for a column, if any.
func (s *State) ClearFilter(column int) {
	for i := range s.filters {
		if s.filters[i].Column == column {
			s.filters = append(s.filters[:i], s.filters[i+1:]...)
			s.recomputeVisibility()
			s.notify()
			return
		}
	}
}

// ClearAllFilters empties the FilterSpec, restoring the full row set.
func (s *State) ClearAllFilters() {
	if len(s.filters) == 0 {
		return
	}
	s.filters = nil
	s.recomputeVisibility()
	s.notify()
}

// Filters returns the active FilterSpec in chip order.
func (s *State) Filters() []Filter {
	out := make([]Filter, len(s.filters))
	copy(out, s.filters)
	return out
}

// FilterFor returns the active filter on a column, if any.
func (s *State) FilterFor(column int) (Filter, bool) {
	for _, f := range s.filters {
		if f.Column == column {
			return f, true
		}
	}
	return Filter{}, false
}

// Chips returns one removable summary token per active filter. Rebuilt
// from the FilterSpec on every call, so it can never drift out of sync.
func (s *State) Chips() []Chip {
	chips := make([]Chip, 0, len(s.filters))
	for _, f := range s.filters {
		label := s.columns[f.Column].Label + " " + f.Condition.Label()
		if !f.Condition.AllowsEmptyOperand() {
			label += ` "` + f.Operand + `"`
		}
		chips = append(chips, Chip{Column: f.Column, Label: label})
	}
	return chips
}

// recomputeVisibility rebuilds the derived visible-design set: a design
// is visible iff it matches every active filter. Level rows never carry
// their own visibility; they follow their parent.
func (s *State) recomputeVisibility() {
	defer metrics.Timer(metrics.FilterApply)()

	s.visible = make(map[string]bool)
	for _, r := range s.rows {
		if r.IsLevel() {
			continue
		}
		s.visible[r.ID] = s.matchesAll(r)
	}
}

func (s *State) matchesAll(r model.Row) bool {
	for _, f := range s.filters {
		if !matches(cellAt(r, f.Column), f.Condition, f.Operand) {
			return false
		}
	}
	return true
}

// matches evaluates one predicate against a cell's rendered text.
func matches(cell string, cond Condition, operand string) bool {
	cl := strings.ToLower(strings.TrimSpace(cell))
	op := strings.ToLower(strings.TrimSpace(operand))

	switch cond {
	case CondContains:
		return strings.Contains(cl, op)
	case CondEquals:
		return cl == op
	case CondNotEquals:
		return cl != op
	case CondStartsWith:
		return strings.HasPrefix(cl, op)
	case CondEndsWith:
		return strings.HasSuffix(cl, op)
	case CondGreaterThan, CondLessThan:
		v := Classify(cell)
		if v.Kind != KindNumber {
			return false
		}
		o := Classify(operand)
		if o.Kind != KindNumber {
			return false
		}
		if cond == CondGreaterThan {
			return v.Num > o.Num
		}
		return v.Num < o.Num
	case CondIsEmpty:
		return IsBlank(cell)
	case CondIsNotEmpty:
		return !IsBlank(cell)
	}
	return false
}
