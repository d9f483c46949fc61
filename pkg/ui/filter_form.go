package ui

import (
	"github.com/charmbracelet/huh"

	"github.com/drillworks/bithub/pkg/table"
)

// filterForm collects one (column, condition, operand) predicate. It is
// pre-seeded with the focused column and any filter already active on
// it, since re-applying replaces.
type filterForm struct {
	form      *huh.Form
	column    string
	condition string
	operand   string
}

func newFilterForm(s *table.State, focusedColumn int) *filterForm {
	f := &filterForm{}

	colOpts := make([]huh.Option[string], 0, len(s.Columns()))
	for _, c := range s.Columns() {
		colOpts = append(colOpts, huh.NewOption(c.Label, c.Key))
	}
	condOpts := make([]huh.Option[string], 0, len(table.Conditions))
	for _, c := range table.Conditions {
		condOpts = append(condOpts, huh.NewOption(c.Label(), string(c)))
	}

	cols := s.Columns()
	if focusedColumn >= 0 && focusedColumn < len(cols) {
		f.column = cols[focusedColumn].Key
	}
	f.condition = string(table.CondContains)
	if existing, ok := s.FilterFor(focusedColumn); ok {
		f.condition = string(existing.Condition)
		f.operand = existing.Operand
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Column").
				Options(colOpts...).
				Value(&f.column),
			huh.NewSelect[string]().
				Title("Condition").
				Options(condOpts...).
				Value(&f.condition),
			huh.NewInput().
				Title("Value").
				Description("leave blank for emptiness checks").
				Value(&f.operand),
		),
	).WithShowHelp(false)

	return f
}

// result translates the completed form back into engine terms.
func (f *filterForm) result(s *table.State) (column int, cond table.Condition, operand string, ok bool) {
	for _, c := range s.Columns() {
		if c.Key == f.column {
			return c.Ordinal, table.Condition(f.condition), f.operand, true
		}
	}
	return 0, "", "", false
}
