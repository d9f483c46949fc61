package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drillworks/bithub/pkg/table"
)

// columnPicker is the column visibility overlay: a checkbox list over
// every column, space to toggle, driven without any form library since
// toggles apply immediately.
type columnPicker struct {
	cursor int
}

func (p *columnPicker) move(delta int, s *table.State) {
	n := len(s.Columns())
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= n {
		p.cursor = n - 1
	}
}

// toggle flips visibility of the column under the cursor. The anchor
// column refuses silently, matching the engine.
func (p *columnPicker) toggle(s *table.State) {
	s.SetColumnVisible(p.cursor, !s.ColumnVisible(p.cursor))
}

func (p *columnPicker) render(s *table.State, theme Theme) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Columns"))
	b.WriteString("\n\n")

	for i, c := range s.Columns() {
		mark := "[ ]"
		if s.ColumnVisible(c.Ordinal) {
			mark = "[x]"
		}
		line := mark + " " + c.Label
		if c.Ordinal == 0 {
			line += "  (always shown)"
		}
		if i == p.cursor {
			line = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Muted).Render("space toggle · esc close"))
	return modalStyle.Render(b.String())
}
