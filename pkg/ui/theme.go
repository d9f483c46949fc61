package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme groups the adaptive colors used across the hub views.
type Theme struct {
	Primary lipgloss.AdaptiveColor
	Subtext lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Danger  lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	// Status colors for design lifecycle states
	Active    lipgloss.AdaptiveColor
	Prototype lipgloss.AdaptiveColor
	Hold      lipgloss.AdaptiveColor
	Repair    lipgloss.AdaptiveColor
	Obsolete  lipgloss.AdaptiveColor
}

// DefaultTheme returns the standard adaptive theme. Light colors are
// tuned for contrast on white backgrounds.
func DefaultTheme() Theme {
	return Theme{
		Primary: lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Subtext: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"},
		Muted:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"},

		Success: lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
		Warning: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
		Danger:  lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
		Info:    lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"},

		Active:    lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
		Prototype: lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"},
		Hold:      lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
		Repair:    lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Obsolete:  lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}
}

// StatusColor maps a design status cell to its badge color.
func (t Theme) StatusColor(status string) lipgloss.AdaptiveColor {
	switch status {
	case "ACTIVE":
		return t.Active
	case "PROTOTYPE":
		return t.Prototype
	case "HOLD":
		return t.Hold
	case "REPAIR":
		return t.Repair
	case "OBSOLETE":
		return t.Obsolete
	}
	return t.Subtext
}
