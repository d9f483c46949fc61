package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"})

	headerSortedStyle = headerStyle.
				Underline(true)

	selectedRowStyle = lipgloss.NewStyle().
				Background(ColorBgHighlight).
				Foreground(ColorText)

	levelRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"})

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"})

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}).
			Padding(1, 2)
)

// sortIndicator renders the header suffix for a sorted column: an arrow
// plus the 1-based priority when more than one key is active.
func sortIndicator(direction string, priority, total int) string {
	arrow := "↑"
	if direction == "desc" {
		arrow = "↓"
	}
	if total > 1 {
		return arrow + subscriptDigit(priority)
	}
	return arrow
}

func subscriptDigit(n int) string {
	subs := []string{"₀", "₁", "₂", "₃", "₄", "₅", "₆", "₇", "₈", "₉"}
	if n >= 0 && n < len(subs) {
		return subs[n]
	}
	return ""
}
