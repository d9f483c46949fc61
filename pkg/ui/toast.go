package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// toastLevel selects the toast's accent color.
type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastWarning
	toastError
)

// toastDuration is how long a notification stays on screen.
const toastDuration = 3 * time.Second

// toast is a transient, non-blocking notification rendered in the
// status area. It never interrupts interaction; the only blocking
// surface in the hub is the delete confirmation.
type toast struct {
	text  string
	level toastLevel
	seq   int
}

type toastExpiredMsg struct{ seq int }

// showToast replaces the current toast and schedules its expiry. A
// newer toast supersedes the pending expiry of an older one.
func (m *Model) showToast(text string, level toastLevel) tea.Cmd {
	m.toastSeq++
	m.toast = &toast{text: text, level: level, seq: m.toastSeq}
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m *Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	var color lipgloss.AdaptiveColor
	switch m.toast.level {
	case toastSuccess:
		color = m.theme.Success
	case toastWarning:
		color = m.theme.Warning
	case toastError:
		color = m.theme.Danger
	default:
		color = m.theme.Info
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(m.toast.text)
}
