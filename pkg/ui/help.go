package ui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# bit design hub

## Navigation
| Key | Action |
|-----|--------|
| ↑/k ↓/j | move row cursor |
| ←/h →/l | move column focus |
| g / G | jump to top / bottom |
| enter | expand / collapse design |
| E / W | expand all / collapse all |

## Sorting & filtering
| Key | Action |
|-----|--------|
| s | sort by focused column (replaces sort keys, ascending) |
| S | add focused column as extra sort key (asc → desc → off) |
| f | filter focused column |
| F | clear all filters |
| c | show / hide columns |

## Data
| Key | Action |
|-----|--------|
| space | select design for bulk actions |
| e | export visible rows to CSV |
| o | open server-side export in browser |
| v | cutter grid snapshot (SVG) of current design |
| y | copy current row to clipboard |
| D | delete selected designs (asks first) |
| r | reload shop data |

Preferences (expansion, sorts, filters, columns) persist per view:
locally always, and to the MES server when one is configured.
`

// renderHelp produces the glamour-rendered help overlay.
func renderHelp(width int) string {
	if width > 80 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
