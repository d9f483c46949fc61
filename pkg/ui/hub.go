// Package ui renders the bit design hub: an interactive table over the
// shop's bit designs with hierarchy expansion, multi-key sorting,
// column filters, column visibility and bulk actions, backed by the
// table engine and the two-tier preference store.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/drillworks/bithub/pkg/analysis"
	"github.com/drillworks/bithub/pkg/api"
	"github.com/drillworks/bithub/pkg/config"
	"github.com/drillworks/bithub/pkg/export"
	"github.com/drillworks/bithub/pkg/metrics"
	"github.com/drillworks/bithub/pkg/model"
	"github.com/drillworks/bithub/pkg/prefs"
	"github.com/drillworks/bithub/pkg/table"
	"github.com/drillworks/bithub/pkg/watcher"
)

// mode selects which surface owns the keyboard.
type mode int

const (
	modeTable mode = iota
	modeFilter
	modeColumns
	modeHelp
	modeConfirm
)

// columnWidths maps column keys to their render width in cells.
var columnWidths = map[string]int{
	"design":  26,
	"size":    6,
	"type":    12,
	"blades":  6,
	"cutters": 7,
	"status":  10,
	"qty":     5,
	"updated": 10,
}

const defaultColumnWidth = 12

// confirmDialog is the blocking delete confirmation. Heap-allocated so
// the form's value pointer survives model copies.
type confirmDialog struct {
	form *huh.Form
	yes  bool
	ids  []string
}

func newConfirmDialog(ids []string) *confirmDialog {
	d := &confirmDialog{ids: ids}
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %d selected design(s)?", len(ids))).
				Description("They will be removed from the MES server.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&d.yes),
		),
	).WithShowHelp(false)
	return d
}

// Model is the hub's bubbletea model.
type Model struct {
	state  *table.State
	store  *prefs.Store
	client *api.Client
	watch  *watcher.Watcher
	cfg    config.Config

	shopDir   string
	exportDir string
	designs   map[string]model.Design

	keys  keyMap
	theme Theme

	mode     mode
	width    int
	height   int
	cursor   int // index into VisibleRows
	focusCol int // index into VisibleColumns
	scroll   int

	filter  *filterForm
	picker  columnPicker
	confirm *confirmDialog

	toast    *toast
	toastSeq int

	loadErr error
}

// New assembles the hub over an already loaded and restored table
// state. watch may be nil when file watching is disabled.
func New(cfg config.Config, shopDir string, designs []model.Design, st *table.State, store *prefs.Store, client *api.Client, watch *watcher.Watcher) Model {
	m := Model{
		state:     st,
		store:     store,
		client:    client,
		watch:     watch,
		cfg:       cfg,
		shopDir:   shopDir,
		exportDir: cfg.UI.ExportDir,
		keys:      defaultKeyMap(),
		theme:     DefaultTheme(),
	}
	if m.exportDir == "" {
		m.exportDir = "."
	}
	m.indexDesigns(designs)
	return m
}

// WithLoadError records a startup load failure. The hub still comes up
// with an empty table; the title bar shows the error until a reload
// succeeds.
func (m Model) WithLoadError(err error) Model {
	m.loadErr = err
	return m
}

func (m *Model) indexDesigns(designs []model.Design) {
	m.designs = make(map[string]model.Design, len(designs))
	for _, d := range designs {
		m.designs[d.ID] = d
	}
}

// Init starts the background remote preference sync and the watcher
// subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		syncRemoteColumnsCmd(m.store),
		watchChangesCmd(m.watch),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case toastExpiredMsg:
		if m.toast != nil && m.toast.seq == msg.seq {
			m.toast = nil
		}
		return m, nil

	case dataLoadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			return m, m.showToast("reload failed: "+msg.err.Error(), toastError)
		}
		m.loadErr = nil
		m.indexDesigns(msg.designs)
		m.state.SetRows(model.BuildRows(msg.designs))
		m.clampCursor()
		return m, m.showToast(fmt.Sprintf("loaded %d designs", len(msg.designs)), toastSuccess)

	case remoteColumnsMsg:
		if msg.found {
			m.state.ApplyVisibleColumnKeys(msg.columns)
			m.clampFocus()
		}
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			return m, m.showToast("delete failed: "+msg.err.Error(), toastError)
		}
		m.state.ClearSelection()
		return m, tea.Batch(
			m.showToast(fmt.Sprintf("deleted %d design(s)", msg.count), toastSuccess),
			loadDataCmd(m.shopDir),
		)

	case fileChangedMsg:
		return m, tea.Batch(
			m.showToast("shop data changed, reloading", toastInfo),
			loadDataCmd(m.shopDir),
			watchChangesCmd(m.watch),
		)
	}

	switch m.mode {
	case modeFilter:
		return m.updateFilter(msg)
	case modeColumns:
		return m.updateColumns(msg)
	case modeHelp:
		return m.updateHelp(msg)
	case modeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateTable(msg)
}

func (m Model) updateTable(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.mode = modeHelp
		return m, nil

	case key.Matches(keyMsg, m.keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Top):
		m.cursor = 0
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Bottom):
		m.cursor = len(m.state.VisibleRows()) - 1
		m.clampCursor()

	case key.Matches(keyMsg, m.keys.Left):
		m.focusCol--
		m.clampFocus()
	case key.Matches(keyMsg, m.keys.Right):
		m.focusCol++
		m.clampFocus()

	case key.Matches(keyMsg, m.keys.Toggle):
		if r, ok := m.currentRow(); ok {
			m.state.Toggle(designIDOf(r))
			m.clampCursor()
		}
	case key.Matches(keyMsg, m.keys.ExpandAll):
		m.state.ExpandAll()
	case key.Matches(keyMsg, m.keys.CollapseAll):
		m.state.CollapseAll()
		m.clampCursor()

	case key.Matches(keyMsg, m.keys.Sort):
		m.state.SortBy(m.focusedOrdinal(), false)
	case key.Matches(keyMsg, m.keys.SortAdd):
		m.state.SortBy(m.focusedOrdinal(), true)

	case key.Matches(keyMsg, m.keys.Filter):
		m.filter = newFilterForm(m.state, m.focusedOrdinal())
		m.mode = modeFilter
		return m, m.filter.form.Init()
	case key.Matches(keyMsg, m.keys.ClearFilter):
		if len(m.state.Filters()) == 0 {
			return m, m.showToast("no filters active", toastInfo)
		}
		m.state.ClearAllFilters()
		m.clampCursor()
		return m, m.showToast("filters cleared", toastInfo)

	case key.Matches(keyMsg, m.keys.Columns):
		m.picker = columnPicker{cursor: m.focusedOrdinal()}
		m.mode = modeColumns
		return m, nil

	case key.Matches(keyMsg, m.keys.Select):
		if r, ok := m.currentRow(); ok {
			m.state.ToggleSelect(designIDOf(r))
		}

	case key.Matches(keyMsg, m.keys.Export):
		path, err := export.WriteCSVFile(m.state, m.exportDir, time.Now())
		if err != nil {
			return m, m.showToast("export failed: "+err.Error(), toastError)
		}
		return m, m.showToast("exported "+path, toastSuccess)

	case key.Matches(keyMsg, m.keys.ServerCSV):
		if !m.client.Available() {
			return m, m.showToast("no server configured", toastWarning)
		}
		u := m.client.ExportURL("bit_designs", "csv", m.state.SelectedIDs())
		if err := api.OpenInBrowser(u); err != nil {
			return m, m.showToast("could not open browser: "+err.Error(), toastError)
		}
		return m, m.showToast("export opened in browser", toastInfo)

	case key.Matches(keyMsg, m.keys.ExportGrid):
		r, ok := m.currentRow()
		if !ok {
			return m, m.showToast("no design under cursor", toastWarning)
		}
		d, ok := m.designs[designIDOf(r)]
		if !ok {
			return m, m.showToast("design not loaded", toastWarning)
		}
		path, err := export.WriteGridSVG(d, m.exportDir)
		if err != nil {
			return m, m.showToast("snapshot failed: "+err.Error(), toastError)
		}
		return m, m.showToast("wrote "+path, toastSuccess)

	case key.Matches(keyMsg, m.keys.Copy):
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		if err := export.CopyRowToClipboard(m.state, r); err != nil {
			return m, m.showToast("copy failed: "+err.Error(), toastError)
		}
		return m, m.showToast("row copied", toastSuccess)

	case key.Matches(keyMsg, m.keys.Delete):
		ids := m.state.SelectedIDs()
		if len(ids) == 0 {
			return m, m.showToast("no designs selected", toastWarning)
		}
		if !m.client.Available() {
			return m, m.showToast("delete needs a server connection", toastWarning)
		}
		m.confirm = newConfirmDialog(ids)
		m.mode = modeConfirm
		return m, m.confirm.form.Init()

	case key.Matches(keyMsg, m.keys.Reload):
		return m, tea.Batch(
			m.showToast("reloading", toastInfo),
			loadDataCmd(m.shopDir),
		)
	}

	return m, nil
}

func (m Model) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.mode = modeTable
		m.filter = nil
		return m, nil
	}

	form, cmd := m.filter.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.filter.form = f
	}

	switch m.filter.form.State {
	case huh.StateCompleted:
		column, cond, operand, ok := m.filter.result(m.state)
		m.mode = modeTable
		m.filter = nil
		if !ok {
			return m, cmd
		}
		if err := m.state.ApplyFilter(column, cond, operand); err != nil {
			return m, tea.Batch(cmd, m.showToast(err.Error(), toastWarning))
		}
		m.clampCursor()
		return m, cmd
	case huh.StateAborted:
		m.mode = modeTable
		m.filter = nil
	}
	return m, cmd
}

func (m Model) updateColumns(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "esc", "c", "q", "enter":
		m.mode = modeTable
		m.clampFocus()
	case "up", "k":
		m.picker.move(-1, m.state)
	case "down", "j":
		m.picker.move(1, m.state)
	case " ", "x":
		m.picker.toggle(m.state)
	}
	return m, nil
}

func (m Model) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.mode = modeTable
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.confirm.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm.form = f
	}

	switch m.confirm.form.State {
	case huh.StateCompleted:
		dialog := m.confirm
		m.mode = modeTable
		m.confirm = nil
		if !dialog.yes {
			return m, cmd
		}
		return m, tea.Batch(cmd, bulkDeleteCmd(m.client, dialog.ids))
	case huh.StateAborted:
		m.mode = modeTable
		m.confirm = nil
	}
	return m, cmd
}

// clampCursor keeps the cursor inside the visible row range and the
// scroll window around it.
func (m *Model) clampCursor() {
	n := len(m.state.VisibleRows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	body := m.bodyHeight()
	if body <= 0 {
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+body {
		m.scroll = m.cursor - body + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// clampFocus keeps the column focus inside the visible column range.
func (m *Model) clampFocus() {
	n := len(m.state.VisibleColumns())
	if m.focusCol >= n {
		m.focusCol = n - 1
	}
	if m.focusCol < 0 {
		m.focusCol = 0
	}
}

// focusedOrdinal maps the focus index to the underlying column ordinal.
func (m Model) focusedOrdinal() int {
	cols := m.state.VisibleColumns()
	if m.focusCol >= 0 && m.focusCol < len(cols) {
		return cols[m.focusCol].Ordinal
	}
	return 0
}

func (m Model) currentRow() (model.Row, bool) {
	rows := m.state.VisibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return model.Row{}, false
	}
	return rows[m.cursor], true
}

// designIDOf resolves a row to its design: level rows act on their
// parent.
func designIDOf(r model.Row) string {
	if r.IsLevel() {
		return r.DesignID
	}
	return r.ID
}

// bodyHeight is the row budget after title, chips, header and status
// chrome.
func (m Model) bodyHeight() int {
	h := m.height - 4
	if len(m.state.Chips()) > 0 {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	if m.width == 0 {
		return "loading…"
	}

	switch m.mode {
	case modeFilter:
		return m.overlay(modalStyle.Render(m.filter.form.View()))
	case modeColumns:
		return m.overlay(m.picker.render(m.state, m.theme))
	case modeHelp:
		return renderHelp(m.width)
	case modeConfirm:
		return m.overlay(modalStyle.Render(m.confirm.form.View()))
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	if chips := m.renderChips(); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n")
	}
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) overlay(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderTitle() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("bit design hub")
	if m.watch != nil && m.watch.IsPolling() {
		title += statusBarStyle.Render("  (polling)")
	}
	if m.loadErr != nil {
		title += lipgloss.NewStyle().Foreground(m.theme.Danger).Render("  data error: " + m.loadErr.Error())
	}
	return title
}

func (m Model) renderChips() string {
	chips := m.state.Chips()
	if len(chips) == 0 {
		return ""
	}
	parts := make([]string, len(chips))
	for i, c := range chips {
		parts[i] = chipStyle.Render(c.Label + " ✕")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) renderHeader() string {
	sorts := m.state.SortKeys()
	var b strings.Builder
	b.WriteString("   ") // anchor gutter: selection + expand glyphs
	for i, c := range m.state.VisibleColumns() {
		label := c.Label
		style := headerStyle
		for pri, k := range sorts {
			if k.Column == c.Ordinal {
				label += sortIndicator(k.Direction.String(), pri+1, len(sorts))
				style = headerSortedStyle
				break
			}
		}
		if i == m.focusCol {
			style = style.Foreground(m.theme.Info)
		}
		b.WriteString(style.Render(cellDisplay(label, widthOf(c.Key))))
		b.WriteString(" ")
	}
	return b.String()
}

func (m Model) renderBody() string {
	rows := m.state.VisibleRows()
	if len(rows) == 0 {
		if len(m.state.DesignRows()) == 0 {
			return statusBarStyle.Render("  no bit designs loaded")
		}
		return statusBarStyle.Render("  no designs match the current filters")
	}

	body := m.bodyHeight()
	end := m.scroll + body
	if end > len(rows) {
		end = len(rows)
	}

	var lines []string
	for i := m.scroll; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(r model.Row, cursor bool) string {
	var b strings.Builder

	if !r.IsLevel() && m.state.Selected(r.ID) {
		b.WriteString("✓")
	} else {
		b.WriteString(" ")
	}

	switch {
	case r.IsLevel():
		b.WriteString(" └")
	case m.state.HasLevels(r.ID):
		if m.state.IsExpanded(r.ID) {
			b.WriteString("▾ ")
		} else {
			b.WriteString("▸ ")
		}
	default:
		b.WriteString("  ")
	}

	for _, c := range m.state.VisibleColumns() {
		cell := ""
		if c.Ordinal < len(r.Cells) {
			cell = r.Cells[c.Ordinal]
		}
		text := cellDisplay(cell, widthOf(c.Key))
		if c.Key == "status" && !r.IsLevel() {
			text = lipgloss.NewStyle().Foreground(m.theme.StatusColor(cell)).Render(text)
		}
		b.WriteString(text)
		b.WriteString(" ")
	}

	line := b.String()
	switch {
	case cursor:
		return selectedRowStyle.Render(line)
	case r.IsLevel():
		return levelRowStyle.Render(line)
	}
	return line
}

func (m Model) renderStatus() string {
	designs := 0
	for _, r := range m.state.VisibleRows() {
		if !r.IsLevel() {
			designs++
		}
	}
	total := len(m.state.DesignRows())

	parts := []string{fmt.Sprintf("%d/%d designs", designs, total)}
	if n := len(m.state.SelectedIDs()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if stats := analysis.Compute(m.state, m.focusedOrdinal()); stats.Count > 0 {
		cols := m.state.Columns()
		parts = append(parts, cols[stats.Column].Label+": "+stats.String())
	}
	if r, ok := m.currentRow(); ok {
		if d, ok := m.designs[designIDOf(r)]; ok {
			parts = append(parts, "updated "+FormatTimeRel(d.UpdatedAt))
		}
	}
	parts = append(parts, "? help")

	line := statusBarStyle.Render(strings.Join(parts, " · "))
	if t := m.renderToast(); t != "" {
		line += "  " + t
	}
	return line
}

func widthOf(key string) int {
	if w, ok := columnWidths[key]; ok {
		return w
	}
	return defaultColumnWidth
}
