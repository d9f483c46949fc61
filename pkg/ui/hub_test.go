package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drillworks/bithub/pkg/api"
	"github.com/drillworks/bithub/pkg/config"
	"github.com/drillworks/bithub/pkg/metrics"
	"github.com/drillworks/bithub/pkg/model"
	"github.com/drillworks/bithub/pkg/prefs"
	"github.com/drillworks/bithub/pkg/table"
	"github.com/drillworks/bithub/pkg/testutil"
)

func testModel(t *testing.T, serverURL string) Model {
	t.Helper()
	designs := []model.Design{
		testutil.Design("BD-0001", "Alpha", model.StatusActive, 3, 1),
		testutil.Design("BD-0002", "Bravo", model.StatusHold, 7, 0),
	}
	st := table.New(model.HubColumns, model.BuildRows(designs))
	store := prefs.NewStore(t.TempDir(), "bitdesign-hub", nil)
	client := api.New(serverURL)

	m := New(config.DefaultConfig(), t.TempDir(), designs, st, store, client, nil)
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return sized.(Model)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestStartupWithoutDataDegrades(t *testing.T) {
	st := table.New(model.HubColumns, nil)
	store := prefs.NewStore(t.TempDir(), "bitdesign-hub", nil)
	m := New(config.DefaultConfig(), t.TempDir(), nil, st, store, api.New(""), nil)
	m = m.WithLoadError(errors.New("no data sources in /srv/shop"))

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = sized.(Model)

	out := m.View()
	for _, want := range []string{"data error:", "no bit designs loaded", "0/0 designs"} {
		if !strings.Contains(out, want) {
			t.Fatalf("degraded view missing %q:\n%s", want, out)
		}
	}

	// A later successful load clears the error banner.
	next, _ := m.Update(dataLoadedMsg{designs: []model.Design{
		testutil.Design("BD-0001", "Alpha", model.StatusActive, 1, 0),
	}})
	m = next.(Model)
	if m.loadErr != nil {
		t.Fatalf("loadErr = %v after successful reload", m.loadErr)
	}
	if !strings.Contains(m.View(), "1/1 designs") {
		t.Fatal("reloaded design not rendered")
	}
}

func TestViewRecordsRenderTiming(t *testing.T) {
	metrics.ResetAll()
	defer metrics.ResetAll()

	m := testModel(t, "")
	_ = m.View()

	if metrics.UIRender.Count() == 0 {
		t.Fatal("View did not record a render timing")
	}
}

func TestStatusShowsUpdatedAge(t *testing.T) {
	m := testModel(t, "")
	if !strings.Contains(m.View(), "updated ") {
		t.Fatal("status bar missing the cursor design's updated age")
	}
}

func TestViewRendersTable(t *testing.T) {
	m := testModel(t, "")
	out := m.View()

	for _, want := range []string{"bit design hub", "Design", "Status", "Alpha", "Bravo", "2/2 designs"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestSortKeyTargetsFocusedColumn(t *testing.T) {
	m := testModel(t, "")

	m = press(m, "s")
	keys := m.state.SortKeys()
	if len(keys) != 1 || keys[0].Column != 0 {
		t.Fatalf("SortKeys = %+v, want anchor column", keys)
	}

	// Move focus two columns right and add a secondary key.
	m = press(m, "l", "l", "S")
	keys = m.state.SortKeys()
	if len(keys) != 2 || keys[1].Column != 2 {
		t.Fatalf("SortKeys = %+v", keys)
	}
}

func TestEnterTogglesExpansion(t *testing.T) {
	m := testModel(t, "")

	m = press(m, "enter") // cursor starts on Alpha, which has a level
	if !m.state.IsExpanded("BD-0001") {
		t.Fatal("enter did not expand")
	}
	if !strings.Contains(m.View(), "Level 1") {
		t.Fatal("expanded level row not rendered")
	}

	m = press(m, "enter")
	if m.state.IsExpanded("BD-0001") {
		t.Fatal("enter did not collapse")
	}
}

func TestSpaceSelectsDesign(t *testing.T) {
	m := testModel(t, "")

	m = press(m, " ", "down", " ")
	if got := m.state.SelectedIDs(); len(got) != 2 {
		t.Fatalf("SelectedIDs = %v", got)
	}
	if !strings.Contains(m.View(), "2 selected") {
		t.Fatal("selection count missing from status bar")
	}
}

func TestDeleteWithoutSelectionWarns(t *testing.T) {
	m := testModel(t, "https://mes.example.com")

	m = press(m, "D")
	if m.mode != modeTable {
		t.Fatal("empty selection opened the confirmation")
	}
	if !strings.Contains(m.View(), "no designs selected") {
		t.Fatal("warning toast missing")
	}
}

func TestDeleteOpensConfirmation(t *testing.T) {
	m := testModel(t, "https://mes.example.com")

	m = press(m, " ", "D")
	if m.mode != modeConfirm {
		t.Fatalf("mode = %v, want confirmation", m.mode)
	}
	if m.confirm == nil || len(m.confirm.ids) != 1 {
		t.Fatalf("confirm = %+v", m.confirm)
	}
}

func TestDeleteOfflineWarns(t *testing.T) {
	m := testModel(t, "")

	m = press(m, " ", "D")
	if m.mode != modeTable {
		t.Fatal("offline delete opened confirmation")
	}
}

func TestFilterKeyOpensForm(t *testing.T) {
	m := testModel(t, "")

	m = press(m, "f")
	if m.mode != modeFilter || m.filter == nil {
		t.Fatal("filter form not opened")
	}

	// Escape abandons without applying.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.mode != modeTable || len(m.state.Filters()) != 0 {
		t.Fatal("escape did not abandon the form")
	}
}

func TestClearFiltersKey(t *testing.T) {
	m := testModel(t, "")
	if err := m.state.ApplyFilter(5, table.CondEquals, "hold"); err != nil {
		t.Fatal(err)
	}

	m = press(m, "F")
	if len(m.state.Filters()) != 0 {
		t.Fatal("F did not clear filters")
	}
}

func TestColumnPickerToggles(t *testing.T) {
	m := testModel(t, "")

	m = press(m, "c")
	if m.mode != modeColumns {
		t.Fatal("column picker not opened")
	}

	// Move off the anchor and hide a column.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	m = press(m, " ")
	if m.state.ColumnVisible(1) {
		t.Fatal("picker toggle did not hide column")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.mode != modeTable {
		t.Fatal("escape did not close picker")
	}
}

func TestDataReloadPrunesCursor(t *testing.T) {
	m := testModel(t, "")
	m = press(m, "down") // cursor on the second design

	next, _ := m.Update(dataLoadedMsg{designs: []model.Design{
		testutil.Design("BD-0001", "Alpha", model.StatusActive, 3, 0),
	}})
	m = next.(Model)

	if got := len(m.state.VisibleRows()); got != 1 {
		t.Fatalf("rows after reload = %d", got)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want clamped to 0", m.cursor)
	}
}

func TestRemoteColumnsReconcile(t *testing.T) {
	m := testModel(t, "")

	next, _ := m.Update(remoteColumnsMsg{columns: []string{"design", "qty"}, found: true})
	m = next.(Model)

	if got := m.state.VisibleColumnKeys(); len(got) != 2 || got[1] != "qty" {
		t.Fatalf("VisibleColumnKeys = %v", got)
	}

	// found=false leaves local state untouched.
	next, _ = m.Update(remoteColumnsMsg{})
	m = next.(Model)
	if got := m.state.VisibleColumnKeys(); len(got) != 2 {
		t.Fatalf("absent remote preference changed columns: %v", got)
	}
}

func TestHelpToggle(t *testing.T) {
	m := testModel(t, "")
	m = press(m, "?")
	if m.mode != modeHelp {
		t.Fatal("help not opened")
	}
	m = press(m, "q") // any key closes help rather than quitting
	if m.mode != modeTable {
		t.Fatal("help not closed")
	}
}
