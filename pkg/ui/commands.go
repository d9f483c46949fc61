package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drillworks/bithub/internal/datasource"
	"github.com/drillworks/bithub/pkg/api"
	"github.com/drillworks/bithub/pkg/model"
	"github.com/drillworks/bithub/pkg/prefs"
	"github.com/drillworks/bithub/pkg/watcher"
)

// dataLoadedMsg carries the result of a (re)load of the shop data.
type dataLoadedMsg struct {
	designs []model.Design
	err     error
}

// remoteColumnsMsg carries the remote column preference, if any.
type remoteColumnsMsg struct {
	columns []string
	found   bool
}

// deleteDoneMsg carries the result of a bulk delete round trip.
type deleteDoneMsg struct {
	count int
	err   error
}

// fileChangedMsg signals that the watched data source changed on disk.
type fileChangedMsg struct{}

// loadDataCmd loads designs from the freshest valid source in shopDir.
func loadDataCmd(shopDir string) tea.Cmd {
	return func() tea.Msg {
		designs, err := datasource.LoadDesigns(shopDir)
		return dataLoadedMsg{designs: designs, err: err}
	}
}

// syncRemoteColumnsCmd fetches the remote column preference in the
// background. Remote wins over the local cache when present.
func syncRemoteColumnsCmd(store *prefs.Store) tea.Cmd {
	return func() tea.Msg {
		cols, found := store.SyncRemote(context.Background())
		return remoteColumnsMsg{columns: cols, found: found}
	}
}

// bulkDeleteCmd asks the server to delete the selected designs.
func bulkDeleteCmd(client *api.Client, ids []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := client.BulkDelete(ctx, "bit_designs", ids)
		return deleteDoneMsg{count: len(ids), err: err}
	}
}

// watchChangesCmd blocks on the watcher's change channel. Re-issued
// after every fileChangedMsg so the subscription stays live.
func watchChangesCmd(w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		<-w.Changed()
		return fileChangedMsg{}
	}
}
