package prefs

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"github.com/drillworks/bithub/pkg/debug"
	"github.com/drillworks/bithub/pkg/metrics"
)

// Remote is the remote preference tier. Implementations must report
// "no data" (found=false, err=nil) for an absent preference; transport
// errors are returned but callers treat them the same way.
type Remote interface {
	FetchColumns(ctx context.Context, view string) (columns []string, found bool, err error)
	SaveColumns(ctx context.Context, view string, columns []string) error
}

// remoteTimeout bounds the background remote calls so an unreachable
// server can't pile up goroutines.
const remoteTimeout = 5 * time.Second

// Store persists preferences for one named view.
type Store struct {
	dir    string // state directory holding the preference files
	view   string
	remote Remote // nil means local-only
}

// NewStore creates a preference store rooted at dir for the given view.
// Pass a nil remote for local-only operation.
func NewStore(dir, view string, remote Remote) *Store {
	return &Store{dir: dir, view: view, remote: remote}
}

// snapshotPath is the local file holding the full preference snapshot.
func (s *Store) snapshotPath() string {
	return filepath.Join(s.dir, s.view+"-preferences.json")
}

// columnsPath is the local file holding the visible-column key list.
// Kept separate from the snapshot because the remote endpoint only
// syncs columns; the rest of the snapshot is local-only.
func (s *Store) columnsPath() string {
	return filepath.Join(s.dir, "table_columns_"+s.view+".json")
}

// LoadLocal reads the cached snapshot. A missing file returns nil with
// no error; a corrupt file is logged and treated as absent so defaults
// apply.
func (s *Store) LoadLocal() (*Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading preferences: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("warning: invalid preference cache, using defaults: %v", err)
		return nil, nil
	}
	return &snap, nil
}

// SaveLocal writes the snapshot to the local cache synchronously.
func (s *Store) SaveLocal(snap Snapshot) error {
	defer metrics.Timer(metrics.PrefSave)()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}
	if err := os.WriteFile(s.snapshotPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}

// LoadColumnsLocal reads the cached visible-column keys. found is false
// when the cache is absent or unreadable.
func (s *Store) LoadColumnsLocal() (columns []string, found bool) {
	data, err := os.ReadFile(s.columnsPath())
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal(data, &columns); err != nil {
		log.Printf("warning: invalid column cache, ignoring: %v", err)
		return nil, false
	}
	return columns, len(columns) > 0
}

// SaveColumnsLocal writes the visible-column keys synchronously.
func (s *Store) SaveColumnsLocal(columns []string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("marshaling columns: %w", err)
	}
	if err := os.WriteFile(s.columnsPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing columns: %w", err)
	}
	return nil
}

// SyncRemote fetches the remote column preference. When the server
// returns a non-empty result it overwrites the local column cache and
// the returned slice becomes the source of truth. Absence and transport
// errors both read as "no remote preference".
func (s *Store) SyncRemote(ctx context.Context) (columns []string, found bool) {
	if s.remote == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	columns, found, err := s.remote.FetchColumns(ctx, s.view)
	if err != nil {
		debug.Log("remote preference fetch failed: %v", err)
		return nil, false
	}
	if !found || len(columns) == 0 {
		return nil, false
	}

	if err := s.SaveColumnsLocal(columns); err != nil {
		log.Printf("warning: could not cache remote columns: %v", err)
	}
	return columns, true
}

// Save persists the full snapshot and column list: local tier first,
// synchronously, then a fire-and-forget remote write. The returned
// error covers the local tier only; by the time Save returns, a reload
// would already see the new state. done (may be nil) is signalled when
// the background remote write finishes, with true on success.
func (s *Store) Save(snap Snapshot, columns []string, done chan<- bool) error {
	var firstErr error
	if err := s.SaveLocal(snap); err != nil {
		firstErr = err
	}
	if err := s.SaveColumnsLocal(columns); err != nil && firstErr == nil {
		firstErr = err
	}

	if s.remote == nil {
		if done != nil {
			done <- false
		}
		return firstErr
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		err := s.remote.SaveColumns(ctx, s.view, columns)
		if err != nil {
			debug.Log("remote preference save failed: %v", err)
		}
		if done != nil {
			done <- err == nil
		}
	}()
	return firstErr
}

// View returns the view name this store is namespaced by.
func (s *Store) View() string { return s.view }
