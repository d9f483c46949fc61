package datasource

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/drillworks/bithub/pkg/debug"
	"github.com/drillworks/bithub/pkg/metrics"
	"github.com/drillworks/bithub/pkg/model"
)

// LoadDesigns performs smart source detection and loading: discover
// everything in the shop directory, validate concurrently, pick the
// freshest valid source and load from it.
func LoadDesigns(shopDir string) ([]model.Design, error) {
	defer metrics.Timer(metrics.SnapshotLoad)()

	sources, err := DiscoverSources(shopDir)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no data sources in %s", shopDir)
	}

	// Validation opens every candidate; do it in parallel since slow
	// network mounts are common on shop floors.
	var g errgroup.Group
	var mu sync.Mutex
	validated := make([]DataSource, len(sources))
	for i := range sources {
		g.Go(func() error {
			s := sources[i]
			if err := ValidateSource(&s); err != nil {
				debug.Log("source %s failed validation: %v", s.Path, err)
			}
			mu.Lock()
			validated[i] = s
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best, err := SelectBestSource(validated)
	if err != nil {
		return nil, err
	}
	debug.Log("loading designs from %s", best)

	return LoadFromSource(best)
}

// LoadFromSource loads designs from a specific source, dispatching on
// its type.
func LoadFromSource(source DataSource) ([]model.Design, error) {
	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return nil, fmt.Errorf("opening SQLite source %s: %w", source.Path, err)
		}
		defer reader.Close()
		return reader.LoadDesigns()

	case SourceTypeJSONL:
		return LoadDesignsFromJSONL(source.Path, func(msg string) {
			debug.Log("%s", msg)
		})

	default:
		return nil, fmt.Errorf("unknown source type: %s", source.Type)
	}
}
