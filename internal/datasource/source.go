// Package datasource discovers, validates and loads shop data for the
// bit design hub. Two source shapes are supported: the shop's SQLite
// database (shop.db) and JSONL snapshot exports (one design per line).
// When both exist the freshest valid source wins, with SQLite preferred
// at equal freshness since it reflects the latest job-card activity.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SourceType identifies the type of data source.
type SourceType string

const (
	// SourceTypeSQLite is the shop database (shop.db).
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeJSONL is a JSONL snapshot export.
	SourceTypeJSONL SourceType = "jsonl"
)

// Priority values for source types (higher = more authoritative).
const (
	PrioritySQLite = 100
	PriorityJSONL  = 50
)

// DataSource represents one potential source of shop data.
type DataSource struct {
	Type            SourceType `json:"type"`
	Path            string     `json:"path"`
	Priority        int        `json:"priority"`
	ModTime         time.Time  `json:"mod_time"`
	Valid           bool       `json:"valid"`
	ValidationError string     `json:"validation_error,omitempty"`
	DesignCount     int        `json:"design_count"`
	Size            int64      `json:"size"`
}

// String returns a human-readable description of the source.
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, designs=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.DesignCount, status)
}

// ShopDir resolves the shop data directory: the explicit argument if
// set, else the BDH_SHOP_DIR environment variable, else ".bithub" under
// the working directory.
func ShopDir(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("BDH_SHOP_DIR"); env != "" {
		return env
	}
	wd, err := os.Getwd()
	if err != nil {
		return ".bithub"
	}
	return filepath.Join(wd, ".bithub")
}

// DiscoverSources finds all potential data sources in the shop
// directory: shop.db plus any *.jsonl snapshots that are not backups.
func DiscoverSources(shopDir string) ([]DataSource, error) {
	var sources []DataSource

	dbPath := filepath.Join(shopDir, "shop.db")
	if info, err := os.Stat(dbPath); err == nil {
		sources = append(sources, DataSource{
			Type:     SourceTypeSQLite,
			Path:     dbPath,
			Priority: PrioritySQLite,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
	}

	entries, err := os.ReadDir(shopDir)
	if err != nil {
		if os.IsNotExist(err) {
			return sources, nil
		}
		return sources, fmt.Errorf("reading shop directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".jsonl") {
			continue
		}
		if strings.Contains(name, ".backup") || strings.Contains(name, ".orig") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		sources = append(sources, DataSource{
			Type:     SourceTypeJSONL,
			Path:     filepath.Join(shopDir, name),
			Priority: PriorityJSONL,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
	}

	// Freshest first; priority breaks timestamp ties.
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].Priority > sources[j].Priority
		}
		return sources[i].ModTime.After(sources[j].ModTime)
	})

	return sources, nil
}

// ValidateSource opens the source and counts its designs, recording the
// result on the source itself.
func ValidateSource(s *DataSource) error {
	fail := func(err error) error {
		s.Valid = false
		s.ValidationError = err.Error()
		return err
	}

	switch s.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(*s)
		if err != nil {
			return fail(err)
		}
		defer reader.Close()
		count, err := reader.CountDesigns()
		if err != nil {
			return fail(err)
		}
		s.Valid = true
		s.DesignCount = count
		return nil

	case SourceTypeJSONL:
		count, err := countJSONLDesigns(s.Path)
		if err != nil {
			return fail(err)
		}
		s.Valid = true
		s.DesignCount = count
		return nil

	default:
		return fail(fmt.Errorf("unknown source type: %s", s.Type))
	}
}

// SelectBestSource returns the first valid source, relying on the
// freshness ordering from DiscoverSources.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	for _, s := range sources {
		if s.Valid {
			return s, nil
		}
	}
	return DataSource{}, fmt.Errorf("no valid sources available")
}
