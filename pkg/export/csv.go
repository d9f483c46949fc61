// Package export produces client-side exports of the hub table: CSV
// documents of the currently visible rows, clipboard copies, and SVG
// snapshots of a design's cutter layout grid.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/drillworks/bithub/pkg/metrics"
	"github.com/drillworks/bithub/pkg/table"
)

// BuildCSV serializes the currently visible top-level rows into a
// quoted CSV document: header row first, columns in visible ordinal
// order. Hidden columns are excluded entirely; filters are respected
// via the state's visible set; rows appear in current display order.
// Level rows are never exported.
func BuildCSV(s *table.State) ([]byte, error) {
	defer metrics.Timer(metrics.CSVExport)()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	cols := s.VisibleColumns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Label
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for _, r := range s.VisibleRows() {
		if r.IsLevel() {
			continue
		}
		record := make([]string, len(cols))
		for i, c := range cols {
			if c.Ordinal < len(r.Cells) {
				record[i] = r.Cells[c.Ordinal]
			}
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing row %s: %w", r.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultFilename returns the date-stamped download name for a CSV
// export, e.g. "bit-designs-2026-08-29.csv".
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("bit-designs-%s.csv", now.Format("2006-01-02"))
}

// WriteCSVFile builds the CSV and writes it next to the user, returning
// the path written.
func WriteCSVFile(s *table.State, dir string, now time.Time) (string, error) {
	data, err := BuildCSV(s)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, DefaultFilename(now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
