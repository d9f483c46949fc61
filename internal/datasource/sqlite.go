package datasource

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/drillworks/bithub/pkg/model"
)

// SQLiteReader provides read access to a shop.db database.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a shop database for reading.
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadDesigns reads all non-deleted designs with their BOM levels and
// cutter positions attached.
func (r *SQLiteReader) LoadDesigns() ([]model.Design, error) {
	query := `
		SELECT id, name, size_in, bit_type, blade_count, cutter_count,
		       status, qty, material, created_at, updated_at
		FROM designs
		WHERE (deleted IS NULL OR deleted = 0)
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying designs: %w", err)
	}
	defer rows.Close()

	var designs []model.Design
	index := make(map[string]int)
	for rows.Next() {
		var d model.Design
		var sizeIn sql.NullFloat64
		var bladeCount, cutterCount, qty sql.NullInt64
		var bitType, status, material sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(&d.ID, &d.Name, &sizeIn, &bitType, &bladeCount,
			&cutterCount, &status, &qty, &material, &createdAt, &updatedAt)
		if err != nil {
			continue
		}

		if sizeIn.Valid {
			d.SizeIn = sizeIn.Float64
		}
		if bitType.Valid {
			d.BitType = bitType.String
		}
		if bladeCount.Valid {
			d.BladeCount = int(bladeCount.Int64)
		}
		if cutterCount.Valid {
			d.CutterCount = int(cutterCount.Int64)
		}
		if status.Valid {
			d.Status = model.Status(status.String)
		}
		if qty.Valid {
			d.Qty = int(qty.Int64)
		}
		if material.Valid {
			d.Material = material.String
		}
		if createdAt.Valid {
			d.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			d.UpdatedAt = updatedAt.Time
		}

		index[d.ID] = len(designs)
		designs = append(designs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating designs: %w", err)
	}

	if err := r.attachLevels(designs, index); err != nil {
		return nil, err
	}
	r.attachCutters(designs, index)

	return designs, nil
}

// attachLevels loads every BOM level in one query and distributes them
// to their designs in level order.
func (r *SQLiteReader) attachLevels(designs []model.Design, index map[string]int) error {
	query := `
		SELECT design_id, level_number, component, cutter_size, qty, material, notes
		FROM design_levels
		ORDER BY design_id, level_number
	`
	rows, err := r.db.Query(query)
	if err != nil {
		// Older shop databases have no design_levels table.
		return nil
	}
	defer rows.Close()

	for rows.Next() {
		var l model.Level
		var cutterSize, material, notes sql.NullString
		var qty sql.NullInt64
		if err := rows.Scan(&l.DesignID, &l.Number, &l.Component, &cutterSize, &qty, &material, &notes); err != nil {
			continue
		}
		if cutterSize.Valid {
			l.CutterSize = cutterSize.String
		}
		if qty.Valid {
			l.Qty = int(qty.Int64)
		}
		if material.Valid {
			l.Material = material.String
		}
		if notes.Valid {
			l.Notes = notes.String
		}
		if i, ok := index[l.DesignID]; ok {
			designs[i].Levels = append(designs[i].Levels, l)
		}
	}
	return rows.Err()
}

// attachCutters loads cutter layout positions, best-effort: layouts are
// only needed for grid snapshots, so any error leaves designs bare.
func (r *SQLiteReader) attachCutters(designs []model.Design, index map[string]int) {
	query := `
		SELECT design_id, blade, slot, radius, angle, size_mm
		FROM cutters
		ORDER BY design_id, blade, slot
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var designID string
		var c model.CutterPos
		if err := rows.Scan(&designID, &c.Blade, &c.Slot, &c.Radius, &c.Angle, &c.SizeMM); err != nil {
			continue
		}
		if i, ok := index[designID]; ok {
			designs[i].Cutters = append(designs[i].Cutters, c)
		}
	}
}

// CountDesigns returns the count of non-deleted designs.
func (r *SQLiteReader) CountDesigns() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM designs WHERE (deleted IS NULL OR deleted = 0)").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetLastModified returns the most recent design update time.
func (r *SQLiteReader) GetLastModified() (time.Time, error) {
	var updatedAt sql.NullTime
	err := r.db.QueryRow("SELECT MAX(updated_at) FROM designs").Scan(&updatedAt)
	if err != nil {
		return time.Time{}, err
	}
	if !updatedAt.Valid {
		return time.Time{}, nil
	}
	return updatedAt.Time, nil
}
