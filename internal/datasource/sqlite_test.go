package datasource

import (
	"database/sql"
	"path/filepath"
	"testing"
)

const shopSchema = `
CREATE TABLE designs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	size_in REAL,
	bit_type TEXT,
	blade_count INTEGER,
	cutter_count INTEGER,
	status TEXT,
	qty INTEGER,
	material TEXT,
	created_at TIMESTAMP,
	updated_at TIMESTAMP,
	deleted INTEGER
);
CREATE TABLE design_levels (
	design_id TEXT NOT NULL,
	level_number INTEGER NOT NULL,
	component TEXT NOT NULL,
	cutter_size TEXT,
	qty INTEGER,
	material TEXT,
	notes TEXT
);
CREATE TABLE cutters (
	design_id TEXT NOT NULL,
	blade INTEGER NOT NULL,
	slot INTEGER NOT NULL,
	radius REAL,
	angle REAL,
	size_mm REAL
);
`

func createShopDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(shopSchema); err != nil {
		t.Fatal(err)
	}

	exec := func(q string, args ...any) {
		t.Helper()
		if _, err := db.Exec(q, args...); err != nil {
			t.Fatal(err)
		}
	}
	exec(`INSERT INTO designs (id, name, size_in, bit_type, blade_count, cutter_count, status, qty, deleted)
	      VALUES ('BD-0001', 'Gauge runner', 8.5, 'PDC', 5, 42, 'ACTIVE', 3, 0)`)
	exec(`INSERT INTO designs (id, name, status, qty)
	      VALUES ('BD-0002', 'Sparse', 'HOLD', NULL)`)
	exec(`INSERT INTO designs (id, name, status, deleted)
	      VALUES ('BD-0003', 'Scrapped', 'OBSOLETE', 1)`)
	exec(`INSERT INTO design_levels (design_id, level_number, component, cutter_size, qty)
	      VALUES ('BD-0001', 1, 'Cutter row 1', '16mm', 8)`)
	exec(`INSERT INTO design_levels (design_id, level_number, component, qty)
	      VALUES ('BD-0001', 2, 'Gauge pads', 5)`)
	exec(`INSERT INTO cutters (design_id, blade, slot, radius, angle, size_mm)
	      VALUES ('BD-0001', 1, 1, 20.0, 0.0, 16.0)`)

	return path
}

func TestSQLiteLoadDesigns(t *testing.T) {
	path := createShopDB(t)

	reader, err := NewSQLiteReader(DataSource{Type: SourceTypeSQLite, Path: path})
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	designs, err := reader.LoadDesigns()
	if err != nil {
		t.Fatal(err)
	}

	// The soft-deleted design never loads.
	if len(designs) != 2 {
		t.Fatalf("designs = %d, want 2", len(designs))
	}

	byID := make(map[string]int)
	for i, d := range designs {
		byID[d.ID] = i
	}
	if _, ok := byID["BD-0003"]; ok {
		t.Fatal("deleted design loaded")
	}

	full := designs[byID["BD-0001"]]
	if full.Name != "Gauge runner" || full.SizeIn != 8.5 || full.BladeCount != 5 || full.Qty != 3 {
		t.Fatalf("full design = %+v", full)
	}
	if len(full.Levels) != 2 || full.Levels[1].Component != "Gauge pads" {
		t.Fatalf("levels = %+v", full.Levels)
	}
	if len(full.Cutters) != 1 || full.Cutters[0].SizeMM != 16 {
		t.Fatalf("cutters = %+v", full.Cutters)
	}

	// NULL numeric columns read as zero values.
	sparse := designs[byID["BD-0002"]]
	if sparse.Qty != 0 || sparse.SizeIn != 0 || sparse.BitType != "" {
		t.Fatalf("sparse design = %+v", sparse)
	}
}

func TestSQLiteCountDesigns(t *testing.T) {
	path := createShopDB(t)

	reader, err := NewSQLiteReader(DataSource{Type: SourceTypeSQLite, Path: path})
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	count, err := reader.CountDesigns()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2 (deleted excluded)", count)
	}
}

func TestSQLiteRejectsWrongType(t *testing.T) {
	if _, err := NewSQLiteReader(DataSource{Type: SourceTypeJSONL, Path: "x"}); err == nil {
		t.Fatal("JSONL source opened as SQLite")
	}
}

func TestValidateSQLiteSource(t *testing.T) {
	path := createShopDB(t)

	s := DataSource{Type: SourceTypeSQLite, Path: path}
	if err := ValidateSource(&s); err != nil {
		t.Fatal(err)
	}
	if !s.Valid || s.DesignCount != 2 {
		t.Fatalf("source = %+v", s)
	}
}

func TestLoadFromSQLiteSource(t *testing.T) {
	path := createShopDB(t)

	designs, err := LoadFromSource(DataSource{Type: SourceTypeSQLite, Path: path})
	if err != nil {
		t.Fatal(err)
	}
	if len(designs) != 2 {
		t.Fatalf("designs = %d", len(designs))
	}
}
