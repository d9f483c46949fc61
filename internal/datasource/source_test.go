package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestShopDirResolution(t *testing.T) {
	t.Setenv("BDH_SHOP_DIR", "/srv/env-shop")
	if got := ShopDir("/srv/explicit"); got != "/srv/explicit" {
		t.Fatalf("explicit dir lost: %q", got)
	}
	if got := ShopDir(""); got != "/srv/env-shop" {
		t.Fatalf("env dir lost: %q", got)
	}

	t.Setenv("BDH_SHOP_DIR", "")
	wd, _ := os.Getwd()
	if got := ShopDir(""); got != filepath.Join(wd, ".bithub") {
		t.Fatalf("default dir = %q", got)
	}
}

func TestDiscoverSourcesEmptyDir(t *testing.T) {
	sources, err := DiscoverSources(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 0 {
		t.Fatalf("sources = %v", sources)
	}
}

func TestDiscoverSourcesSkipsBackups(t *testing.T) {
	dir := t.TempDir()
	writeJSONL(t, dir, "designs.jsonl", "")
	writeJSONL(t, dir, "designs.jsonl.backup", "")
	writeJSONL(t, dir, "designs.orig.jsonl", "")
	writeJSONL(t, dir, "notes.txt", "")

	sources, err := DiscoverSources(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 || filepath.Base(sources[0].Path) != "designs.jsonl" {
		t.Fatalf("sources = %v", sources)
	}
	if sources[0].Type != SourceTypeJSONL || sources[0].Priority != PriorityJSONL {
		t.Fatalf("sources[0] = %+v", sources[0])
	}
}

func TestDiscoverSourcesFreshestFirst(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "shop.db")
	if err := os.WriteFile(dbPath, []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}
	jlPath := writeJSONL(t, dir, "designs.jsonl", "")

	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(dbPath, old, old); err != nil {
		t.Fatal(err)
	}

	sources, err := DiscoverSources(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 {
		t.Fatalf("sources = %v", sources)
	}
	if sources[0].Path != jlPath {
		t.Fatalf("freshest not first: %v", sources)
	}

	// At equal timestamps the database outranks the snapshot.
	if err := os.Chtimes(dbPath, old, sources[0].ModTime); err != nil {
		t.Fatal(err)
	}
	sources, err = DiscoverSources(dir)
	if err != nil {
		t.Fatal(err)
	}
	if sources[0].Type != SourceTypeSQLite {
		t.Fatalf("priority tiebreak failed: %v", sources)
	}
}

func TestSelectBestSourceSkipsInvalid(t *testing.T) {
	sources := []DataSource{
		{Type: SourceTypeJSONL, Path: "a.jsonl", Valid: false, ValidationError: "garbage"},
		{Type: SourceTypeJSONL, Path: "b.jsonl", Valid: true},
	}
	best, err := SelectBestSource(sources)
	if err != nil {
		t.Fatal(err)
	}
	if best.Path != "b.jsonl" {
		t.Fatalf("best = %+v", best)
	}

	if _, err := SelectBestSource(sources[:1]); err == nil {
		t.Fatal("all-invalid set did not error")
	}
}

func TestValidateJSONLSource(t *testing.T) {
	dir := t.TempDir()
	path := writeJSONL(t, dir, "designs.jsonl", jsonlFixture)

	s := DataSource{Type: SourceTypeJSONL, Path: path}
	if err := ValidateSource(&s); err != nil {
		t.Fatal(err)
	}
	if !s.Valid || s.DesignCount != 2 {
		t.Fatalf("source = %+v", s)
	}

	bad := DataSource{Type: SourceTypeJSONL, Path: filepath.Join(dir, "missing.jsonl")}
	if err := ValidateSource(&bad); err == nil {
		t.Fatal("missing file validated")
	}
	if bad.Valid || bad.ValidationError == "" {
		t.Fatalf("bad = %+v", bad)
	}
}

func TestLoadDesignsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeJSONL(t, dir, "designs.jsonl", jsonlFixture)

	designs, err := LoadDesigns(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(designs) != 2 {
		t.Fatalf("designs = %d", len(designs))
	}
}

func TestLoadDesignsNoSources(t *testing.T) {
	if _, err := LoadDesigns(t.TempDir()); err == nil {
		t.Fatal("empty shop dir did not error")
	}
}
