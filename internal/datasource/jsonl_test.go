package datasource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const jsonlFixture = `{"id":"BD-0001","name":"Gauge runner","size_in":8.5,"bit_type":"PDC","blade_count":5,"cutter_count":42,"status":"ACTIVE","qty":3}

{"id":"BD-0002","name":"Shorty","status":"HOLD","qty":1,"levels":[{"design_id":"BD-0002","number":1,"component":"Cutter row 1","qty":8}]}
{this line is not json}
{"name":"no id here"}
`

func writeJSONL(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDesignsFromJSONL(t *testing.T) {
	path := writeJSONL(t, t.TempDir(), "designs.jsonl", jsonlFixture)

	var warnings []string
	designs, err := LoadDesignsFromJSONL(path, func(msg string) {
		warnings = append(warnings, msg)
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(designs) != 2 {
		t.Fatalf("designs = %d, want 2", len(designs))
	}
	if designs[0].ID != "BD-0001" || designs[0].SizeIn != 8.5 {
		t.Fatalf("designs[0] = %+v", designs[0])
	}
	if len(designs[1].Levels) != 1 || designs[1].Levels[0].Component != "Cutter row 1" {
		t.Fatalf("levels = %+v", designs[1].Levels)
	}

	// Malformed line and missing-id line both warn, neither fails.
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v", warnings)
	}
	if !strings.Contains(warnings[0], "malformed") {
		t.Fatalf("warnings[0] = %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "without id") {
		t.Fatalf("warnings[1] = %q", warnings[1])
	}
}

func TestLoadDesignsFromJSONLMissingFile(t *testing.T) {
	_, err := LoadDesignsFromJSONL(filepath.Join(t.TempDir(), "nope.jsonl"), nil)
	if err == nil {
		t.Fatal("missing file did not error")
	}
}

func TestCountJSONLDesigns(t *testing.T) {
	path := writeJSONL(t, t.TempDir(), "designs.jsonl", jsonlFixture)
	count, err := countJSONLDesigns(path)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}
