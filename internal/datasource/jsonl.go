package datasource

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/drillworks/bithub/pkg/model"
)

// maxLineBytes bounds a single JSONL record; layouts with many cutter
// positions can run long.
const maxLineBytes = 4 * 1024 * 1024

// LoadDesignsFromJSONL reads a snapshot export: one design object per
// line, blank lines skipped. Malformed lines are reported through warn
// (may be nil) and skipped rather than failing the load.
func LoadDesignsFromJSONL(path string, warn func(string)) ([]model.Design, error) {
	if warn == nil {
		warn = func(string) {}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var designs []model.Design
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var d model.Design
		if err := json.Unmarshal([]byte(line), &d); err != nil {
			warn(fmt.Sprintf("%s:%d: skipping malformed design: %v", path, lineNo, err))
			continue
		}
		if d.ID == "" {
			warn(fmt.Sprintf("%s:%d: skipping design without id", path, lineNo))
			continue
		}
		designs = append(designs, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return designs, nil
}

// countJSONLDesigns counts parseable design lines, used for validation.
func countJSONLDesigns(path string) (int, error) {
	designs, err := LoadDesignsFromJSONL(path, nil)
	if err != nil {
		return 0, err
	}
	return len(designs), nil
}
