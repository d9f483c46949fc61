//go:build ignore

// generate_testdata.go seeds a local shop directory with a synthetic
// design snapshot, handy for demos and manual testing without a real
// shop.db.
// Usage: go run scripts/generate_testdata.go [-n 50] [-dir .bithub]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/drillworks/bithub/pkg/testutil"
)

func main() {
	n := flag.Int("n", 50, "number of designs to generate")
	dir := flag.String("dir", ".bithub", "shop directory to write into")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "creating shop directory: %v\n", err)
		os.Exit(1)
	}

	path := filepath.Join(*dir, "designs.jsonl")
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating snapshot: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, d := range testutil.QuickRandom(*n) {
		if err := enc.Encode(d); err != nil {
			fmt.Fprintf(os.Stderr, "writing design %s: %v\n", d.ID, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Wrote %d designs to %s\n", *n, path)
}
