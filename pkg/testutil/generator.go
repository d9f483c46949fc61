// Package testutil provides deterministic test fixtures for the hub:
// synthetic bit designs with BOM levels and cutter layouts.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/drillworks/bithub/pkg/model"
)

var statuses = []model.Status{
	model.StatusActive, model.StatusPrototype, model.StatusHold,
	model.StatusRepair, model.StatusObsolete,
}

var bitTypes = []string{"PDC", "Tricone", "Hybrid", "Diamond"}

// QuickRandom generates n deterministic designs seeded from n itself,
// each with 0-3 BOM levels. Useful where the exact values don't matter.
func QuickRandom(n int) []model.Design {
	rng := rand.New(rand.NewSource(int64(n)))
	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	designs := make([]model.Design, 0, n)
	for i := 0; i < n; i++ {
		d := model.Design{
			ID:          fmt.Sprintf("BD-%04d", i+1),
			Name:        fmt.Sprintf("Design %d", i+1),
			SizeIn:      []float64{6.25, 8.5, 12.25, 17.5}[rng.Intn(4)],
			BitType:     bitTypes[rng.Intn(len(bitTypes))],
			BladeCount:  3 + rng.Intn(6),
			CutterCount: 20 + rng.Intn(60),
			Status:      statuses[rng.Intn(len(statuses))],
			Qty:         1 + rng.Intn(20),
			CreatedAt:   base.AddDate(0, 0, -rng.Intn(365)),
			UpdatedAt:   base.AddDate(0, 0, -rng.Intn(30)),
		}
		nLevels := rng.Intn(4)
		for lvl := 1; lvl <= nLevels; lvl++ {
			d.Levels = append(d.Levels, model.Level{
				DesignID:   d.ID,
				Number:     lvl,
				Component:  fmt.Sprintf("Cutter row %d", lvl),
				CutterSize: fmt.Sprintf("%dmm", 13+3*rng.Intn(3)),
				Qty:        4 + rng.Intn(12),
				Material:   "PDC",
			})
		}
		designs = append(designs, d)
	}
	return designs
}

// Design builds one fully-populated design for targeted tests.
func Design(id, name string, status model.Status, qty int, levels int) model.Design {
	d := model.Design{
		ID:          id,
		Name:        name,
		SizeIn:      8.5,
		BitType:     "PDC",
		BladeCount:  5,
		CutterCount: 42,
		Status:      status,
		Qty:         qty,
		CreatedAt:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for lvl := 1; lvl <= levels; lvl++ {
		d.Levels = append(d.Levels, model.Level{
			DesignID:  id,
			Number:    lvl,
			Component: fmt.Sprintf("Cutter row %d", lvl),
			Qty:       8,
		})
	}
	return d
}

// GridDesign builds a design with a symmetric cutter layout for grid
// snapshot tests.
func GridDesign(id string, blades, cuttersPerBlade int) model.Design {
	d := Design(id, "Grid fixture", model.StatusActive, 1, 0)
	d.BladeCount = blades
	for b := 1; b <= blades; b++ {
		angle := 360.0 * float64(b-1) / float64(blades)
		for s := 1; s <= cuttersPerBlade; s++ {
			d.Cutters = append(d.Cutters, model.CutterPos{
				Blade:  b,
				Slot:   s,
				Radius: 20.0 * float64(s),
				Angle:  angle,
				SizeMM: 16,
			})
		}
	}
	d.CutterCount = len(d.Cutters)
	return d
}
