// Package model defines the core domain types for bithub: bit designs,
// their bill-of-material levels, and the row projection consumed by the
// hub table.
package model

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a bit design.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusPrototype Status = "PROTOTYPE"
	StatusHold      Status = "HOLD"
	StatusRepair    Status = "REPAIR"
	StatusObsolete  Status = "OBSOLETE"
)

// CutterPos is one cutter position on the bit face, addressed by blade
// and slot. Radius is the distance from the bit axis in millimeters,
// Angle the angular position of the blade in degrees.
type CutterPos struct {
	Blade  int     `json:"blade"`
	Slot   int     `json:"slot"`
	Radius float64 `json:"radius"`
	Angle  float64 `json:"angle"`
	SizeMM float64 `json:"size_mm"`
}

// Level is one bill-of-material level of a design: a component row
// scoped to its parent design. Levels are never shown independently;
// the hub table renders them beneath their expanded parent.
type Level struct {
	DesignID   string `json:"design_id"`
	Number     int    `json:"number"`
	Component  string `json:"component"`
	CutterSize string `json:"cutter_size,omitempty"`
	Qty        int    `json:"qty"`
	Material   string `json:"material,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Design is a top-level bit design record.
type Design struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	SizeIn      float64     `json:"size_in"`
	BitType     string      `json:"bit_type"`
	BladeCount  int         `json:"blade_count"`
	CutterCount int         `json:"cutter_count"`
	Status      Status      `json:"status"`
	Qty         int         `json:"qty"`
	Material    string      `json:"material,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Cutters     []CutterPos `json:"cutters,omitempty"`
	Levels      []Level     `json:"levels,omitempty"`
}

// String returns a short human-readable description of the design.
func (d Design) String() string {
	return fmt.Sprintf("%s %s (%.2f\" %s, %d blades, %s)",
		d.ID, d.Name, d.SizeIn, d.BitType, d.BladeCount, d.Status)
}
