package model

import (
	"fmt"
	"strconv"
)

// NoData is the placeholder rendered into cells that have no value.
// The filter engine's emptiness conditions treat it as blank.
const NoData = "—"

// RowKind distinguishes top-level design rows from their dependent
// bill-of-material level rows.
type RowKind int

const (
	KindDesign RowKind = iota
	KindLevel
)

// Column describes one hub table column: a stable ordinal, the key used
// for preference persistence, and the display label. Ordinals never
// change for the lifetime of a table instance; only visibility does.
type Column struct {
	Ordinal int
	Key     string
	Label   string
}

// HubColumns is the column set of the bit design hub view. Ordinal 0 is
// the anchor column carrying the expand toggle; it can never be hidden.
var HubColumns = []Column{
	{0, "design", "Design"},
	{1, "size", "Size"},
	{2, "type", "Type"},
	{3, "blades", "Blades"},
	{4, "cutters", "Cutters"},
	{5, "status", "Status"},
	{6, "qty", "Qty"},
	{7, "updated", "Updated"},
}

// ColumnByKey returns the column with the given preference key, or nil.
func ColumnByKey(cols []Column, key string) *Column {
	for i := range cols {
		if cols[i].Key == key {
			return &cols[i]
		}
	}
	return nil
}

// Row is one rendered record of the hub table. Cells hold the rendered
// text per column ordinal; the table engine reads cell text only, it
// never reaches back into the domain structs. Level rows carry the ID
// of their parent design and inherit its visibility.
type Row struct {
	ID       string
	Kind     RowKind
	DesignID string
	Cells    []string
}

// IsLevel reports whether the row is a dependent level row.
func (r Row) IsLevel() bool { return r.Kind == KindLevel }

// BuildRows projects designs and their levels into display rows in
// document order: each design row immediately followed by its level
// rows. Level rows get synthetic IDs derived from the parent.
func BuildRows(designs []Design) []Row {
	rows := make([]Row, 0, len(designs))
	for i := range designs {
		d := &designs[i]
		rows = append(rows, designRow(d))
		for j := range d.Levels {
			rows = append(rows, levelRow(d.ID, &d.Levels[j]))
		}
	}
	return rows
}

func designRow(d *Design) Row {
	return Row{
		ID:   d.ID,
		Kind: KindDesign,
		Cells: []string{
			orPlaceholder(d.Name),
			formatFloat(d.SizeIn),
			orPlaceholder(d.BitType),
			formatInt(d.BladeCount),
			formatInt(d.CutterCount),
			orPlaceholder(string(d.Status)),
			formatInt(d.Qty),
			formatDate(d),
		},
	}
}

func levelRow(designID string, l *Level) Row {
	return Row{
		ID:       fmt.Sprintf("%s/L%d", designID, l.Number),
		Kind:     KindLevel,
		DesignID: designID,
		Cells: []string{
			fmt.Sprintf("Level %d", l.Number),
			orPlaceholder(l.CutterSize),
			orPlaceholder(l.Component),
			NoData,
			NoData,
			orPlaceholder(l.Material),
			formatInt(l.Qty),
			orPlaceholder(l.Notes),
		},
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return NoData
	}
	return s
}

func formatInt(n int) string {
	if n == 0 {
		return NoData
	}
	return strconv.Itoa(n)
}

func formatFloat(f float64) string {
	if f == 0 {
		return NoData
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatDate(d *Design) string {
	if d.UpdatedAt.IsZero() {
		return NoData
	}
	return d.UpdatedAt.Format("2006-01-02")
}
