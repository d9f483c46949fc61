package table

import (
	"github.com/drillworks/bithub/pkg/model"
	"github.com/drillworks/bithub/pkg/testutil"
)

// Cell ordinals of the hub column set, for test readability.
const (
	colDesign = 0
	colSize   = 1
	colType   = 2
	colStatus = 5
	colQty    = 6
	colDate   = 7
)

func newTestState(designs ...model.Design) *State {
	return New(model.HubColumns, model.BuildRows(designs))
}

// threeDesigns is the standard fixture: distinct names, statuses and
// quantities, with Bravo carrying two BOM levels.
func threeDesigns() []model.Design {
	a := testutil.Design("BD-0001", "Charlie", model.StatusHold, 12, 0)
	b := testutil.Design("BD-0002", "Alpha", model.StatusActive, 3, 0)
	c := testutil.Design("BD-0003", "Bravo", model.StatusHold, 7, 2)
	return []model.Design{a, b, c}
}

func designOrder(s *State) []string {
	var out []string
	for _, r := range s.Rows() {
		if !r.IsLevel() {
			out = append(out, r.ID)
		}
	}
	return out
}

func visibleDesignIDs(s *State) []string {
	var out []string
	for _, r := range s.VisibleRows() {
		if !r.IsLevel() {
			out = append(out, r.ID)
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
