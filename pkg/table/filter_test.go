package table

import (
	"strings"
	"testing"

	"github.com/drillworks/bithub/pkg/model"
	"github.com/drillworks/bithub/pkg/testutil"
)

func TestFilterSingleColumn(t *testing.T) {
	s := newTestState(threeDesigns()...)

	if err := s.ApplyFilter(colStatus, CondEquals, "hold"); err != nil {
		t.Fatal(err)
	}
	if got := visibleDesignIDs(s); !equalStrings(got, []string{"BD-0001", "BD-0003"}) {
		t.Fatalf("visible = %v, want the two HOLD designs", got)
	}
}

func TestFiltersCompositeAND(t *testing.T) {
	s := newTestState(threeDesigns()...)

	if err := s.ApplyFilter(colStatus, CondEquals, "HOLD"); err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyFilter(colQty, CondGreaterThan, "10"); err != nil {
		t.Fatal(err)
	}

	// HOLD designs have qty 12 and 7; only the 12 survives both.
	if got := visibleDesignIDs(s); !equalStrings(got, []string{"BD-0001"}) {
		t.Fatalf("visible = %v, want only BD-0001", got)
	}
}

func TestFilterReplacesPerColumn(t *testing.T) {
	s := newTestState(threeDesigns()...)

	if err := s.ApplyFilter(colDesign, CondContains, "alp"); err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyFilter(colDesign, CondStartsWith, "br"); err != nil {
		t.Fatal(err)
	}

	filters := s.Filters()
	if len(filters) != 1 {
		t.Fatalf("filters = %+v, want exactly one for the column", filters)
	}
	if filters[0].Condition != CondStartsWith {
		t.Fatalf("condition = %v, want the replacement", filters[0].Condition)
	}
	if got := visibleDesignIDs(s); !equalStrings(got, []string{"BD-0003"}) {
		t.Fatalf("visible = %v, want only Bravo", got)
	}
}

func TestFilterReplaceKeepsChipPosition(t *testing.T) {
	s := newTestState(threeDesigns()...)

	s.ApplyFilter(colDesign, CondContains, "a")
	s.ApplyFilter(colQty, CondGreaterThan, "1")
	s.ApplyFilter(colDesign, CondContains, "b")

	chips := s.Chips()
	if len(chips) != 2 {
		t.Fatalf("chips = %+v, want two", chips)
	}
	if chips[0].Column != colDesign || chips[1].Column != colQty {
		t.Fatalf("chip order changed on replace: %+v", chips)
	}
}

func TestFilterRejectsEmptyOperand(t *testing.T) {
	s := newTestState(threeDesigns()...)

	if err := s.ApplyFilter(colDesign, CondContains, "   "); err == nil {
		t.Fatal("contains with blank operand did not error")
	}
	if err := s.ApplyFilter(colDesign, CondIsEmpty, ""); err != nil {
		t.Fatalf("is_empty with blank operand errored: %v", err)
	}
}

func TestFilterRejectsUnknownCondition(t *testing.T) {
	s := newTestState(threeDesigns()...)
	if err := s.ApplyFilter(colDesign, Condition("regex"), "x"); err == nil {
		t.Fatal("unknown condition did not error")
	}
	if err := s.ApplyFilter(99, CondContains, "x"); err == nil {
		t.Fatal("out-of-range column did not error")
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	s := newTestState(threeDesigns()...)
	s.ApplyFilter(colDesign, CondContains, "ALPH")
	if got := visibleDesignIDs(s); !equalStrings(got, []string{"BD-0002"}) {
		t.Fatalf("visible = %v, want Alpha despite operand case", got)
	}
}

func TestFilterIsEmptyMatchesPlaceholder(t *testing.T) {
	d := testutil.Design("BD-0001", "Alpha", model.StatusActive, 1, 0)
	d.BitType = "" // renders as the no-data placeholder
	e := testutil.Design("BD-0002", "Bravo", model.StatusActive, 1, 0)
	s := newTestState(d, e)

	s.ApplyFilter(colType, CondIsEmpty, "")
	if got := visibleDesignIDs(s); !equalStrings(got, []string{"BD-0001"}) {
		t.Fatalf("visible = %v, want the placeholder row", got)
	}

	s.ApplyFilter(colType, CondIsNotEmpty, "")
	if got := visibleDesignIDs(s); !equalStrings(got, []string{"BD-0002"}) {
		t.Fatalf("visible = %v, want the populated row", got)
	}
}

func TestFilterNumericConditionsSkipText(t *testing.T) {
	s := newTestState(threeDesigns()...)

	// Non-numeric operand matches nothing rather than erroring.
	s.ApplyFilter(colQty, CondGreaterThan, "lots")
	if got := visibleDesignIDs(s); len(got) != 0 {
		t.Fatalf("visible = %v, want none for non-numeric operand", got)
	}

	// Text cells never satisfy a numeric condition.
	s.ClearAllFilters()
	s.ApplyFilter(colType, CondLessThan, "10")
	if got := visibleDesignIDs(s); len(got) != 0 {
		t.Fatalf("visible = %v, want none for text column", got)
	}
}

func TestClearFilterRestoresRows(t *testing.T) {
	s := newTestState(threeDesigns()...)

	s.ApplyFilter(colStatus, CondEquals, "hold")
	s.ApplyFilter(colQty, CondLessThan, "10")
	s.ClearFilter(colStatus)

	if _, ok := s.FilterFor(colStatus); ok {
		t.Fatal("status filter still present after clear")
	}
	// qty < 10 alone leaves Alpha (3) and Bravo (7).
	if got := visibleDesignIDs(s); !equalStrings(got, []string{"BD-0002", "BD-0003"}) {
		t.Fatalf("visible = %v", got)
	}

	s.ClearAllFilters()
	if got := visibleDesignIDs(s); len(got) != 3 {
		t.Fatalf("visible after reset = %v, want all three", got)
	}
}

func TestChipLabels(t *testing.T) {
	s := newTestState(threeDesigns()...)
	s.ApplyFilter(colStatus, CondEquals, "HOLD")
	s.ApplyFilter(colQty, CondIsNotEmpty, "")

	chips := s.Chips()
	if len(chips) != 2 {
		t.Fatalf("chips = %+v", chips)
	}
	if want := `Status equals "HOLD"`; chips[0].Label != want {
		t.Fatalf("chip label = %q, want %q", chips[0].Label, want)
	}
	if strings.Contains(chips[1].Label, `"`) {
		t.Fatalf("emptiness chip carries an operand: %q", chips[1].Label)
	}
}
