package table

import (
	"testing"
)

func TestDispatchRoutesIntents(t *testing.T) {
	s := newTestState(threeDesigns()...)

	steps := []Request{
		{Intent: IntentToggleExpand, DesignID: "BD-0003"},
		{Intent: IntentSort, Column: colQty},
		{Intent: IntentFilterApply, Column: colStatus, Condition: CondEquals, Operand: "hold"},
		{Intent: IntentColumnToggle, Column: colType, Visible: false},
		{Intent: IntentToggleSelect, DesignID: "BD-0001"},
	}
	for _, r := range steps {
		if err := s.Dispatch(r); err != nil {
			t.Fatalf("Dispatch(%s): %v", r.Intent, err)
		}
	}

	if !s.IsExpanded("BD-0003") || len(s.SortKeys()) != 1 || len(s.Filters()) != 1 {
		t.Fatal("dispatched mutations not applied")
	}
	if s.ColumnVisible(colType) || !s.Selected("BD-0001") {
		t.Fatal("dispatched mutations not applied")
	}

	if err := s.Dispatch(Request{Intent: IntentFilterReset}); err != nil {
		t.Fatal(err)
	}
	if len(s.Filters()) != 0 {
		t.Fatal("filter reset did not clear")
	}
}

func TestDispatchUnknownIntent(t *testing.T) {
	s := newTestState(threeDesigns()...)
	if err := s.Dispatch(Request{Intent: Intent("explode")}); err == nil {
		t.Fatal("unknown intent did not error")
	}
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	s := newTestState(threeDesigns()...)
	err := s.Dispatch(Request{Intent: IntentFilterApply, Column: colDesign, Condition: CondContains, Operand: ""})
	if err == nil {
		t.Fatal("invalid filter request did not propagate error")
	}
}
