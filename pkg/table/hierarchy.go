package table

// Toggle flips a design's membership in the expansion set. Expanding
// makes its level rows participate in rendering immediately; collapsing
// removes them. A design with no level rows still toggles its icon
// state, which is allowed and has no further visible effect. Toggling
// never changes filter visibility and vice versa.
func (s *State) Toggle(designID string) {
	if !s.isDesign(designID) {
		return
	}
	if s.expanded[designID] {
		delete(s.expanded, designID)
	} else {
		s.expanded[designID] = true
	}
	s.notify()
}

// IsExpanded reports whether a design is in the expansion set.
func (s *State) IsExpanded(designID string) bool { return s.expanded[designID] }

// ExpandAll expands every design row. Idempotent: a second call is a
// no-op and does not persist again.
func (s *State) ExpandAll() {
	changed := false
	for _, r := range s.rows {
		if !r.IsLevel() && !s.expanded[r.ID] {
			s.expanded[r.ID] = true
			changed = true
		}
	}
	if changed {
		s.notify()
	}
}

// CollapseAll empties the expansion set. Idempotent.
func (s *State) CollapseAll() {
	if len(s.expanded) == 0 {
		return
	}
	s.expanded = make(map[string]bool)
	s.notify()
}

func (s *State) isDesign(id string) bool {
	for _, r := range s.rows {
		if !r.IsLevel() && r.ID == id {
			return true
		}
	}
	return false
}

// HasLevels reports whether a design has any level rows, used by the
// renderer to decide between a toggle glyph and a blank anchor cell.
func (s *State) HasLevels(designID string) bool {
	for _, r := range s.rows {
		if r.IsLevel() && r.DesignID == designID {
			return true
		}
	}
	return false
}
