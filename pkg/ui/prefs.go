package ui

import (
	"github.com/drillworks/bithub/pkg/prefs"
	"github.com/drillworks/bithub/pkg/table"
)

// snapshotFrom projects the state's preference-relevant pieces into the
// serializable snapshot shape.
func snapshotFrom(s *table.State) prefs.Snapshot {
	snap := prefs.Snapshot{
		ExpandedDesigns: s.ExpandedIDs(),
		HiddenColumns:   s.HiddenColumns(),
	}
	for _, k := range s.SortKeys() {
		snap.SortColumns = append(snap.SortColumns, prefs.SortColumn{
			Column:    k.Column,
			Direction: k.Direction.String(),
		})
	}
	for _, f := range s.Filters() {
		snap.Filters = append(snap.Filters, prefs.FilterEntry{
			Column:    f.Column,
			Condition: string(f.Condition),
			Value:     f.Operand,
		})
	}
	return snap
}

// ApplyPreferences restores a persisted snapshot into the state.
// Invalid entries are dropped by Restore, never fatal.
func ApplyPreferences(s *table.State, snap *prefs.Snapshot) {
	if snap == nil {
		return
	}
	sorts := make([]table.SortKey, 0, len(snap.SortColumns))
	for _, k := range snap.SortColumns {
		sorts = append(sorts, table.SortKey{
			Column:    k.Column,
			Direction: table.ParseDirection(k.Direction),
		})
	}
	filters := make([]table.Filter, 0, len(snap.Filters))
	for _, f := range snap.Filters {
		filters = append(filters, table.Filter{
			Column:    f.Column,
			Condition: table.Condition(f.Condition),
			Operand:   f.Value,
		})
	}
	s.Restore(snap.ExpandedDesigns, sorts, filters, snap.HiddenColumns)
}

// WirePersistence connects state mutations to the preference store:
// every preference-relevant mutation writes the local tier synchronously
// and kicks off the background remote write. Both arguments are shared
// pointers, so the closure stays valid across model copies.
func WirePersistence(s *table.State, store *prefs.Store) {
	s.OnMutate(func() {
		// Local-tier errors are already descriptive; nothing useful to
		// add here, and a failed persist must not block the interaction.
		_ = store.Save(snapshotFrom(s), s.VisibleColumnKeys(), nil)
	})
}
