// Package prefs persists hub view preferences: the expansion set, sort
// keys, filters and hidden columns a user has chosen for one table view.
//
// Storage is two-tier. The local tier is a JSON file under the state
// directory, written synchronously on every mutation so a restart always
// sees the latest choice. The remote tier is the MES server's
// user-preference endpoint, written best-effort in the background;
// remote failure never surfaces beyond a log line and the local file
// stays authoritative until the next successful sync. Files are
// namespaced by view name so distinct tables never collide.
package prefs

// SortColumn is one persisted sort key. Direction is "asc" or "desc".
type SortColumn struct {
	Column    int    `json:"column"`
	Direction string `json:"direction"`
}

// FilterEntry is one persisted column filter.
type FilterEntry struct {
	Column    int    `json:"column"`
	Condition string `json:"condition"`
	Value     string `json:"value"`
}

// Snapshot is the serializable projection of a view's preference state
// at a point in time. A fresh snapshot is produced on every mutating
// user action.
type Snapshot struct {
	ExpandedDesigns []string      `json:"expandedDesigns"`
	SortColumns     []SortColumn  `json:"sortColumns"`
	Filters         []FilterEntry `json:"filters"`
	HiddenColumns   []int         `json:"hiddenColumns"`
}

// Empty reports whether the snapshot carries no preference at all.
func (s Snapshot) Empty() bool {
	return len(s.ExpandedDesigns) == 0 && len(s.SortColumns) == 0 &&
		len(s.Filters) == 0 && len(s.HiddenColumns) == 0
}
