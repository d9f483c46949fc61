package export

import (
	"strings"

	"github.com/atotto/clipboard"

	"github.com/drillworks/bithub/pkg/model"
	"github.com/drillworks/bithub/pkg/table"
)

// CopyCSVToClipboard places the current CSV export on the system
// clipboard.
func CopyCSVToClipboard(s *table.State) error {
	data, err := BuildCSV(s)
	if err != nil {
		return err
	}
	return clipboard.WriteAll(string(data))
}

// CopyRowToClipboard copies one row as a tab-separated line of its
// visible cells, handy for pasting a design into a job card or chat.
func CopyRowToClipboard(s *table.State, r model.Row) error {
	cols := s.VisibleColumns()
	fields := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.Ordinal < len(r.Cells) {
			fields = append(fields, r.Cells[c.Ordinal])
		}
	}
	return clipboard.WriteAll(strings.Join(fields, "\t"))
}
