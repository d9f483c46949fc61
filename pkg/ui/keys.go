package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the hub's keyboard surface.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Toggle      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Sort        key.Binding
	SortAdd     key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Columns     key.Binding
	Select      key.Binding
	Export      key.Binding
	ExportGrid  key.Binding
	Copy        key.Binding
	Delete      key.Binding
	ServerCSV   key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "focus column left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "focus column right")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Toggle:      key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "expand/collapse")),
		ExpandAll:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "collapse all")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by column")),
		SortAdd:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "add sort key")),
		Filter:      key.NewBinding(key.WithKeys("f", "/"), key.WithHelp("f", "filter")),
		ClearFilter: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "clear filters")),
		Columns:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "columns")),
		Select:      key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "select")),
		Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export CSV")),
		ExportGrid:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "grid snapshot")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy row")),
		Delete:      key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete selected")),
		ServerCSV:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "server export")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
