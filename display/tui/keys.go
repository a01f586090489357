package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the dashboard.
// It implements the help.KeyMap interface for bubbles/help integration.
type keyMap struct {
	Quit    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding

	Up       key.Binding
	Down     key.Binding
	ClearSel key.Binding

	SortName   key.Binding
	SortCPU    key.Binding
	SortMemory key.Binding
	SortStatus key.Binding

	Filter       key.Binding
	IntervalUp   key.Binding
	IntervalDown key.Binding
	EnergySaving key.Binding
	Refresh      key.Binding
	Export       key.Binding
	Kill         key.Binding
	Help         key.Binding
}

// ShortHelp returns the compact set of keybindings shown by default in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.NextTab, k.Filter, k.SortCPU, k.Quit}
}

// FullHelp returns the expanded keybinding groups shown when help is toggled.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Tab1, k.Tab2, k.Tab3},
		{k.Up, k.Down, k.ClearSel, k.Kill},
		{k.SortName, k.SortCPU, k.SortMemory, k.SortStatus, k.Filter},
		{k.IntervalUp, k.IntervalDown, k.EnergySaving, k.Refresh, k.Export},
		{k.Help, k.Quit},
	}
}

// defaultKeys holds the default key bindings used by the application.
var defaultKeys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NextTab: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next tab")),
	PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev tab")),
	Tab1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "processes")),
	Tab2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "system")),
	Tab3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "disks")),

	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "select prev")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/dn", "select next")),
	ClearSel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),

	SortName:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "sort by name")),
	SortCPU:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "sort by cpu")),
	SortMemory: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sort by memory")),
	SortStatus: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by status")),

	Filter:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	IntervalUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "slower refresh")),
	IntervalDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "faster refresh")),
	EnergySaving: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "energy saving")),
	Refresh:      key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh now")),
	Export:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export json")),
	Kill:         key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "terminate")),
	Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
