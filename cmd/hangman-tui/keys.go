package main

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Start key.Binding
	Daily key.Binding

	Hint  key.Binding
	New   key.Binding
	Board key.Binding
	Menu  key.Binding

	SortResult key.Binding
	SortTime   key.Binding
	SortDate   key.Binding

	Quit key.Binding
}

var Keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Start: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "start"),
	),
	Daily: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "word of the day"),
	),
	Hint: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "hint"),
	),
	New: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "new word"),
	),
	Board: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "leaderboard"),
	),
	Menu: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "menu"),
	),
	SortResult: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "sort by result"),
	),
	SortTime: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "sort by time"),
	),
	SortDate: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "sort by date"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// helpLine renders "key action" pairs for the footer.
func helpLine(bs ...key.Binding) string {
	out := ""
	for i, b := range bs {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
