package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextMetric key.Binding
	PrevMetric key.Binding
	Window     key.Binding
	Refresh    key.Binding
	Theme      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	NextMetric: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab", "next metric"),
	),
	PrevMetric: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab", "prev metric"),
	),
	Window: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "window"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMetric, k.Window, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextMetric, k.PrevMetric, k.Window},
		{k.Refresh, k.Theme, k.Help, k.Quit},
	}
}
