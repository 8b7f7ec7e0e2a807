package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Views
	Details key.Binding
	Back    key.Binding

	// Actions
	Cd          key.Binding
	Rescan      key.Binding
	ToggleClean key.Binding

	// Meta
	Help key.Binding
	Quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g/home", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "bottom"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter/l", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "h", "left"),
			key.WithHelp("esc/h", "back"),
		),
		Cd: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "cd & quit"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		ToggleClean: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clean on/off"),
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
}

func (k keyMap) helpText() string {
	format := func(b key.Binding) string {
		h := b.Help()
		return "  " + padRight(h.Key, 12) + h.Desc
	}

	return `Navigation
` + format(k.Up) + `
` + format(k.Down) + `
` + format(k.Top) + `
` + format(k.Bottom) + `
` + format(k.Details) + `
` + format(k.Back) + `

Actions
` + format(k.Cd) + `
` + format(k.Rescan) + `
` + format(k.ToggleClean) + `

` + format(k.Help) + `
` + format(k.Quit)
}
