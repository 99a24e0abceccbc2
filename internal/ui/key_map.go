package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	prev          key.Binding
	next          key.Binding
	regenerate    key.Binding
	regenerateAll key.Binding
	cards         key.Binding
	enter         key.Binding
	back          key.Binding
	help          key.Binding
	quit          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		prev:          key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		next:          key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		regenerate:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "regenerate card")),
		regenerateAll: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "regenerate all")),
		cards:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "cards")),
		enter:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.prev, k.next, k.cards, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.prev, k.next, k.cards},
		{k.regenerate, k.regenerateAll},
		{k.back, k.help, k.quit},
	}
}
