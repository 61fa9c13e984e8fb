package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next, Prev    key.Binding
	StatusPrev    key.Binding
	StatusNext    key.Binding
	Query, Feed   key.Binding
	Save, Retry   key.Binding
	Results, Quit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:       key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		StatusPrev: key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "status")),
		StatusNext: key.NewBinding(key.WithKeys("right")),
		Query:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "query")),
		Feed:       key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "activity feed")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save settings")),
		Retry:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry login")),
		Results:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "browse results")),
		Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Query, k.Feed, k.Next, k.StatusPrev, k.Save, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Query, k.Feed, k.Results},
		{k.Next, k.Prev, k.StatusPrev},
		{k.Save, k.Retry, k.Quit},
	}
}
