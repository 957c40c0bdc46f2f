package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Confirm    key.Binding
	Select     key.Binding
	Close      key.Binding
	Blur       key.Binding
	Quit       key.Binding
	Clear      key.Binding
	DeleteWord key.Binding
	Backspace  key.Binding
	LineStart  key.Binding
	LineEnd    key.Binding
	WordLeft   key.Binding
	WordRight  key.Binding
	Left       key.Binding
	Right      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
		Down:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Select:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select option")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Blur:       key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "leave")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Clear:      key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear")),
		DeleteWord: key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace"), key.WithHelp("ctrl+w", "delete word")),
		Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		LineStart:  key.NewBinding(key.WithKeys("ctrl+a", "home")),
		LineEnd:    key.NewBinding(key.WithKeys("ctrl+e", "end")),
		WordLeft:   key.NewBinding(key.WithKeys("alt+b", "alt+left", "ctrl+left")),
		WordRight:  key.NewBinding(key.WithKeys("alt+f", "alt+right", "ctrl+right")),
		Left:       key.NewBinding(key.WithKeys("left", "ctrl+b")),
		Right:      key.NewBinding(key.WithKeys("right", "ctrl+f")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Close, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Confirm, k.Select, k.Close, k.Blur},
		{k.Clear, k.DeleteWord, k.Quit},
	}
}
