package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"todolist/internal/config"
)

type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Complete key.Binding
	Delete   key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys(k.Quit), key.WithHelp(k.Quit, "quit")),
		Up:       key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp("↑/"+k.Up, "up")),
		Down:     key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp("↓/"+k.Down, "down")),
		Next:     key.NewBinding(key.WithKeys(k.Next), key.WithHelp(k.Next, "next")),
		Prev:     key.NewBinding(key.WithKeys(k.Prev), key.WithHelp(k.Prev, "prev")),
		Confirm:  key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "ok")),
		Cancel:   key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "deselect")),
		Complete: key.NewBinding(key.WithKeys(k.Complete), key.WithHelp(k.Complete, "complete")),
		Delete:   key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Confirm, k.Up, k.Down, k.Complete, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Confirm, k.Cancel},
		{k.Up, k.Down, k.Complete, k.Delete, k.Quit},
	}
}
