package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Generate  key.Binding
	Resume    key.Binding
	Reload    key.Binding
	Prev      key.Binding
	Next      key.Binding
	Flip      key.Binding
	Restart   key.Binding
	Edit      key.Binding
	Export    key.Binding
	Anki      key.Binding
	Cancel    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g", "ctrl+s"),
			key.WithHelp("C-g", "generate cards"),
		),
		Resume: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "back to deck"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "reload input file"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Flip: key.NewBinding(
			key.WithKeys(" ", "enter", "f"),
			key.WithHelp("space", "flip"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart deck"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit cards"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
		Anki: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "push to Anki"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Resume, k.Reload, k.ForceQuit}
}

func (k keyMap) studyHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Flip, k.Next, k.Restart, k.Edit, k.Export, k.Anki, k.Quit}
}
