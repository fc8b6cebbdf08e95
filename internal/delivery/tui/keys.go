package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the trainer key bindings.
type keyMap struct {
	Select key.Binding
	Check  key.Binding
	Reveal key.Binding
	Prev   key.Binding
	Next   key.Binding
	Finish key.Binding
	Start  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Select: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "select"),
		),
		Check: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "check"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reveal"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next"),
		),
		Finish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "finish"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "new session"),
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

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Check, k.Prev, k.Next, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Select, k.Check, k.Reveal},
		{k.Prev, k.Next, k.Finish},
		{k.Start, k.Help, k.Quit},
	}
}
