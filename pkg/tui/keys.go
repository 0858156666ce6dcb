package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the chart view.
type keyMap struct {
	Quit   key.Binding
	Sample key.Binding
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sample, k.Quit}
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Sample: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "sample now")),
}
