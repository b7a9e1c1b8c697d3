package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle, Delete, Open, Add, Reload, Clear key.Binding
	Back, Submit, Quit, ForceQuit            key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Toggle:    key.NewBinding(key.WithKeys(" ", "t"), key.WithHelp("space/t", "toggle")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Clear:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss error")),
		Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Open, k.Add, k.Reload, k.Clear}
}

func (k keyMap) detailHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Clear, k.Back}
}

func (k keyMap) createHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back}
}
