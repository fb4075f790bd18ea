package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Search     key.Binding
	LeaveInput key.Binding
	Preset     key.Binding
	SwitchPane key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Remove     key.Binding
	ClearCart  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		LeaveInput: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc", "done"),
		),
		Preset: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "price"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "catalog/cart"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "add/remove"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete", "backspace"),
			key.WithHelp("x", "remove"),
		),
		ClearCart: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear cart"),
		),
	}
}

func (k keyMap) browsingHelp() []key.Binding {
	return []key.Binding{k.Search, k.Preset, k.SwitchPane, k.Up, k.Down, k.Select, k.ClearCart, k.Quit}
}

func (k keyMap) searchingHelp() []key.Binding {
	return []key.Binding{k.LeaveInput}
}
