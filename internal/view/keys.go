package view

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// new-todo input
	Submit key.Binding
	ToList key.Binding

	// list
	Up, Down       key.Binding
	ToInput        key.Binding
	Toggle         key.Binding
	Delete         key.Binding
	Edit           key.Binding
	ToggleAll      key.Binding
	ClearCompleted key.Binding
	FilterAll      key.Binding
	FilterActive   key.Binding
	FilterDone     key.Binding
	CycleFilter    key.Binding
	Quit           key.Binding

	// row editor
	Save   key.Binding
	Cancel key.Binding

	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		ToList: key.NewBinding(key.WithKeys("tab", "down", "esc"), key.WithHelp("tab", "list")),

		Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		ToInput:        key.NewBinding(key.WithKeys("tab", "n", "i"), key.WithHelp("n", "new")),
		Toggle:         key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Delete:         key.NewBinding(key.WithKeys("d", "delete", "backspace"), key.WithHelp("d", "delete")),
		Edit:           key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("e", "edit")),
		ToggleAll:      key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "all")),
		ClearCompleted: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear")),
		FilterAll:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1-3", "filter")),
		FilterActive:   key.NewBinding(key.WithKeys("2")),
		FilterDone:     key.NewBinding(key.WithKeys("3")),
		CycleFilter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		Quit:           key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),

		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToList, k.ForceQuit}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Delete, k.ToggleAll, k.ClearCompleted, k.FilterAll, k.ToInput, k.Quit}
}

func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel}
}
