package components

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines key bindings.
type KeyMap struct {
	// Calendar
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding

	// Task list
	ListUp     key.Binding
	ListDown   key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Copy       key.Binding
	FocusList  key.Binding
	FocusInput key.Binding
	Submit     key.Binding

	// Reachable from every pane, including the text input
	GlobalToday key.Binding
	SwapFocus   key.Binding
	SwitchPane  key.Binding
	ForceQuit   key.Binding

	// Outside the text input only
	QuickSwap key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevMonth: key.NewBinding(
			key.WithKeys("j", "["),
			key.WithHelp("j/[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("k", "]"),
			key.WithHelp("k/]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next week"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open day"),
		),

		ListUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		ListDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x", " "),
			key.WithHelp("enter/x", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "backspace", "d"),
			key.WithHelp("del/d", "delete"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		FocusList: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "to list"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("a", "i"),
			key.WithHelp("a", "add task"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),

		GlobalToday: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "today"),
		),
		SwapFocus: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "task input"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),

		QuickSwap: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "task input"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMonth, k.NextMonth, k.Today, k.Toggle, k.Delete, k.SwapFocus, k.SwitchPane, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevMonth, k.NextMonth, k.Today, k.Left, k.Right, k.Up, k.Down, k.Select},
		{k.ListUp, k.ListDown, k.Toggle, k.Delete, k.Copy, k.FocusInput, k.FocusList, k.Submit},
		{k.GlobalToday, k.SwapFocus, k.QuickSwap, k.SwitchPane, k.Help, k.Quit, k.ForceQuit},
	}
}
