package models

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Model is implemented by every view and modal owned by AppModel
type Model interface {
	ViewType() View
	Init() tea.Cmd
	Update(msg tea.Msg) (Model, tea.Cmd)
	View() string
	Resize(width, height int)
}

// HandledMsg signals that a key was consumed by a child model.  It carries a short description for debug logs.
type HandledMsg struct {
	Action string
}

// Handled returns a command reporting that action was handled, so callers stop looking for another handler
func Handled(action string) tea.Cmd {
	return func() tea.Msg {
		return HandledMsg{Action: action}
	}
}
