package models

import (
	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/hookline/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel asks a yes/no question before a destructive action
type ConfirmModel struct {
	width, height int
	title         string
	message       string
	onConfirm     tea.Cmd
}

func NewConfirmModel() *ConfirmModel {
	return &ConfirmModel{}
}

func (m *ConfirmModel) ViewType() View {
	return ViewConfirm
}

// Ask replaces the question.  onConfirm runs only if the user accepts.
func (m *ConfirmModel) Ask(title, message string, onConfirm tea.Cmd) {
	m.title = title
	m.message = message
	m.onConfirm = onConfirm
}

func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m *ConfirmModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kb.GetActionByKey(keyMsg, kb.ContextConfirm) {
	case kb.ActionConfirm:
		log.Info("Confirmed", "title", m.title)
		onConfirm := m.onConfirm
		m.onConfirm = nil
		closeModal := func() tea.Msg { return CloseModalMsg{} }
		if onConfirm == nil {
			return m, closeModal
		}
		return m, tea.Batch(closeModal, onConfirm)
	case kb.ActionBack:
		m.onConfirm = nil
		return m, func() tea.Msg { return CloseModalMsg{} }
	}
	return m, nil
}

func (m *ConfirmModel) View() string {
	width := min(max(m.width-8, 30), 60)

	content := styles.Label.Render(m.title) + "\n\n" +
		lipgloss.NewStyle().Width(width-6).Render(m.message)

	footer := components.KeyBindingsBar(width, []components.KeyBinding{
		{Key: "y", Desc: "Yes"},
		{Key: "n/esc", Desc: "No"},
	})

	return styles.CenteredView(m.width, m.height,
		lipgloss.JoinVertical(lipgloss.Center, styles.ModalBox(width, content), footer))
}

func (m *ConfirmModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
