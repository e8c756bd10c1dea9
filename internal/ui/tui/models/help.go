package models

import (
	"fmt"
	"strings"

	kb "github.com/PizzaHomicide/hookline/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// HelpModel displays contextual help with scrolling
type HelpModel struct {
	width, height int
	context       View
	viewport      viewport.Model
}

// NewHelpModel creates a new help model for the given context
func NewHelpModel(context View) *HelpModel {
	return &HelpModel{
		context:  context,
		viewport: viewport.New(0, 0),
	}
}

func (m *HelpModel) ViewType() View {
	return ViewHelp
}

// SetContext switches the help to the given view and scrolls back to the top
func (m *HelpModel) SetContext(context View) {
	m.context = context
	m.updateContent()
}

func (m *HelpModel) Init() tea.Cmd {
	if m.width > 0 && m.height > 0 {
		m.updateContent()
	}
	return nil
}

func (m *HelpModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextHelp) {
		case kb.ActionMoveUp:
			m.viewport.LineUp(1)
		case kb.ActionMoveDown:
			m.viewport.LineDown(1)
		case kb.ActionPageUp:
			m.viewport.ViewUp()
		case kb.ActionPageDown:
			m.viewport.ViewDown()
		case kb.ActionMoveTop:
			m.viewport.GotoTop()
		case kb.ActionMoveBottom:
			m.viewport.GotoBottom()
		}
	}
	return m, cmd
}

func (m *HelpModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// Borders, header, footer and spacing
	m.viewport.Width = max(width-4, 1)
	m.viewport.Height = max(height-10, 1)

	m.updateContent()
}

func (m *HelpModel) updateContent() {
	m.viewport.SetContent(m.generateHelpContent())
	m.viewport.GotoTop()
}

func (m *HelpModel) View() string {
	header := styles.Header(m.width, "Help: "+m.getContextTitle())

	scrollText := "↑/↓: Scroll • PgUp/PgDn: Page scroll • Home/End: Goto top/bottom • ESC: Return"
	footer := styles.CenteredText(m.width, styles.Info.Render(scrollText))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		styles.ContentBox(m.width-2, m.viewport.View(), 1),
		"",
		footer,
	)
}

func (m *HelpModel) getContextTitle() string {
	switch m.context {
	case ViewLogin:
		return "Sign in"
	case ViewProjects:
		return "Projects"
	case ViewProject:
		return "Project"
	case ViewCreate:
		return "New project"
	default:
		return "General"
	}
}

// formatKeybindingSection formats a section of keybindings with aligned colons
func (m *HelpModel) formatKeybindingSection(title string, bindings []kb.Binding, skipActions map[kb.Action]bool) string {
	if len(bindings) == 0 {
		return ""
	}

	keyText := func(binding kb.Binding) string {
		text := kb.DisplayKey(binding.KeyMap.Primary)
		if binding.KeyMap.Secondary != "" {
			text += " or " + kb.DisplayKey(binding.KeyMap.Secondary)
		}
		return text
	}

	maxKeyWidth := 0
	for _, binding := range bindings {
		if !skipActions[binding.Action] {
			maxKeyWidth = max(maxKeyWidth, runewidth.StringWidth(keyText(binding)))
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")
	for _, binding := range bindings {
		if skipActions[binding.Action] {
			continue
		}
		text := keyText(binding)
		padding := strings.Repeat(" ", maxKeyWidth-runewidth.StringWidth(text))
		b.WriteString(fmt.Sprintf("• %s%s : %s\n",
			lipgloss.NewStyle().Bold(true).Render(text),
			padding,
			binding.KeyMap.Help))
	}
	return b.String()
}

func (m *HelpModel) generateHelpContent() string {
	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)

	b.WriteString(titleStyle.Render(m.getContextTitle()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(max(m.viewport.Width-2, 20)).Render(m.getContextDescription()))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Keybindings"))
	b.WriteString("\n\n")

	globalBindings := m.formatKeybindingSection("Global commands:", kb.ContextBindings[kb.ContextGlobal], nil)
	b.WriteString(globalBindings)

	globalActions := make(map[kb.Action]bool)
	for _, binding := range kb.ContextBindings[kb.ContextGlobal] {
		globalActions[binding.Action] = true
	}

	var contexts []kb.ContextName
	switch m.context {
	case ViewLogin:
		contexts = []kb.ContextName{kb.ContextLogin}
	case ViewProjects:
		contexts = []kb.ContextName{kb.ContextProjects, kb.ContextSearchMode}
	case ViewProject:
		contexts = []kb.ContextName{kb.ContextProject, kb.ContextEditing, kb.ContextVoiceSelect, kb.ContextConfirm}
	case ViewCreate:
		contexts = []kb.ContextName{kb.ContextCreate}
	}

	for _, context := range contexts {
		b.WriteString("\n")
		b.WriteString(m.formatKeybindingSection(contextSectionTitle(context), kb.ContextBindings[context], globalActions))
	}

	return b.String()
}

func contextSectionTitle(context kb.ContextName) string {
	switch context {
	case kb.ContextSearchMode:
		return "When in search mode:"
	case kb.ContextEditing:
		return "While editing the script or name:"
	case kb.ContextVoiceSelect:
		return "In the voice list:"
	case kb.ContextConfirm:
		return "In confirmation dialogs:"
	default:
		return "Commands:"
	}
}

func (m *HelpModel) getContextDescription() string {
	switch m.context {
	case ViewLogin:
		return "Sign in with the email of your account.  Accounts created without a password sign in with " +
			"the email alone.  If your account has a password, the password field appears after the first attempt."

	case ViewProjects:
		return "Your projects, newest first.  A ♪ marks projects with a generated speech.\n\n" +
			"Search matches loosely against the project name and script, so 'cofe' finds 'coffee'."

	case ViewProject:
		return "The project's script and configuration, with a player for the generated speech.\n\n" +
			"Click on the progress bar and drag to scrub through the speech.  Playback pauses while dragging and " +
			"resumes when the button is released, if it was playing before.\n\n" +
			"Speeches expire after a while.  Once expired, generate a new one to listen to or download it.  " +
			"Downloads are saved to the configured download directory."

	case ViewCreate:
		return "Creating a project takes two steps.  First describe the topic of your video, then pick a hook, " +
			"a retention style and a call to action.  Each section unlocks once the previous one has a choice.  " +
			"Going back from the options starts the form over."

	default:
		return "hookline writes short video scripts and voices them."
	}
}
