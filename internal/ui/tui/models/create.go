package models

import (
	"context"
	"strings"

	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/service"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/hookline/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/styles"
	"github.com/PizzaHomicide/hookline/internal/wizard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CreateModel walks through the project wizard: a topic, then one option per script section
type CreateModel struct {
	width, height int
	service       *service.ProjectService

	wizard  *wizard.Wizard
	topic   textinput.Model
	cursors []int // option cursor per section

	loadingConfigs bool
	creating       bool
	spinner        spinner.Model
	status         status
}

func NewCreateModel(projectService *service.ProjectService) *CreateModel {
	topic := textinput.New()
	topic.Placeholder = "What is your video about?"
	topic.Prompt = "> "
	topic.CharLimit = 500

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	w := wizard.New(nil)
	return &CreateModel{
		service: projectService,
		wizard:  w,
		topic:   topic,
		cursors: make([]int, len(w.Sections())),
		spinner: s,
	}
}

func (m *CreateModel) ViewType() View {
	return ViewCreate
}

// Init resets the form and fetches the options for each section
func (m *CreateModel) Init() tea.Cmd {
	m.wizard = wizard.New(nil)
	m.cursors = make([]int, len(m.wizard.Sections()))
	m.topic.SetValue("")
	m.loadingConfigs = true
	m.creating = false
	m.status = status{}

	projectService := m.service
	return tea.Batch(m.topic.Focus(), m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		configs, err := projectService.GetConfigurations(ctx)
		return ConfigurationsLoadedMsg{Configurations: configs, Error: err}
	})
}

func (m *CreateModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.creating {
			return m, Handled("create:busy")
		}
		if m.wizard.Step() == wizard.StepTopic {
			return m, m.handleTopicKey(msg)
		}
		return m, m.handleConfigurationKey(msg)

	case spinner.TickMsg:
		if m.loadingConfigs || m.creating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case ConfigurationsLoadedMsg:
		m.loadingConfigs = false
		if msg.Error != nil {
			m.status = errorStatus(msg.Error)
			return m, nil
		}
		m.wizard.SetConfigurations(msg.Configurations)
		return m, nil

	case ProjectCreatedMsg:
		m.creating = false
		if msg.Error != nil {
			m.status = errorStatus(msg.Error)
		}
		return m, nil
	}

	if m.wizard.Step() == wizard.StepTopic {
		var cmd tea.Cmd
		m.topic, cmd = m.topic.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *CreateModel) handleTopicKey(msg tea.KeyMsg) tea.Cmd {
	if kb.GetActionByKey(msg, kb.ContextGlobal) == kb.ActionBack {
		return func() tea.Msg {
			return BackToProjectsMsg{}
		}
	}
	if msg.Type == tea.KeyEnter {
		m.wizard.SetTopic(m.topic.Value())
		if m.wizard.SubmitTopic() {
			m.topic.Blur()
			m.status = status{}
			return Handled("create:topic_submitted")
		}
		return Handled("create:topic_invalid")
	}

	var cmd tea.Cmd
	m.topic, cmd = m.topic.Update(msg)
	m.wizard.SetTopic(m.topic.Value())
	return cmd
}

func (m *CreateModel) handleConfigurationKey(msg tea.KeyMsg) tea.Cmd {
	if kb.GetActionByKey(msg, kb.ContextGlobal) == kb.ActionBack {
		m.wizard.Back()
		m.topic.SetValue(m.wizard.Topic())
		m.cursors = make([]int, len(m.wizard.Sections()))
		m.status = status{}
		return tea.Batch(m.topic.Focus(), Handled("create:back"))
	}

	k := m.wizard.Selected()
	options := m.wizard.Sections()[k].Options

	switch kb.GetActionByKey(msg, kb.ContextCreate) {
	case kb.ActionMoveUp:
		if m.cursors[k] > 0 {
			m.cursors[k]--
		}
		return Handled("cursor_move:up")
	case kb.ActionMoveDown:
		if m.cursors[k] < len(options)-1 {
			m.cursors[k]++
		}
		return Handled("cursor_move:down")
	case kb.ActionMoveTop, kb.ActionPageUp:
		m.cursors[k] = 0
		return Handled("cursor_move:top")
	case kb.ActionMoveBottom, kb.ActionPageDown:
		m.cursors[k] = max(len(options)-1, 0)
		return Handled("cursor_move:bottom")
	case kb.ActionPrevSection:
		m.wizard.Focus(k - 1)
		return Handled("create:prev_section")
	case kb.ActionNextSection:
		m.wizard.Focus(k + 1)
		return Handled("create:next_section")
	case kb.ActionSubmit:
		if len(options) == 0 {
			return Handled("create:no_options")
		}
		if err := m.wizard.Choose(k, options[m.cursors[k]].ID); err != nil {
			log.Warn("Invalid choice", "section", k, "error", err)
			m.status = errorStatus(err)
		}
		return Handled("create:choose")
	case kb.ActionCreate:
		return m.create()
	}
	return nil
}

func (m *CreateModel) create() tea.Cmd {
	params, err := m.wizard.Params()
	if err != nil {
		m.status = status{text: "Choose an option for every section first.", isError: true}
		return Handled("create:incomplete")
	}

	m.creating = true
	m.status = status{}
	log.Info("Creating project", "topic", params.Topic, "hook", params.Hook, "retention", params.Retention,
		"call_to_action", params.CallToAction)

	projectService := m.service
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		project, err := projectService.CreateProject(ctx, params)
		return ProjectCreatedMsg{Project: project, Error: err}
	})
}

func (m *CreateModel) View() string {
	contentWidth := min(max(m.width-4, 40), 120)
	header := styles.Header(m.width, "New project")

	var body string
	if m.wizard.Step() == wizard.StepTopic {
		body = m.renderTopic(contentWidth)
	} else {
		body = m.renderConfiguration(contentWidth)
	}

	var statusLine string
	switch {
	case m.creating:
		statusLine = styles.CenteredText(m.width, m.spinner.View()+" Writing your script...")
	default:
		statusLine = m.status.View(m.width)
	}

	footer := components.KeyBindingsBar(m.width, m.footerBindings())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		styles.ContentBox(contentWidth, body, 1),
		statusLine,
		footer,
	)
}

func (m *CreateModel) renderTopic(width int) string {
	var b strings.Builder
	b.WriteString(styles.Label.Render("Topic"))
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("Describe the video you want a script for."))
	b.WriteString("\n\n")
	b.WriteString(m.topic.View())
	if msg := m.wizard.TopicError(); msg != "" {
		b.WriteString("\n")
		b.WriteString(styles.Error.Render(msg))
	}
	return lipgloss.NewStyle().Width(width - 4).Render(b.String())
}

func (m *CreateModel) renderConfiguration(width int) string {
	var b strings.Builder
	b.WriteString(styles.Subtle.Render("Topic: " + strings.TrimSpace(m.wizard.Topic())))
	b.WriteString("\n\n")

	if m.loadingConfigs {
		b.WriteString(m.spinner.View() + " Loading options...")
		return b.String()
	}

	wrap := lipgloss.NewStyle().Width(width - 8)
	for k, section := range m.wizard.Sections() {
		title := section.Title
		if k < m.wizard.CanView() {
			title += " ✓"
		}

		if k != m.wizard.Selected() {
			style := styles.Subtle
			if k <= m.wizard.CanView() {
				style = styles.Info
			}
			b.WriteString(style.Render(title + choiceSummary(section, m.wizard.Choice(k))))
			b.WriteString("\n")
			continue
		}

		b.WriteString(styles.Label.Render(title))
		b.WriteString("\n")
		b.WriteString(styles.Subtle.Render(section.Description))
		b.WriteString("\n")
		for i, option := range section.Options {
			marker := "( )"
			if option.ID == m.wizard.Choice(k) {
				marker = "(•)"
			}
			line := marker + " " + option.Value
			if i == m.cursors[k] {
				b.WriteString(styles.Selected.Render(wrap.Render(line)))
			} else {
				b.WriteString(wrap.Render(line))
			}
			b.WriteString("\n")
			if i == m.cursors[k] && option.Description != "" {
				b.WriteString(styles.Subtle.Render(wrap.Render("    " + option.Description)))
				b.WriteString("\n")
			}
		}
	}

	if m.wizard.Complete() {
		b.WriteString("\n")
		b.WriteString(styles.Success.Render("Ready.  Press " +
			kb.GetActionKey(kb.ActionCreate, kb.ContextBindings[kb.ContextCreate]) + " to write the script."))
	}
	return b.String()
}

func choiceSummary(section wizard.Section, id string) string {
	for _, o := range section.Options {
		if o.ID == id {
			return ": " + o.Value
		}
	}
	return ""
}

func (m *CreateModel) footerBindings() []components.KeyBinding {
	if m.wizard.Step() == wizard.StepTopic {
		return []components.KeyBinding{
			{Key: "enter", Desc: "Continue"},
			components.Bind(kb.ContextGlobal, kb.ActionBack, "Cancel"),
		}
	}
	return []components.KeyBinding{
		{Key: "↑/↓", Desc: "Navigate"},
		components.Bind(kb.ContextCreate, kb.ActionSubmit, "Choose"),
		{Key: "←/→", Desc: "Section"},
		components.Bind(kb.ContextCreate, kb.ActionCreate, "Create"),
		components.Bind(kb.ContextGlobal, kb.ActionBack, "Start over"),
	}
}

func (m *CreateModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.topic.Width = max(min(width-4, 120)-10, 10)
}
