package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/format"
	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/service"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/hookline/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const requestTimeout = 30 * time.Second

// ProjectsModel lists the user's projects, newest first, with a fuzzy search over name and script
type ProjectsModel struct {
	width, height int
	service       *service.ProjectService

	loading   bool
	loadError error
	spinner   spinner.Model

	cursor      int
	searchMode  bool
	searchInput textinput.Model
	filtered    []*domain.Project

	status status
	user   *domain.User
}

const tokenMeterWidth = 20

func NewProjectsModel(projectService *service.ProjectService) *ProjectsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	search := textinput.New()
	search.Placeholder = "Search projects..."
	search.Prompt = "/ "
	search.CharLimit = 100

	return &ProjectsModel{
		service:     projectService,
		loading:     true,
		spinner:     s,
		searchInput: search,
	}
}

func (m *ProjectsModel) ViewType() View {
	return ViewProjects
}

// Init fetches the project list
func (m *ProjectsModel) Init() tea.Cmd {
	return m.Refresh()
}

// SetUser sets the account shown above the list.  nil hides it.
func (m *ProjectsModel) SetUser(user *domain.User) {
	m.user = user
}

// Refresh reloads the project list from the API
func (m *ProjectsModel) Refresh() tea.Cmd {
	m.loading = true
	m.loadError = nil
	return tea.Batch(m.spinner.Tick, fetchProjects(m.service))
}

func fetchProjects(projectService *service.ProjectService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := projectService.LoadProjects(ctx); err != nil {
			log.Error("Failed to load projects", "error", err)
			return ProjectsLoadedMsg{Error: err}
		}
		return ProjectsLoadedMsg{}
	}
}

func (m *ProjectsModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleSearchModeKeyMsg(msg); cmd != nil {
			return m, cmd
		}
		return m, m.handleKeyPress(msg)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case ProjectsLoadedMsg:
		m.loading = false
		m.loadError = msg.Error
		m.applyFilter()
		return m, nil

	case StatusMsg:
		m.status = newStatus(msg)
		return m, nil
	}

	return m, nil
}

func (m *ProjectsModel) handleSearchModeKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if !m.searchMode {
		return nil
	}
	switch kb.GetActionByKey(msg, kb.ContextSearchMode) {
	case kb.ActionBack:
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applyFilter()
		return Handled("search:exit")
	case kb.ActionSearchComplete:
		m.searchMode = false
		m.searchInput.Blur()
		m.applyFilter()
		return Handled("search:apply")
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applyFilter()
	if cmd == nil {
		cmd = Handled("search:input")
	}
	return cmd
}

func (m *ProjectsModel) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch kb.GetActionByKey(msg, kb.ContextProjects) {
	case kb.ActionMoveUp:
		m.moveCursor(-1)
		return Handled("cursor_move:up")
	case kb.ActionMoveDown:
		m.moveCursor(1)
		return Handled("cursor_move:down")
	case kb.ActionPageUp:
		m.moveCursor(-m.visibleRows())
		return Handled("cursor_move:pgup")
	case kb.ActionPageDown:
		m.moveCursor(m.visibleRows())
		return Handled("cursor_move:pgdown")
	case kb.ActionMoveTop:
		m.cursor = 0
		return Handled("cursor_move:top")
	case kb.ActionMoveBottom:
		m.cursor = max(len(m.filtered)-1, 0)
		return Handled("cursor_move:bottom")
	case kb.ActionEnableSearch:
		m.searchMode = true
		m.searchInput.Focus()
		return Handled("search:enable")
	case kb.ActionOpenProject:
		project := m.Selected()
		if project == nil {
			return Handled("open_project:none_selected")
		}
		return func() tea.Msg {
			return OpenProjectMsg{ID: project.ID}
		}
	case kb.ActionNewProject:
		return func() tea.Msg {
			return NewProjectMsg{}
		}
	case kb.ActionRefreshProjects:
		return m.Refresh()
	}
	return nil
}

// Selected returns the project under the cursor, or nil when the list is empty
func (m *ProjectsModel) Selected() *domain.Project {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return m.filtered[m.cursor]
}

func (m *ProjectsModel) applyFilter() {
	m.filtered = m.service.Filter(m.searchInput.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
}

func (m *ProjectsModel) moveCursor(delta int) {
	if len(m.filtered) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.filtered)-1)
}

func (m *ProjectsModel) visibleRows() int {
	// Header, account lines, search bar, column headings, footer and box borders
	return max(m.height-12-m.accountLines(), 1)
}

func (m *ProjectsModel) View() string {
	header := styles.Header(m.width, "Projects")
	account := m.renderAccount()

	var body string
	switch {
	case m.loading:
		body = styles.CenteredText(m.width, m.spinner.View()+" Loading projects...")
	case m.loadError != nil:
		body = styles.CenteredText(m.width, styles.Error.Render("Failed to load projects: "+errorText(m.loadError)))
	case len(m.service.Projects()) == 0:
		body = styles.CenteredText(m.width, "No projects yet.  Press "+
			kb.GetActionKey(kb.ActionNewProject, kb.ContextBindings[kb.ContextProjects])+" to create one.")
	default:
		body = m.renderList()
	}

	var search string
	if m.searchMode || m.searchInput.Value() != "" {
		search = styles.SearchBar.Render(m.searchInput.View())
	}

	footer := components.KeyBindingsBar(m.width, m.footerBindings())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		account,
		search,
		body,
		m.status.View(m.width),
		footer,
	)
}

func (m *ProjectsModel) accountLines() int {
	switch {
	case m.user == nil:
		return 0
	case m.user.IsGuest():
		return 2
	default:
		return 1
	}
}

// renderAccount shows who is signed in and how much of the token allowance is left
func (m *ProjectsModel) renderAccount() string {
	if m.user == nil {
		return ""
	}

	line := fmt.Sprintf(" %s  %s %s",
		styles.Label.Render(m.user.DisplayName()),
		components.ProgressBar(tokenMeterWidth, m.user.TokenFraction(), m.user.TokenFraction()),
		styles.Info.Render(fmt.Sprintf("%d/%d tokens", m.user.Tokens, domain.TokenAllowance)))

	if m.user.IsGuest() {
		line += "\n" + styles.Subtle.Render(" Guest account.  Run 'hookline complete' to set a name and password.")
	}
	return line
}

func (m *ProjectsModel) footerBindings() []components.KeyBinding {
	if m.searchMode {
		return []components.KeyBinding{
			components.Bind(kb.ContextSearchMode, kb.ActionSearchComplete, "Apply"),
			components.Bind(kb.ContextSearchMode, kb.ActionBack, "Clear"),
		}
	}
	return []components.KeyBinding{
		{Key: "↑/↓", Desc: "Navigate"},
		components.Bind(kb.ContextProjects, kb.ActionOpenProject, "Open"),
		components.Bind(kb.ContextProjects, kb.ActionNewProject, "New"),
		components.Bind(kb.ContextProjects, kb.ActionEnableSearch, "Search"),
		components.Bind(kb.ContextProjects, kb.ActionRefreshProjects, "Refresh"),
		components.Bind(kb.ContextGlobal, kb.ActionToggleHelp, "Help"),
	}
}

func (m *ProjectsModel) renderList() string {
	if len(m.filtered) == 0 {
		return styles.CenteredText(m.width, "No projects match your search")
	}

	visibleCount := min(len(m.filtered), m.visibleRows())
	startIdx := 0
	if m.cursor >= visibleCount {
		startIdx = m.cursor - visibleCount + 1
	}
	endIdx := min(startIdx+visibleCount, len(m.filtered))

	rowWidth := max(m.width-8, 20)
	nameWidth := max(rowWidth/3, 10)
	scriptWidth := max(rowWidth-nameWidth-16, 0)

	headerStyle := lipgloss.NewStyle().Bold(true).Width(rowWidth).Padding(0, 1)
	selectedStyle := styles.Selected.Width(rowWidth).Padding(0, 1)
	normalStyle := lipgloss.NewStyle().Width(rowWidth).Padding(0, 1)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %-8s %-5s %s",
		runewidth.FillRight("Name", nameWidth), "Created", "Audio", "Script")))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", rowWidth))
	b.WriteString("\n")

	for i := startIdx; i < endIdx; i++ {
		p := m.filtered[i]
		audio := " "
		if p.HasSpeech() {
			audio = "♪"
		}
		row := fmt.Sprintf("%s %-8s %-5s %s",
			runewidth.FillRight(format.Truncate(p.Name, nameWidth), nameWidth),
			format.Date(p.Timestamp),
			audio,
			format.Truncate(format.FirstLine(p.Script), scriptWidth))

		if i == m.cursor {
			b.WriteString(selectedStyle.Render(row))
		} else {
			b.WriteString(normalStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if len(m.filtered) > visibleCount {
		b.WriteString(styles.CenteredText(rowWidth,
			fmt.Sprintf("Showing %d-%d of %d", startIdx+1, endIdx, len(m.filtered))))
	}

	return styles.ContentBox(m.width-2, b.String(), 1)
}

func (m *ProjectsModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = max(width-8, 10)
}
