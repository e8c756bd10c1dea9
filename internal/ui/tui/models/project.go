package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/format"
	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/media"
	"github.com/PizzaHomicide/hookline/internal/playback"
	"github.com/PizzaHomicide/hookline/internal/service"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/hookline/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/styles"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	// keyboard seek step, as a fraction of the speech
	seekStep = 0.05

	// rows above the viewport: header, topic line and a blank line
	projectTopRows = 3
	// rows below the viewport: player bar, status line and footer
	projectBottomRows = 3

	errFieldEmpty = "This field cannot be empty."
)

type editMode int

const (
	modeView editMode = iota
	modeEditScript
	modeRename
)

// ProjectModel shows one project: its script, configuration and the generated speech with a player bar
type ProjectModel struct {
	width, height int
	service       *service.ProjectService
	urls          *media.URLs
	downloader    *media.Downloader
	downloadDir   string
	newSession    SessionFactory

	project *domain.Project
	voices  []domain.Voice
	session *playback.Session

	viewport viewport.Model
	mode     editMode
	editor   textarea.Model
	name     textinput.Model

	busy    string
	spinner spinner.Model
	status  status
	now     func() time.Time
}

func NewProjectModel(projectService *service.ProjectService, urls *media.URLs, downloader *media.Downloader,
	downloadDir string, newSession SessionFactory) *ProjectModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	editor := textarea.New()
	editor.Placeholder = "Write your script here..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0

	name := textinput.New()
	name.Prompt = "Name: "
	name.CharLimit = 200

	return &ProjectModel{
		service:     projectService,
		urls:        urls,
		downloader:  downloader,
		downloadDir: downloadDir,
		newSession:  newSession,
		viewport:    viewport.New(0, 0),
		editor:      editor,
		name:        name,
		spinner:     s,
		now:         time.Now,
	}
}

func (m *ProjectModel) ViewType() View {
	return ViewProject
}

func (m *ProjectModel) Init() tea.Cmd {
	return nil
}

// Project returns the project on display, nil before one is set
func (m *ProjectModel) Project() *domain.Project {
	return m.project
}

// Session returns the speech player session, nil when the project has no playable speech
func (m *ProjectModel) Session() *playback.Session {
	return m.session
}

// SetProject shows project.  The player is recreated when the speech changed.  The returned command starts
// reading engine events for a new player.
func (m *ProjectModel) SetProject(project *domain.Project, voices []domain.Voice) tea.Cmd {
	previous := m.project
	m.project = project
	if voices != nil {
		m.voices = voices
	}
	m.mode = modeView
	m.refreshContent()

	if previous != nil && previous.ID == project.ID && speechID(previous) == speechID(project) && m.session != nil {
		return nil
	}
	return m.loadSpeech()
}

func speechID(p *domain.Project) string {
	if !p.HasSpeech() {
		return ""
	}
	return p.Speech.ID
}

func (m *ProjectModel) loadSpeech() tea.Cmd {
	m.closeSession()
	if !m.project.HasSpeech() || m.project.Speech.Expired(m.now()) || m.newSession == nil {
		return nil
	}

	m.session = m.newSession("speech")
	m.session.SetSource(m.urls.Speech(m.project.Speech.ID))
	log.Debug("Loaded speech", "project", m.project.ID, "speech", m.project.Speech.ID)
	return waitForEngineEvent(m.session)
}

// Close releases the player.  Called when the view is left.
func (m *ProjectModel) Close() {
	m.closeSession()
	m.project = nil
	m.voices = nil
	m.mode = modeView
	m.busy = ""
	m.status = status{}
}

func (m *ProjectModel) closeSession() {
	if m.session != nil {
		m.session.Close()
		m.session = nil
	}
}

// PauseSpeech stops playback, for example when a modal opens over the view
func (m *ProjectModel) PauseSpeech() {
	if m.session != nil && m.session.IsPlaying() {
		m.session.Pause()
	}
}

func (m *ProjectModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeView {
			return m, m.handleEditKey(msg)
		}
		return m, m.handleKeyPress(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case spinner.TickMsg:
		if m.busy != "" {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case EngineEventMsg:
		if msg.Session == m.session && m.session != nil {
			m.session.HandleEvent(msg.Event)
		}
		return m, waitForEngineEvent(msg.Session)

	case ProjectUpdatedMsg:
		m.busy = ""
		if msg.Error != nil {
			m.status = errorStatus(msg.Error)
			return m, nil
		}
		m.status = status{text: msg.Message}
		if m.project == nil || msg.Project == nil || msg.Project.ID != m.project.ID {
			return m, nil
		}
		return m, m.SetProject(msg.Project, nil)

	case DownloadCompletedMsg:
		m.busy = ""
		if msg.Error != nil {
			m.status = errorStatus(msg.Error)
			return m, nil
		}
		m.status = status{text: "Downloaded " + msg.Result.String()}
		return m, nil

	case StatusMsg:
		m.status = newStatus(msg)
		return m, nil
	}

	if m.mode != modeView {
		return m, m.updateEditor(msg)
	}
	return m, nil
}

func (m *ProjectModel) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if kb.GetActionByKey(msg, kb.ContextGlobal) == kb.ActionBack {
		return func() tea.Msg {
			return BackToProjectsMsg{}
		}
	}
	if m.project == nil {
		return nil
	}

	switch kb.GetActionByKey(msg, kb.ContextProject) {
	case kb.ActionMoveUp:
		m.viewport.LineUp(1)
		return Handled("scroll:up")
	case kb.ActionMoveDown:
		m.viewport.LineDown(1)
		return Handled("scroll:down")
	case kb.ActionPageUp:
		m.viewport.ViewUp()
		return Handled("scroll:pgup")
	case kb.ActionPageDown:
		m.viewport.ViewDown()
		return Handled("scroll:pgdown")
	case kb.ActionMoveTop:
		m.viewport.GotoTop()
		return Handled("scroll:top")
	case kb.ActionMoveBottom:
		m.viewport.GotoBottom()
		return Handled("scroll:bottom")

	case kb.ActionTogglePlay:
		if m.session == nil {
			return m.noSpeech()
		}
		m.session.TogglePlayPause()
		return Handled("player:toggle")
	case kb.ActionSeekBackward:
		if m.session != nil {
			m.session.SeekBy(-seekStep)
		}
		return Handled("player:seek_backward")
	case kb.ActionSeekForward:
		if m.session != nil {
			m.session.SeekBy(seekStep)
		}
		return Handled("player:seek_forward")

	case kb.ActionEditScript:
		m.mode = modeEditScript
		m.editor.SetValue(m.project.Script)
		m.status = status{}
		return m.editor.Focus()
	case kb.ActionRenameProject:
		m.mode = modeRename
		m.name.SetValue(m.project.Name)
		m.name.CursorEnd()
		m.status = status{}
		return m.name.Focus()
	case kb.ActionCopyScript:
		return m.copyScript()
	case kb.ActionGenerateSpeech:
		if m.busy != "" {
			return Handled("generate:busy")
		}
		m.PauseSpeech()
		projectID, voices := m.project.ID, m.voices
		return func() tea.Msg {
			return OpenVoiceSelectMsg{ProjectID: projectID, Voices: voices}
		}
	case kb.ActionDownload:
		return m.download()
	case kb.ActionDeleteProject:
		return m.confirmRemove()
	}
	return nil
}

func (m *ProjectModel) noSpeech() tea.Cmd {
	switch {
	case !m.project.HasSpeech():
		m.status = status{text: "No speech yet.  Generate one first.", isError: true}
	case m.project.Speech.Expired(m.now()):
		m.status = status{text: "This speech has expired.  Generate a new one.", isError: true}
	}
	return Handled("player:no_speech")
}

func (m *ProjectModel) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	action := kb.GetActionByKey(msg, kb.ContextEditing)
	if m.mode == modeRename && msg.Type == tea.KeyEnter {
		action = kb.ActionSave
	}

	switch action {
	case kb.ActionSave:
		return m.save()
	case kb.ActionBack:
		m.stopEditing()
		return Handled("edit:discard")
	}
	return m.updateEditor(msg)
}

func (m *ProjectModel) updateEditor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modeEditScript:
		m.editor, cmd = m.editor.Update(msg)
	case modeRename:
		m.name, cmd = m.name.Update(msg)
	}
	return cmd
}

func (m *ProjectModel) stopEditing() {
	m.mode = modeView
	m.editor.Blur()
	m.name.Blur()
}

func (m *ProjectModel) save() tea.Cmd {
	projectService := m.service
	id := m.project.ID

	switch m.mode {
	case modeEditScript:
		script := strings.TrimSpace(m.editor.Value())
		if script == "" {
			m.status = status{text: errFieldEmpty, isError: true}
			return Handled("edit:empty_script")
		}
		m.stopEditing()
		return m.startBusy("Saving script...", func(ctx context.Context) tea.Msg {
			project, err := projectService.SaveScript(ctx, id, script)
			return ProjectUpdatedMsg{Project: project, Message: "Script saved", Error: err}
		})

	case modeRename:
		name := strings.TrimSpace(m.name.Value())
		if name == "" {
			m.status = status{text: errFieldEmpty, isError: true}
			return Handled("edit:empty_name")
		}
		m.stopEditing()
		return m.startBusy("Renaming...", func(ctx context.Context) tea.Msg {
			project, err := projectService.RenameProject(ctx, id, name)
			return ProjectUpdatedMsg{Project: project, Message: "Project renamed", Error: err}
		})
	}
	return nil
}

// GenerateSpeech asks the API to voice the script with voiceID
func (m *ProjectModel) GenerateSpeech(voiceID string) tea.Cmd {
	if m.project == nil {
		return nil
	}
	projectService := m.service
	id := m.project.ID
	log.Info("Generating speech", "project", id, "voice", voiceID)
	return m.startBusy("Generating speech...", func(ctx context.Context) tea.Msg {
		project, err := projectService.GenerateSpeech(ctx, id, voiceID)
		return ProjectUpdatedMsg{Project: project, Message: "Speech generated", Error: err}
	})
}

func (m *ProjectModel) copyScript() tea.Cmd {
	if err := clipboard.WriteAll(m.project.Script); err != nil {
		log.Warn("Failed to copy script", "error", err)
		m.status = status{text: "Could not copy to the clipboard: " + err.Error(), isError: true}
		return Handled("copy:failed")
	}
	m.status = status{text: "Script copied to clipboard"}
	return Handled("copy:done")
}

func (m *ProjectModel) download() tea.Cmd {
	if !m.project.HasSpeech() || m.project.Speech.Expired(m.now()) {
		return m.noSpeech()
	}
	if m.busy != "" {
		return Handled("download:busy")
	}

	downloader := m.downloader
	speechID, dir := m.project.Speech.ID, m.downloadDir
	return m.startBusy("Downloading...", func(ctx context.Context) tea.Msg {
		result, err := downloader.Download(ctx, speechID, dir)
		return DownloadCompletedMsg{Result: result, Error: err}
	})
}

func (m *ProjectModel) confirmRemove() tea.Cmd {
	projectService := m.service
	id := m.project.ID
	remove := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return ProjectRemovedMsg{ID: id, Error: projectService.RemoveProject(ctx, id)}
	}
	return func() tea.Msg {
		return ConfirmRequestMsg{
			Title:     "Remove project",
			Message:   "Are you sure you want to remove this project? This action cannot be undone.",
			OnConfirm: remove,
		}
	}
}

// startBusy shows a spinner with label while op runs
func (m *ProjectModel) startBusy(label string, op func(ctx context.Context) tea.Msg) tea.Cmd {
	m.busy = label
	m.status = status{}
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return op(ctx)
	})
}

// handleMouse starts a scrub when the press lands on the player bar.  Motion and release while dragging reach the
// session through the pointer router, wherever the pointer is.
func (m *ProjectModel) handleMouse(msg tea.MouseMsg) {
	if m.session == nil || m.mode != modeView {
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	_, _, track := m.playerLayout()
	if track.Contains(msg.X, msg.Y) {
		m.session.BeginSeek(msg.X, track)
	}
}

// playerLayout lays out the player row: the play state and times, the scrub bar, and the expiry.  The track
// is where the bar is drawn on screen.
func (m *ProjectModel) playerLayout() (prefix, suffix string, track playback.Track) {
	info := m.session.Info()

	icon := ">"
	if info.IsPlaying {
		icon = "||"
	}
	prefix = fmt.Sprintf(" %-2s %5s / %-5s ", icon,
		format.MinutesSeconds(info.Progress.SecondsPlayed), format.MinutesSeconds(info.Duration))
	if m.project.HasSpeech() && m.project.Speech.Expires > 0 {
		suffix = fmt.Sprintf("  expires in %s ", format.ExpiresIn(m.project.Speech.Expires, m.now()))
	}

	left := runewidth.StringWidth(prefix)
	track = playback.Track{
		Left:  left,
		Row:   projectTopRows + m.viewport.Height,
		Width: max(m.width-left-runewidth.StringWidth(suffix), 0),
	}
	return prefix, suffix, track
}

func (m *ProjectModel) refreshContent() {
	if m.project == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.renderDetails())
}

func (m *ProjectModel) renderDetails() string {
	p := m.project
	width := max(m.width-4, 20)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(styles.Label.Render("Script"))
	b.WriteString("\n")
	script := p.Script
	if script == "" {
		script = styles.Subtle.Render("(empty)")
	}
	b.WriteString(wrap.Render(script))
	b.WriteString("\n\n")

	b.WriteString(styles.Label.Render("Speech"))
	b.WriteString("\n")
	switch {
	case !p.HasSpeech():
		b.WriteString(styles.Subtle.Render("No speech.  Press " +
			kb.GetActionKey(kb.ActionGenerateSpeech, kb.ContextBindings[kb.ContextProject]) + " to generate one."))
	case p.Speech.Expired(m.now()):
		b.WriteString(styles.Subtle.Render("The speech voiced by " + p.Speech.Voice.Name + " has expired."))
	default:
		b.WriteString(fmt.Sprintf("Voiced by %s, created %s", p.Speech.Voice.Name, format.DateTime(p.Speech.Created)))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.Label.Render("Configuration"))
	b.WriteString("\n")
	b.WriteString(wrap.Render("Hook: " + p.Config.Hook.Value))
	b.WriteString("\n")
	b.WriteString(wrap.Render("Retention: " + p.Config.Retention.Value))
	b.WriteString("\n")
	b.WriteString(wrap.Render("Call to action: " + p.Config.CallToAction.Value))
	b.WriteString("\n\n")

	b.WriteString(styles.Label.Render("Created"))
	b.WriteString("\n")
	b.WriteString(format.DateTime(p.Timestamp))

	return b.String()
}

func (m *ProjectModel) View() string {
	if m.project == nil {
		return styles.CenteredView(m.width, m.height, "No project loaded")
	}

	header := styles.Header(m.width, format.Truncate(m.project.Name, max(m.width-4, 1)))

	subtitle := styles.Subtle.Render(format.Truncate("Topic: "+m.project.Topic, m.width))
	if m.mode == modeRename {
		subtitle = m.name.View()
	}

	body := m.viewport.View()
	if m.mode == modeEditScript {
		body = m.editor.View()
	}

	var statusLine string
	switch {
	case m.busy != "":
		statusLine = styles.CenteredText(m.width, m.spinner.View()+" "+m.busy)
	case m.status.text != "":
		statusLine = m.status.View(m.width)
	}

	footer := components.KeyBindingsBar(m.width, m.footerBindings())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		subtitle,
		"",
		body,
		m.renderPlayer(),
		statusLine,
		footer,
	)
}

func (m *ProjectModel) renderPlayer() string {
	if m.session == nil {
		if m.project.HasSpeech() {
			return styles.Subtle.Render(" Speech expired")
		}
		return styles.Subtle.Render(" No speech")
	}

	prefix, suffix, track := m.playerLayout()
	info := m.session.Info()
	bar := components.ProgressBar(track.Width, info.Progress.FractionPlayed, info.Progress.FractionLoaded)
	return prefix + bar + styles.Subtle.Render(suffix)
}

func (m *ProjectModel) footerBindings() []components.KeyBinding {
	if m.mode != modeView {
		return []components.KeyBinding{
			components.Bind(kb.ContextEditing, kb.ActionSave, "Save"),
			components.Bind(kb.ContextEditing, kb.ActionBack, "Cancel"),
		}
	}
	return []components.KeyBinding{
		components.Bind(kb.ContextProject, kb.ActionTogglePlay, "Play/Pause"),
		{Key: "←/→", Desc: "Seek"},
		components.Bind(kb.ContextProject, kb.ActionEditScript, "Edit"),
		components.Bind(kb.ContextProject, kb.ActionRenameProject, "Rename"),
		components.Bind(kb.ContextProject, kb.ActionCopyScript, "Copy"),
		components.Bind(kb.ContextProject, kb.ActionGenerateSpeech, "Generate"),
		components.Bind(kb.ContextProject, kb.ActionDownload, "Download"),
		components.Bind(kb.ContextProject, kb.ActionDeleteProject, "Delete"),
		components.Bind(kb.ContextGlobal, kb.ActionBack, "Back"),
	}
}

func (m *ProjectModel) Resize(width, height int) {
	m.width = width
	m.height = height

	bodyHeight := max(height-projectTopRows-projectBottomRows, 1)
	m.viewport.Width = width
	m.viewport.Height = bodyHeight
	m.editor.SetWidth(width)
	m.editor.SetHeight(bodyHeight)
	m.name.Width = max(width-len(m.name.Prompt)-2, 10)
	m.refreshContent()
}
