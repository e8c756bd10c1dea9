package models

import (
	"context"

	"github.com/PizzaHomicide/hookline/internal/app"
	"github.com/PizzaHomicide/hookline/internal/auth"
	"github.com/PizzaHomicide/hookline/internal/config"
	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/playback"
	kb "github.com/PizzaHomicide/hookline/internal/ui/tui/keybindings"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// EngineFactory starts a playback engine.  Name identifies the engine in logs.
type EngineFactory func(name string) playback.Engine

// AppModel is the main application model that coordinates all child models.  It is the high level wrapper.
type AppModel struct {
	config        *config.Config
	services      *app.Services
	router        *playback.PointerRouter
	activeView    View  // Track the current active 'main view'
	activeModal   Modal // Track the current active 'modal overlay' if any
	width, height int
	user          *domain.User

	// Models used for various views
	loginModel       *LoginModel
	projectsModel    *ProjectsModel
	projectModel     *ProjectModel
	createModel      *CreateModel
	helpModel        *HelpModel
	voiceSelectModel *VoiceSelectModel
	confirmModel     *ConfirmModel
	loadingModel     *LoadingModel
}

// NewAppModel creates a new instance of the main application model.  Every player session shares one pointer
// router so a drag keeps reaching the session that started it.
func NewAppModel(cfg *config.Config, services *app.Services, newEngine EngineFactory) AppModel {
	router := playback.NewPointerRouter()
	var newSession SessionFactory
	if newEngine != nil {
		newSession = func(name string) *playback.Session {
			return playback.NewSession(name, newEngine(name), router)
		}
	}

	initialView := ViewLogin
	var loading *LoadingModel
	if services.SignedIn() {
		log.Info("Token found in config file.  Checking it is still valid")
		initialView = ViewLoading
		loading = NewLoadingModel("Restoring your session...")
	}

	return AppModel{
		config:           cfg,
		services:         services,
		router:           router,
		activeView:       initialView,
		activeModal:      ModalNone,
		loginModel:       NewLoginModel(services.Auth),
		projectsModel:    NewProjectsModel(services.Projects),
		projectModel:     NewProjectModel(services.Projects, services.URLs, services.Downloader, cfg.Download.Dir, newSession),
		createModel:      NewCreateModel(services.Projects),
		helpModel:        NewHelpModel(initialView),
		voiceSelectModel: NewVoiceSelectModel(services.URLs, newSession),
		confirmModel:     NewConfirmModel(),
		loadingModel:     loading,
	}
}

func (m AppModel) Init() tea.Cmd {
	log.Info("Initialising hookline TUI")

	if m.activeView != ViewLoading {
		return m.loginModel.Init()
	}

	authService := m.services.Auth
	return tea.Batch(m.loadingModel.Init(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return SessionResumedMsg{Result: authService.Resume(ctx)}
	})
}

// Update handles messages and updates the models as appropriate
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if err := messageError(msg); err != nil && sessionExpired(err) {
		log.Warn("API rejected the session", "error", err)
		return m.expireSession()
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextGlobal) {
		case kb.ActionQuit:
			log.Info("Quit command received.  Shutting down...")
			m.closePlayers()
			return m, tea.Quit
		case kb.ActionLogout:
			if m.activeView == ViewLogin || m.activeView == ViewLoading {
				break
			}
			log.Info("Logging out.  Cleaning up token from config file...")
			if err := m.services.SignOut(); err != nil {
				log.Warn("Failed to remove token from config file", "error", err)
			}
			return m.showLogin("")
		case kb.ActionToggleHelp:
			log.Debug("Help requested", "active_view", m.activeView)
			// Disable/toggle modal if one already active
			if m.activeModal != ModalNone {
				m.closeModal()
				return m, nil
			}
			m.projectModel.PauseSpeech()
			m.helpModel.SetContext(m.activeView)
			m.activeModal = ModalHelp
			return m, nil
		case kb.ActionBack:
			if m.activeModal != ModalNone {
				m.closeModal()
				return m, nil
			}
		}

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		log.Debug("Window size changed", "old_width", m.width, "new_width", msg.Width, "old_height", m.height, "new_height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

		// Propagate new window size to all views so they are aware and can render correctly
		m.loginModel.Resize(msg.Width, msg.Height)
		m.projectsModel.Resize(msg.Width, msg.Height)
		m.projectModel.Resize(msg.Width, msg.Height)
		m.createModel.Resize(msg.Width, msg.Height)
		m.helpModel.Resize(msg.Width, msg.Height)
		m.voiceSelectModel.Resize(msg.Width, msg.Height)
		m.confirmModel.Resize(msg.Width, msg.Height)
		if m.loadingModel != nil {
			m.loadingModel.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case spinner.TickMsg:
		// Spinners ignore ticks that are not theirs, so every model gets a look
		return m, m.broadcastTick(msg)

	case HandledMsg:
		log.Trace("Message handled", "action", msg.Action)
		return m, nil

	case SessionResumedMsg:
		m.loadingModel = nil
		if msg.Result.Error != nil {
			// Network trouble is not a reason to sign out.  The project list shows the error and can be retried.
			log.Warn("Could not refresh session", "error", msg.Result.Error)
			return m.showProjects()
		}
		log.Info("Session restored", "user", msg.Result.User.ID, "guest", msg.Result.User.IsGuest())
		m.setUser(msg.Result.User)
		return m.showProjects()

	case LoginResultMsg:
		if msg.Result.Error == nil && msg.Result.User != nil {
			log.Info("Authentication successful", "user", msg.Result.User.ID)
			m.loginModel.Reset()
			m.setUser(msg.Result.User)
			return m.showProjects()
		}
		return m.updateModel(m.loginModel, msg)

	case OpenProjectMsg:
		return m.openProject(msg.ID)

	case ProjectLoadedMsg:
		m.loadingModel = nil
		if msg.Error != nil {
			log.Error("Failed to load project", "error", msg.Error)
			m.activeView = ViewProjects
			m.projectsModel.status = errorStatus(msg.Error)
			return m, nil
		}
		log.Info("Project opened", "id", msg.Project.ID, "name", msg.Project.Name)
		m.activeView = ViewProject
		return m, m.projectModel.SetProject(msg.Project, msg.Voices)

	case NewProjectMsg:
		m.activeView = ViewCreate
		return m, m.createModel.Init()

	case ProjectCreatedMsg:
		_, cmd := m.createModel.Update(msg)
		if msg.Error != nil {
			log.Error("Failed to create project", "error", msg.Error)
			return m, cmd
		}
		log.Info("Project created", "id", msg.Project.ID)
		m.projectsModel.applyFilter()
		return m.openProject(msg.Project.ID)

	case BackToProjectsMsg:
		m.projectModel.Close()
		m.activeView = ViewProjects
		m.projectsModel.applyFilter()
		// Generating speech spends tokens
		return m, fetchAccount(m.services.Auth)

	case AccountLoadedMsg:
		if msg.Error != nil {
			log.Warn("Failed to refresh account", "error", msg.Error)
			return m, nil
		}
		m.setUser(msg.User)
		return m, nil

	case ProjectRemovedMsg:
		if msg.Error != nil {
			log.Error("Failed to remove project", "id", msg.ID, "error", msg.Error)
			m.projectModel.status = errorStatus(msg.Error)
			return m, nil
		}
		m.projectModel.Close()
		m.activeView = ViewProjects
		m.projectsModel.applyFilter()
		m.projectsModel.status = status{text: "Project removed."}
		return m, nil

	case OpenVoiceSelectMsg:
		m.projectModel.PauseSpeech()
		m.activeModal = ModalVoiceSelect
		return m, m.voiceSelectModel.Open(msg.ProjectID, msg.Voices)

	case VoiceChosenMsg:
		m.closeModal()
		return m, m.projectModel.GenerateSpeech(msg.VoiceID)

	case ConfirmRequestMsg:
		m.projectModel.PauseSpeech()
		m.confirmModel.Ask(msg.Title, msg.Message, msg.OnConfirm)
		m.activeModal = ModalConfirm
		return m, nil

	case CloseModalMsg:
		m.closeModal()
		return m, nil

	case EngineEventMsg:
		if session := m.voiceSelectModel.Session(); session != nil && msg.Session == session {
			return m.updateModel(m.voiceSelectModel, msg)
		}
		// The project model drains events from players it no longer owns
		return m.updateModel(m.projectModel, msg)

	case EngineClosedMsg:
		log.Debug("Player event stream closed")
		return m, nil
	}

	// Prioritise delegating messages to a modal if one is active
	switch m.activeModal {
	case ModalHelp:
		return m.updateModel(m.helpModel, msg)
	case ModalVoiceSelect:
		return m.updateModel(m.voiceSelectModel, msg)
	case ModalConfirm:
		return m.updateModel(m.confirmModel, msg)
	}

	// Delegate message processing to the active view
	switch m.activeView {
	case ViewLogin:
		return m.updateModel(m.loginModel, msg)
	case ViewProjects:
		return m.updateModel(m.projectsModel, msg)
	case ViewProject:
		return m.updateModel(m.projectModel, msg)
	case ViewCreate:
		return m.updateModel(m.createModel, msg)
	}

	return m, nil
}

// updateModel delegates msg to a child.  Children are pointers and update in place.
func (m AppModel) updateModel(child Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := child.Update(msg)
	return m, cmd
}

// handleMouse sends a press to the view under it.  Motion and release go through the pointer router so a drag
// that leaves the player bar still reaches the session scrubbing it.
func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.activeModal == ModalHelp {
		return m.updateModel(m.helpModel, msg)
	}
	if tea.MouseEvent(msg).IsWheel() {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if m.activeModal == ModalNone && m.activeView == ViewProject {
			return m.updateModel(m.projectModel, msg)
		}
	case tea.MouseActionMotion:
		m.router.Dispatch(playback.PointerEvent{X: msg.X, Y: msg.Y, Action: playback.PointerMotion})
	case tea.MouseActionRelease:
		m.router.Dispatch(playback.PointerEvent{X: msg.X, Y: msg.Y, Action: playback.PointerRelease})
	}
	return m, nil
}

func (m AppModel) broadcastTick(msg spinner.TickMsg) tea.Cmd {
	children := []Model{m.loginModel, m.projectsModel, m.projectModel, m.createModel}
	if m.loadingModel != nil {
		children = append(children, m.loadingModel)
	}

	var cmds []tea.Cmd
	for _, child := range children {
		if _, cmd := child.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m AppModel) openProject(id string) (tea.Model, tea.Cmd) {
	m.loadingModel = NewLoadingModel("Opening project...")
	m.loadingModel.Resize(m.width, m.height)
	m.activeView = ViewLoading

	projectService := m.services.Projects
	return m, tea.Batch(m.loadingModel.Init(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		project, voices, err := projectService.GetProject(ctx, id)
		return ProjectLoadedMsg{Project: project, Voices: voices, Error: err}
	})
}

func (m AppModel) showProjects() (tea.Model, tea.Cmd) {
	m.activeView = ViewProjects
	m.activeModal = ModalNone
	return m, m.projectsModel.Refresh()
}

func (m AppModel) showLogin(errText string) (tea.Model, tea.Cmd) {
	m.closePlayers()
	m.setUser(nil)
	m.activeModal = ModalNone
	m.activeView = ViewLogin
	m.loadingModel = nil
	m.loginModel.Reset()
	m.loginModel.SetError(errText)
	return m, m.loginModel.Init()
}

func (m *AppModel) setUser(user *domain.User) {
	m.user = user
	m.projectsModel.SetUser(user)
}

func fetchAccount(authService *auth.Auth) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		user, err := authService.CurrentUser(ctx)
		return AccountLoadedMsg{User: user, Error: err}
	}
}

// expireSession drops the rejected token and sends the user back to sign in
func (m AppModel) expireSession() (tea.Model, tea.Cmd) {
	if err := m.services.SignOut(); err != nil {
		log.Warn("Failed to remove expired token from config file", "error", err)
	}
	return m.showLogin(sessionExpiredText)
}

func (m *AppModel) closeModal() {
	if m.activeModal == ModalVoiceSelect {
		m.voiceSelectModel.Close()
	}
	m.activeModal = ModalNone
}

func (m AppModel) closePlayers() {
	m.voiceSelectModel.Close()
	m.projectModel.Close()
}

// messageError pulls the API error out of a result message, if it carries one
func messageError(msg tea.Msg) error {
	switch msg := msg.(type) {
	case SessionResumedMsg:
		return msg.Result.Error
	case AccountLoadedMsg:
		return msg.Error
	case ProjectsLoadedMsg:
		return msg.Error
	case ProjectLoadedMsg:
		return msg.Error
	case ProjectUpdatedMsg:
		return msg.Error
	case ProjectRemovedMsg:
		return msg.Error
	case ProjectCreatedMsg:
		return msg.Error
	case ConfigurationsLoadedMsg:
		return msg.Error
	case DownloadCompletedMsg:
		return msg.Error
	}
	return nil
}

func (m AppModel) View() string {
	// If there is an active modal it takes precedence
	switch m.activeModal {
	case ModalHelp:
		return m.helpModel.View()
	case ModalVoiceSelect:
		return m.voiceSelectModel.View()
	case ModalConfirm:
		return m.confirmModel.View()
	}

	// Else display the actual view
	switch m.activeView {
	case ViewLogin:
		return m.loginModel.View()
	case ViewProjects:
		return m.projectsModel.View()
	case ViewProject:
		return m.projectModel.View()
	case ViewCreate:
		return m.createModel.View()
	case ViewLoading:
		if m.loadingModel != nil {
			return m.loadingModel.View()
		}
	}
	return "Unknown view\nPress ctrl+c to quit."
}
