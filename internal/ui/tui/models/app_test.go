package models

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/PizzaHomicide/hookline/internal/app"
	"github.com/PizzaHomicide/hookline/internal/auth"
	"github.com/PizzaHomicide/hookline/internal/config"
	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/media"
	"github.com/PizzaHomicide/hookline/internal/playback"
	"github.com/PizzaHomicide/hookline/internal/repository/gql"
	"github.com/PizzaHomicide/hookline/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEngine is a playback.Engine that remembers what it was told to do
type recordingEngine struct {
	mu      sync.Mutex
	sources []string
	playing bool
	seeks   []float64
	events  chan playback.Event
	closed  bool
}

func newRecordingEngine() *recordingEngine {
	return &recordingEngine{events: make(chan playback.Event, 16)}
}

func (e *recordingEngine) SetSource(url string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sources = append(e.sources, url)
	return nil
}

func (e *recordingEngine) SetPlaying(playing bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playing = playing
	return nil
}

func (e *recordingEngine) SeekTo(seconds float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seeks = append(e.seeks, seconds)
	return nil
}

func (e *recordingEngine) Reset() error {
	return nil
}

func (e *recordingEngine) Events() <-chan playback.Event {
	return e.events
}

func (e *recordingEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.events)
	}
	return nil
}

func (e *recordingEngine) lastSeek() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.seeks) == 0 {
		return -1
	}
	return e.seeks[len(e.seeks)-1]
}

type fakeProjectRepo struct {
	projects []*domain.Project
	voices   []domain.Voice
	configs  *domain.Configurations
	listErr  error
	created  *domain.CreateProjectParams
}

func (f *fakeProjectRepo) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]*domain.Project(nil), f.projects...), nil
}

func (f *fakeProjectRepo) GetProject(ctx context.Context, id string) (*domain.Project, []domain.Voice, error) {
	for _, p := range f.projects {
		if p.ID == id {
			return p, f.voices, nil
		}
	}
	return nil, nil, errors.New("not found")
}

func (f *fakeProjectRepo) CreateProject(ctx context.Context, params domain.CreateProjectParams) (*domain.Project, error) {
	f.created = &params
	p := &domain.Project{ID: "new", Name: params.Topic, Timestamp: time.Now().Unix()}
	f.projects = append(f.projects, p)
	return p, nil
}

func (f *fakeProjectRepo) UpdateProject(ctx context.Context, id string, params domain.UpdateProjectParams) (*domain.Project, error) {
	return &domain.Project{ID: id}, nil
}

func (f *fakeProjectRepo) RemoveProject(ctx context.Context, id string) error {
	return nil
}

func (f *fakeProjectRepo) GenerateSpeech(ctx context.Context, projectID, voiceID string) (*domain.Project, error) {
	return &domain.Project{ID: projectID, Speech: &domain.Speech{ID: "s-" + voiceID}}, nil
}

func (f *fakeProjectRepo) GetConfigurations(ctx context.Context) (*domain.Configurations, error) {
	return f.configs, nil
}

type fakeAccountRepo struct{}

func (fakeAccountRepo) Login(ctx context.Context, username, password string) (string, error) {
	return "token", nil
}

func (fakeAccountRepo) Me(ctx context.Context) (*domain.User, error) {
	return &domain.User{ID: "u1", Type: domain.UserTypeUser}, nil
}

func (fakeAccountRepo) RefreshToken(ctx context.Context) (string, error) {
	return "fresh", nil
}

func (fakeAccountRepo) Complete(ctx context.Context, params domain.CompleteParams) error {
	return nil
}

type testApp struct {
	model   AppModel
	repo    *fakeProjectRepo
	client  *gql.Client
	engines []*recordingEngine
}

func newTestApp(t *testing.T, token string) *testApp {
	t.Helper()

	urls, err := media.NewURLs("https://media.example.com")
	require.NoError(t, err)

	repo := &fakeProjectRepo{}
	client := gql.NewClient("https://api.example.com/graphql", token, time.Second)
	services := &app.Services{
		Client:   client,
		Auth:     auth.NewAuth(fakeAccountRepo{}, nil),
		Projects: service.NewProjectService(repo),
		URLs:     urls,
	}

	ta := &testApp{repo: repo, client: client}
	newEngine := func(name string) playback.Engine {
		engine := newRecordingEngine()
		ta.engines = append(ta.engines, engine)
		return engine
	}

	cfg := &config.Config{}
	cfg.Download.Dir = t.TempDir()
	ta.model = NewAppModel(cfg, services, newEngine)
	ta.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return ta
}

func (ta *testApp) send(msg tea.Msg) tea.Cmd {
	next, cmd := ta.model.Update(msg)
	ta.model = next.(AppModel)
	return cmd
}

func speechProject() *domain.Project {
	return &domain.Project{ID: "p1", Name: "Coffee", Script: "Wake up", Speech: &domain.Speech{ID: "s1"}}
}

func TestInitialViewDependsOnStoredToken(t *testing.T) {
	assert.Equal(t, ViewLogin, newTestApp(t, "").model.activeView)

	ta := newTestApp(t, "stored")
	assert.Equal(t, ViewLoading, ta.model.activeView)

	ta.send(SessionResumedMsg{Result: auth.Result{Token: "fresh", User: &domain.User{ID: "u1"}}})
	assert.Equal(t, ViewProjects, ta.model.activeView)
}

func TestExpiredSessionReturnsToLogin(t *testing.T) {
	ta := newTestApp(t, "stored")
	ta.send(SessionResumedMsg{Result: auth.Result{User: &domain.User{ID: "u1"}}})
	require.Equal(t, ViewProjects, ta.model.activeView)

	ta.send(ProjectsLoadedMsg{Error: &gql.Error{Code: gql.CodeUnauthenticated, Message: "expired"}})

	assert.Equal(t, ViewLogin, ta.model.activeView)
	assert.Empty(t, ta.client.Token())
	assert.Equal(t, sessionExpiredText, ta.model.loginModel.err)
}

func TestNetworkErrorOnResumeKeepsSession(t *testing.T) {
	ta := newTestApp(t, "stored")
	ta.send(SessionResumedMsg{Result: auth.Result{Error: gql.NetworkError{Err: errors.New("dial tcp")}}})

	assert.Equal(t, ViewProjects, ta.model.activeView)
	assert.Equal(t, "stored", ta.client.Token())
}

func TestLogout(t *testing.T) {
	ta := newTestApp(t, "stored")
	ta.send(SessionResumedMsg{Result: auth.Result{User: &domain.User{ID: "u1"}}})

	ta.send(tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Equal(t, ViewLogin, ta.model.activeView)
	assert.Empty(t, ta.client.Token())
}

func TestOpenProjectCreatesPlayer(t *testing.T) {
	ta := newTestApp(t, "stored")
	ta.repo.projects = []*domain.Project{speechProject()}

	cmd := ta.send(OpenProjectMsg{ID: "p1"})
	require.NotNil(t, cmd)
	assert.Equal(t, ViewLoading, ta.model.activeView)

	ta.send(ProjectLoadedMsg{Project: speechProject()})
	assert.Equal(t, ViewProject, ta.model.activeView)
	require.Len(t, ta.engines, 1)
	assert.Equal(t, []string{"https://media.example.com/speeches/s1"}, ta.engines[0].sources)

	ta.send(BackToProjectsMsg{})
	assert.Equal(t, ViewProjects, ta.model.activeView)
	assert.True(t, ta.engines[0].closed, "leaving the project releases its player")
}

func TestProjectLoadErrorStaysOnList(t *testing.T) {
	ta := newTestApp(t, "stored")
	ta.send(OpenProjectMsg{ID: "missing"})

	ta.send(ProjectLoadedMsg{Error: &gql.Error{Code: gql.CodeBadRequest, Message: "Project not found"}})

	assert.Equal(t, ViewProjects, ta.model.activeView)
	assert.True(t, ta.model.projectsModel.status.isError)
	assert.Equal(t, "Project not found", ta.model.projectsModel.status.text)
}

func TestScrubbingWithThePointer(t *testing.T) {
	ta := newTestApp(t, "stored")
	ta.send(ProjectLoadedMsg{Project: speechProject()})

	session := ta.model.projectModel.Session()
	require.NotNil(t, session)
	engine := ta.engines[0]
	session.HandleEvent(playback.DurationEvent{Seconds: 100})
	session.Play()

	_, _, track := ta.model.projectModel.playerLayout()
	require.Greater(t, track.Width, 0)

	ta.send(tea.MouseMsg{X: track.Left + track.Width/2, Y: track.Row,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, session.IsPlaying(), "dragging pauses playback")
	assert.InDelta(t, 50, engine.lastSeek(), 1)

	// Motion reaches the session even when the pointer leaves the bar
	ta.send(tea.MouseMsg{X: track.Left + track.Width + 10, Y: 0,
		Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, 100.0, engine.lastSeek())

	ta.send(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.True(t, session.IsPlaying(), "release restores the playing state")
	assert.Equal(t, 0, ta.model.router.Len())

	// Motion after the release does nothing
	ta.send(tea.MouseMsg{X: track.Left, Y: track.Row, Action: tea.MouseActionMotion})
	assert.Equal(t, 100.0, engine.lastSeek())
}

func TestPressOutsideTrackDoesNotSeek(t *testing.T) {
	ta := newTestApp(t, "stored")
	ta.send(ProjectLoadedMsg{Project: speechProject()})
	session := ta.model.projectModel.Session()
	session.HandleEvent(playback.DurationEvent{Seconds: 100})

	_, _, track := ta.model.projectModel.playerLayout()
	ta.send(tea.MouseMsg{X: track.Left, Y: track.Row - 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.Equal(t, -1.0, ta.engines[0].lastSeek())
	assert.Equal(t, 0, ta.model.router.Len())
}

func TestStaleEngineEventsAreDrained(t *testing.T) {
	ta := newTestApp(t, "stored")

	stale := newRecordingEngine()
	staleSession := playback.NewSession("stale", stale, nil)
	require.NoError(t, stale.Close())

	cmd := ta.send(EngineEventMsg{Session: staleSession, Event: playback.ReadyEvent{}})
	require.NotNil(t, cmd, "events keep being read until the engine closes")
	assert.Equal(t, EngineClosedMsg{Session: staleSession}, cmd())
}

func TestVoiceModalOwnsItsSession(t *testing.T) {
	ta := newTestApp(t, "stored")
	ta.send(ProjectLoadedMsg{Project: speechProject()})
	ta.model.projectModel.Session().Play()

	voices := []domain.Voice{{ID: "v1", Name: "Ava"}, {ID: "v2", Name: "Ben"}}
	ta.send(OpenVoiceSelectMsg{ProjectID: "p1", Voices: voices})

	assert.Equal(t, ModalVoiceSelect, ta.model.activeModal)
	assert.False(t, ta.model.projectModel.Session().IsPlaying(), "opening the modal pauses the speech")
	require.Len(t, ta.engines, 2)

	ta.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModalNone, ta.model.activeModal)
	assert.True(t, ta.engines[1].closed)
	assert.False(t, ta.engines[0].closed)
}

func TestConfirmFlow(t *testing.T) {
	ta := newTestApp(t, "stored")
	confirmed := false
	ta.send(ConfirmRequestMsg{Title: "Remove", Message: "Sure?", OnConfirm: func() tea.Msg {
		confirmed = true
		return nil
	}})
	require.Equal(t, ModalConfirm, ta.model.activeModal)

	cmd := ta.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	msgs := runCmd(cmd)
	assert.True(t, confirmed)
	assert.Contains(t, msgs, tea.Msg(CloseModalMsg{}))

	ta.send(CloseModalMsg{})
	assert.Equal(t, ModalNone, ta.model.activeModal)
}

func TestProjectRemovedReturnsToList(t *testing.T) {
	ta := newTestApp(t, "stored")
	ta.send(ProjectLoadedMsg{Project: speechProject()})

	ta.send(ProjectRemovedMsg{ID: "p1"})

	assert.Equal(t, ViewProjects, ta.model.activeView)
	assert.Equal(t, "Project removed.", ta.model.projectsModel.status.text)
	assert.True(t, ta.engines[0].closed)
}

func TestHelpToggle(t *testing.T) {
	ta := newTestApp(t, "")
	ta.send(tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.Equal(t, ModalHelp, ta.model.activeModal)
	assert.Equal(t, ViewLogin, ta.model.helpModel.context)

	ta.send(tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.Equal(t, ModalNone, ta.model.activeModal)
}

// runCmd runs cmd and any batch it expands to, returning the messages produced
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func TestAccountShownOnProjects(t *testing.T) {
	ta := newTestApp(t, "stored")
	guest := &domain.User{ID: "u9", Type: domain.UserTypeGuest, Name: "Ada", Tokens: 750}
	ta.send(SessionResumedMsg{Result: auth.Result{Token: "fresh", User: guest}})

	view := ta.model.View()
	assert.Contains(t, view, "Ada")
	assert.Contains(t, view, "750/1500 tokens")
	assert.Contains(t, view, "hookline complete")

	ta.send(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Nil(t, ta.model.user)
	assert.Nil(t, ta.model.projectsModel.user)
}

func TestAccountRefreshedAfterLeavingProject(t *testing.T) {
	ta := newTestApp(t, "stored")
	ta.send(SessionResumedMsg{Result: auth.Result{User: &domain.User{ID: "u1", Tokens: 1500}}})
	ta.send(ProjectLoadedMsg{Project: speechProject()})

	msgs := runCmd(ta.send(BackToProjectsMsg{}))
	require.Len(t, msgs, 1)
	loaded, ok := msgs[0].(AccountLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.Error)

	ta.send(loaded)
	assert.Equal(t, ViewProjects, ta.model.activeView)
	require.NotNil(t, ta.model.user)
	assert.Equal(t, 0, ta.model.user.Tokens, "replaced by the fetched account")
}
