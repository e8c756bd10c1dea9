package models

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/hookline/internal/domain"
	"github.com/PizzaHomicide/hookline/internal/format"
	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/media"
	"github.com/PizzaHomicide/hookline/internal/playback"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/hookline/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const sampleBarWidth = 16

// VoiceSelectModel is the modal for choosing the voice of a new speech.  Samples play through one shared session.
type VoiceSelectModel struct {
	width, height int
	urls          *media.URLs
	newSession    SessionFactory

	projectID string
	voices    []domain.Voice
	cursor    int
	session   *playback.Session
	preview   *playback.Preview
}

func NewVoiceSelectModel(urls *media.URLs, newSession SessionFactory) *VoiceSelectModel {
	return &VoiceSelectModel{
		urls:       urls,
		newSession: newSession,
	}
}

func (m *VoiceSelectModel) ViewType() View {
	return ViewVoices
}

func (m *VoiceSelectModel) Init() tea.Cmd {
	return nil
}

// Open shows voices for projectID and loads the first sample
func (m *VoiceSelectModel) Open(projectID string, voices []domain.Voice) tea.Cmd {
	m.Close()
	m.projectID = projectID
	m.voices = voices
	m.cursor = 0
	if len(voices) == 0 || m.newSession == nil {
		return nil
	}

	m.session = m.newSession("samples")
	m.preview = playback.NewPreview(m.session, len(voices), func(i int) string {
		return m.urls.Sample(voices[i].ID)
	})
	return waitForEngineEvent(m.session)
}

// Close pauses any sample and releases the player
func (m *VoiceSelectModel) Close() {
	if m.session != nil {
		m.session.Pause()
		m.session.Close()
	}
	m.session = nil
	m.preview = nil
	m.voices = nil
}

// Session returns the sample session, nil while closed
func (m *VoiceSelectModel) Session() *playback.Session {
	return m.session
}

func (m *VoiceSelectModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case EngineEventMsg:
		if m.preview != nil && msg.Session == m.session {
			m.preview.HandleEvent(msg.Event)
		}
		return m, waitForEngineEvent(msg.Session)
	}
	return m, nil
}

func (m *VoiceSelectModel) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch kb.GetActionByKey(msg, kb.ContextVoiceSelect) {
	case kb.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return Handled("cursor_move:up")
	case kb.ActionMoveDown:
		if m.cursor < len(m.voices)-1 {
			m.cursor++
		}
		return Handled("cursor_move:down")
	case kb.ActionMoveTop, kb.ActionPageUp:
		m.cursor = 0
		return Handled("cursor_move:top")
	case kb.ActionMoveBottom, kb.ActionPageDown:
		m.cursor = max(len(m.voices)-1, 0)
		return Handled("cursor_move:bottom")
	case kb.ActionPreviewVoice:
		if m.preview != nil {
			m.preview.Select(m.cursor)
		}
		return Handled("voice:preview")
	case kb.ActionChooseVoice:
		if m.preview == nil {
			return Handled("voice:none")
		}
		i, ok := m.preview.Choose(m.cursor)
		if !ok {
			return Handled("voice:none")
		}
		voice := m.voices[i]
		log.Info("Voice chosen", "project", m.projectID, "voice", voice.ID, "name", voice.Name)
		projectID := m.projectID
		return func() tea.Msg {
			return VoiceChosenMsg{ProjectID: projectID, VoiceID: voice.ID}
		}
	}
	return nil
}

func (m *VoiceSelectModel) View() string {
	contentWidth := min(max(m.width-8, 40), 100)

	var b strings.Builder
	b.WriteString(styles.Label.Render("Choose a voice"))
	b.WriteString("\n\n")

	if len(m.voices) == 0 {
		b.WriteString(styles.Subtle.Render("No voices available."))
	}

	nameWidth := 16
	descWidth := max(contentWidth-nameWidth-sampleBarWidth-18, 0)
	for i, voice := range m.voices {
		icon := " "
		if m.preview != nil && m.preview.IsPlaying(i) {
			icon = "♪"
		}
		progress := 0.0
		if m.preview != nil {
			progress = m.preview.ProgressOf(i)
		}

		row := fmt.Sprintf("%s %s %s %5s ",
			icon,
			runewidth.FillRight(format.Truncate(voice.Name, nameWidth), nameWidth),
			runewidth.FillRight(format.Truncate(voice.Description, descWidth), descWidth),
			format.MinutesSeconds(voice.SampleDuration))

		if i == m.cursor {
			row = styles.Selected.Render(row)
		}
		b.WriteString(row + components.ProgressBar(sampleBarWidth, progress, 0))
		b.WriteString("\n")
	}

	footer := components.KeyBindingsBar(contentWidth, []components.KeyBinding{
		components.Bind(kb.ContextVoiceSelect, kb.ActionPreviewVoice, "Preview"),
		components.Bind(kb.ContextVoiceSelect, kb.ActionChooseVoice, "Generate"),
		components.Bind(kb.ContextGlobal, kb.ActionBack, "Close"),
	})

	box := styles.ModalBox(contentWidth, b.String())
	return styles.CenteredView(m.width, m.height, lipgloss.JoinVertical(lipgloss.Center, box, footer))
}

func (m *VoiceSelectModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
