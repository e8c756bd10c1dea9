package models

import (
	"fmt"
	"time"

	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// slowAfter is when the loading view starts showing how long it has been waiting
const slowAfter = 5 * time.Second

// LoadingModel is the full screen spinner shown while the app waits on the API with nothing else to show
type LoadingModel struct {
	width, height int
	message       string
	detail        string
	spinner       spinner.Model
	started       time.Time
}

func NewLoadingModel(message string) *LoadingModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentLight).Bold(true)

	return &LoadingModel{
		message: message,
		spinner: s,
		started: time.Now(),
	}
}

// WithDetail adds a second, dimmer line under the message
func (m *LoadingModel) WithDetail(detail string) *LoadingModel {
	m.detail = detail
	return m
}

func (m *LoadingModel) ViewType() View {
	return ViewLoading
}

func (m *LoadingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *LoadingModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}
	log.Trace("Loading model ignored message", "message", msg)
	return m, nil
}

// Elapsed returns how long the operation has been running
func (m *LoadingModel) Elapsed() time.Duration {
	return time.Since(m.started)
}

func (m *LoadingModel) View() string {
	width := min(max(m.width-20, 40), 70)
	center := lipgloss.NewStyle().Width(width - 6).Align(lipgloss.Center)

	content := center.Render(m.spinner.View() + " " + lipgloss.NewStyle().Bold(true).Render(m.message))
	if m.detail != "" {
		content += "\n\n" + center.Render(styles.Subtle.Italic(true).Render(m.detail))
	}
	if elapsed := m.Elapsed(); elapsed > slowAfter {
		content += "\n\n" + center.Render(styles.Subtle.Render(
			fmt.Sprintf("Still working after %ds...", int(elapsed.Seconds()))))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.AccentLight).
		Padding(2, 3).
		Width(width).
		Render(content)

	return styles.CenteredView(m.width, m.height, box)
}

func (m *LoadingModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
