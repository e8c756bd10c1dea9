package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Accent      = lipgloss.Color("#7D56F4")
	AccentLight = lipgloss.Color("#9D86FF")
	Muted       = lipgloss.Color("#888888")

	// Text styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(Accent).
		Padding(0, 1)

	Info = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#DEDEDE"))

	Subtle = lipgloss.NewStyle().
		Foreground(Muted)

	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(AccentLight)

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5F87"))

	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#43BF6D"))

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Accent)

	SearchBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")).
			Padding(0, 2)
)

// Layout helpers
func Header(width int, title string) string {
	return Title.
		Width(width).
		Align(lipgloss.Center).
		Render(title)
}

func ContentBox(width int, content string, padding int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(padding).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#555555")).
		Render(content)
}

// ModalBox draws the accented border used by dialogs
func ModalBox(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AccentLight).
		Render(content)
}

func CenteredView(width int, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func CenteredText(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(text)
}
