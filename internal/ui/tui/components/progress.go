package components

import (
	"strings"

	"github.com/PizzaHomicide/hookline/internal/ui/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	playedStyle = lipgloss.NewStyle().Foreground(styles.AccentLight)
	loadedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#333333"))
)

// ProgressBar renders a single-row bar of width cells.  played and loaded are fractions in [0, 1]; the loaded
// part beyond the play head is drawn dimmer than the played part.
func ProgressBar(width int, played, loaded float64) string {
	if width <= 0 {
		return ""
	}
	playedCells := cells(width, played)
	loadedCells := max(cells(width, loaded), playedCells)

	return playedStyle.Render(strings.Repeat("━", playedCells)) +
		loadedStyle.Render(strings.Repeat("━", loadedCells-playedCells)) +
		emptyStyle.Render(strings.Repeat("─", width-loadedCells))
}

func cells(width int, fraction float64) int {
	n := int(fraction*float64(width) + 0.5)
	return min(max(n, 0), width)
}
