package tui

import (
	"github.com/PizzaHomicide/hookline/internal/app"
	"github.com/PizzaHomicide/hookline/internal/config"
	"github.com/PizzaHomicide/hookline/internal/player"
	"github.com/PizzaHomicide/hookline/internal/playback"
	"github.com/PizzaHomicide/hookline/internal/ui/tui/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive UI and blocks until the user quits.  Cell motion mouse reporting is needed for
// scrubbing, it reports motion while a button is held.
func Run(cfg *config.Config, services *app.Services) error {
	newEngine := func(name string) playback.Engine {
		return player.NewEngine(name, cfg.Player)
	}

	p := tea.NewProgram(models.NewAppModel(cfg, services, newEngine), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
