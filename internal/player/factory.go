package player

import (
	"os/exec"

	"github.com/PizzaHomicide/hookline/internal/config"
	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/playback"
)

// NewEngine creates and starts the engine configured by cfg.Type.  Name identifies the engine in logs.
func NewEngine(name string, cfg config.PlayerConfig) playback.Engine {
	log.Info("Creating playback engine", "type", cfg.Type, "name", name)

	switch cfg.Type {
	case "fake":
		return NewFakeEngine()
	case "mpv":
		return newMPVOrFake(name, cfg)
	default:
		log.Warn("Unknown player type, falling back to mpv", "type", cfg.Type)
		return newMPVOrFake(name, cfg)
	}
}

func newMPVOrFake(name string, cfg config.PlayerConfig) playback.Engine {
	path := cfg.Path
	if path == "" {
		path = "mpv"
	}
	if _, err := exec.LookPath(path); err != nil {
		log.Warn("mpv not found, audio will not play", "path", path, "error", err)
		return NewFakeEngine()
	}

	engine := NewMPVEngine(name, cfg)
	engine.Start()
	return engine
}
