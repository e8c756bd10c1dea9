package models

import (
	"github.com/PizzaHomicide/hookline/internal/playback"
	tea "github.com/charmbracelet/bubbletea"
)

// SessionFactory creates a playback session backed by a fresh engine.  Name identifies the engine in logs.
type SessionFactory func(name string) *playback.Session

// waitForEngineEvent reads the next event from the session's engine.  The receiver of the resulting message must
// call it again to keep events flowing, until EngineClosedMsg arrives.
func waitForEngineEvent(session *playback.Session) tea.Cmd {
	if session == nil {
		return nil
	}
	events := session.Engine().Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return EngineClosedMsg{Session: session}
		}
		return EngineEventMsg{Session: session, Event: ev}
	}
}
