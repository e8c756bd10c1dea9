package playback

import "github.com/PizzaHomicide/hookline/internal/log"

// Session is the playback state of one player view.  It must only be used from a single goroutine, which in the
// TUI is the bubbletea update loop.
type Session struct {
	name   string
	engine Engine
	router *PointerRouter

	duration float64
	progress Progress
	playing  bool
	drag     *dragState
}

// NewSession creates a paused session driving engine.  Name is only used in log messages.
func NewSession(name string, engine Engine, router *PointerRouter) *Session {
	return &Session{
		name:   name,
		engine: engine,
		router: router,
	}
}

// Engine returns the engine this session drives
func (s *Session) Engine() Engine {
	return s.engine
}

func (s *Session) Info() Info {
	return Info{
		Duration:  s.duration,
		Progress:  s.progress,
		IsPlaying: s.playing,
		Dragging:  s.drag != nil,
	}
}

func (s *Session) IsPlaying() bool {
	return s.playing
}

func (s *Session) Play() {
	s.setPlaying(true)
}

func (s *Session) Pause() {
	s.setPlaying(false)
}

func (s *Session) TogglePlayPause() {
	s.setPlaying(!s.playing)
}

// OnProgress stores the latest position report as is
func (s *Session) OnProgress(p Progress) {
	s.progress = p
}

func (s *Session) OnDuration(seconds float64) {
	s.duration = seconds
}

// OnEnded pauses and rewinds so the next play starts from the beginning
func (s *Session) OnEnded() {
	s.playing = false
	s.seekTo(0)
	if err := s.engine.Reset(); err != nil {
		log.Warn("Engine reset failed", "session", s.name, "error", err)
	}
}

// SetSource re-points the session at a new URL.  Position and duration are forgotten until the engine reports them.
func (s *Session) SetSource(url string) {
	s.EndSeek()
	s.playing = false
	s.duration = 0
	s.progress = Progress{}
	if err := s.engine.SetSource(url); err != nil {
		log.Warn("Engine failed to load source", "session", s.name, "url", url, "error", err)
	}
}

// HandleEvent applies an engine event.  Ready events are reported back to the caller, which may be waiting on them.
func (s *Session) HandleEvent(ev Event) (ready bool) {
	switch e := ev.(type) {
	case ProgressEvent:
		s.OnProgress(e.Progress)
	case DurationEvent:
		s.OnDuration(e.Seconds)
	case EndedEvent:
		s.OnEnded()
	case ReadyEvent:
		return true
	case ErrorEvent:
		log.Error("Playback engine error", "session", s.name, "error", e.Err)
	}
	return false
}

// Close ends any drag, releasing its pointer subscription, and shuts the engine down
func (s *Session) Close() {
	if s.drag != nil {
		if s.drag.unsubscribe != nil {
			s.drag.unsubscribe()
		}
		s.drag = nil
	}
	if err := s.engine.Close(); err != nil {
		log.Warn("Engine close failed", "session", s.name, "error", err)
	}
}

func (s *Session) setPlaying(playing bool) {
	s.playing = playing
	if err := s.engine.SetPlaying(playing); err != nil {
		log.Warn("Engine failed to change playing state", "session", s.name, "playing", playing, "error", err)
	}
}

func (s *Session) seekTo(seconds float64) {
	if err := s.engine.SeekTo(seconds); err != nil {
		log.Warn("Engine seek failed", "session", s.name, "seconds", seconds, "error", err)
	}
}
