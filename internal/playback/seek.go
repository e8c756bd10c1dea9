package playback

// Track is the on-screen geometry of a scrub bar, in terminal cells
type Track struct {
	Left  int
	Row   int
	Width int
}

// Contains reports whether the cell (x, y) is on the track
func (t Track) Contains(x, y int) bool {
	return y == t.Row && x >= t.Left && x < t.Left+t.Width
}

// Fraction maps a pointer column onto the track, clamped to [0, 1].  A zero-width track always gives 0.
func Fraction(x int, t Track) float64 {
	if t.Width <= 0 {
		return 0
	}
	return clamp(float64(x-t.Left)/float64(t.Width), 0, 1)
}

type dragState struct {
	track                Track
	wasPlayingBeforeDrag bool
	unsubscribe          func()
}

// BeginSeek starts a drag gesture at column x.  Playback is paused for the length of the drag and the pointer
// router delivers motion and release events from anywhere in the terminal until EndSeek.
func (s *Session) BeginSeek(x int, track Track) {
	if s.drag != nil {
		// Already dragging, a second press must not overwrite the captured state
		s.UpdateSeek(x)
		return
	}

	s.drag = &dragState{
		track:                track,
		wasPlayingBeforeDrag: s.playing,
	}
	s.setPlaying(false)
	s.seekFraction(Fraction(x, track))

	if s.router != nil {
		s.drag.unsubscribe = s.router.Subscribe(s.handlePointer)
	}
}

// UpdateSeek moves the drag to column x.  It does nothing unless a drag is in progress.
func (s *Session) UpdateSeek(x int) {
	if s.drag == nil {
		return
	}
	s.seekFraction(Fraction(x, s.drag.track))
}

// EndSeek finishes the drag and restores the playing state captured by BeginSeek.  Safe to call when not dragging.
func (s *Session) EndSeek() {
	if s.drag == nil {
		return
	}
	drag := s.drag
	s.drag = nil
	if drag.unsubscribe != nil {
		drag.unsubscribe()
	}
	s.setPlaying(drag.wasPlayingBeforeDrag)
}

// SeekBy moves the play position by delta, a fraction of the duration, from the last reported position
func (s *Session) SeekBy(delta float64) {
	s.seekFraction(clamp(s.progress.FractionPlayed+delta, 0, 1))
}

func (s *Session) handlePointer(ev PointerEvent) {
	switch ev.Action {
	case PointerMotion:
		s.UpdateSeek(ev.X)
	case PointerRelease:
		s.EndSeek()
	}
}

func (s *Session) seekFraction(fraction float64) {
	s.seekTo(fraction * s.duration)
}
