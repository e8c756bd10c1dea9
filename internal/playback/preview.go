package playback

// Preview tracks which item of a list of samples is loaded in a shared session.  Selecting the loaded item
// toggles it, selecting another item loads it and plays it as soon as the engine reports ready.
type Preview struct {
	session   *Session
	count     int
	sourceFor func(i int) string

	current     int
	ready       int
	pendingPlay bool
}

// NewPreview loads the first of count items.  sourceFor returns the sample URL of item i.
func NewPreview(session *Session, count int, sourceFor func(i int) string) *Preview {
	p := &Preview{
		session:   session,
		count:     count,
		sourceFor: sourceFor,
		current:   -1,
		ready:     -1,
	}
	if count > 0 {
		p.current = 0
		p.ready = 0
		session.SetSource(sourceFor(0))
	}
	return p
}

func (p *Preview) Session() *Session {
	return p.session
}

// Current is the index whose sample is loaded, -1 when the list is empty
func (p *Preview) Current() int {
	return p.current
}

// Select previews item i
func (p *Preview) Select(i int) {
	if i < 0 || i >= p.count {
		return
	}
	if i == p.current {
		p.session.TogglePlayPause()
		return
	}
	p.current = i
	p.pendingPlay = true
	p.session.SetSource(p.sourceFor(i))
}

// OnReady marks the loaded item as ready, starting it if a selection is waiting to play
func (p *Preview) OnReady() {
	p.ready = p.current
	if p.pendingPlay {
		p.pendingPlay = false
		p.session.Play()
	}
}

// HandleEvent forwards an engine event to the session and tracks readiness
func (p *Preview) HandleEvent(ev Event) {
	if p.session.HandleEvent(ev) {
		p.OnReady()
	}
}

// ProgressOf is the played fraction to show for item i
func (p *Preview) ProgressOf(i int) float64 {
	if i != p.ready {
		return 0
	}
	return p.session.Info().Progress.FractionPlayed
}

// IsPlaying reports whether item i is the one currently playing
func (p *Preview) IsPlaying(i int) bool {
	return p.session.IsPlaying() && i == p.current
}

// Choose commits to item i: the preview is paused and the item returned for the caller to act on
func (p *Preview) Choose(i int) (int, bool) {
	if i < 0 || i >= p.count {
		return -1, false
	}
	p.session.Pause()
	return i, true
}
