package playback

// Engine decodes and plays audio.  Commands are fire and forget from the session's point of view: failures are
// reported back as an ErrorEvent or a returned error, and the session logs them.
type Engine interface {
	// SetSource points the engine at a new URL, loaded paused
	SetSource(url string) error
	SetPlaying(playing bool) error
	SeekTo(seconds float64) error
	// Reset reloads the current source so the next play starts cleanly from the beginning
	Reset() error
	// Events delivers progress, duration, ended, ready and error notifications.  Closed by Close.
	Events() <-chan Event
	Close() error
}

// Event is something an engine reports
type Event interface {
	isEvent()
}

// ProgressEvent carries a new position report
type ProgressEvent struct {
	Progress Progress
}

// DurationEvent is sent when the duration of the current source becomes known or changes
type DurationEvent struct {
	Seconds float64
}

// EndedEvent is sent when playback reaches the end of the source
type EndedEvent struct{}

// ReadyEvent is sent once a source has loaded and can be played
type ReadyEvent struct{}

// ErrorEvent reports an engine failure.  It never changes session state.
type ErrorEvent struct {
	Err error
}

func (ProgressEvent) isEvent() {}
func (DurationEvent) isEvent() {}
func (EndedEvent) isEvent()    {}
func (ReadyEvent) isEvent()    {}
func (ErrorEvent) isEvent()    {}
