package playback

import "fmt"

// recordingEngine records every command it receives as a string, e.g. "seek 30"
type recordingEngine struct {
	calls  []string
	events chan Event
	closed bool
	err    error
}

func newRecordingEngine() *recordingEngine {
	return &recordingEngine{events: make(chan Event, 16)}
}

func (e *recordingEngine) SetSource(url string) error {
	e.calls = append(e.calls, "source "+url)
	return e.err
}

func (e *recordingEngine) SetPlaying(playing bool) error {
	if playing {
		e.calls = append(e.calls, "play")
	} else {
		e.calls = append(e.calls, "pause")
	}
	return e.err
}

func (e *recordingEngine) SeekTo(seconds float64) error {
	e.calls = append(e.calls, fmt.Sprintf("seek %g", seconds))
	return e.err
}

func (e *recordingEngine) Reset() error {
	e.calls = append(e.calls, "reset")
	return e.err
}

func (e *recordingEngine) Events() <-chan Event {
	return e.events
}

func (e *recordingEngine) Close() error {
	e.closed = true
	return e.err
}

func (e *recordingEngine) reset() {
	e.calls = nil
}
