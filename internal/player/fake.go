package player

import (
	"sync"

	"github.com/PizzaHomicide/hookline/internal/playback"
)

// FakeEngine is a silent engine.  It reports every source as ready with an unknown duration, so the UI stays
// usable without mpv installed.
type FakeEngine struct {
	mu     sync.Mutex
	events chan playback.Event
	closed bool
}

func NewFakeEngine() *FakeEngine {
	return &FakeEngine{events: make(chan playback.Event, 16)}
}

func (f *FakeEngine) SetSource(url string) error {
	return f.send(playback.ReadyEvent{})
}

func (f *FakeEngine) SetPlaying(bool) error {
	return f.check()
}

func (f *FakeEngine) SeekTo(float64) error {
	return f.check()
}

func (f *FakeEngine) Reset() error {
	return f.send(playback.ReadyEvent{})
}

func (f *FakeEngine) Events() <-chan playback.Event {
	return f.events
}

func (f *FakeEngine) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.events)
	}
	return nil
}

func (f *FakeEngine) check() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrEngineClosed
	}
	return nil
}

func (f *FakeEngine) send(ev playback.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrEngineClosed
	}
	select {
	case f.events <- ev:
	default:
	}
	return nil
}
