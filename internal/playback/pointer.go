package playback

import "sync"

// PointerAction is the kind of pointer event
type PointerAction int

const (
	PointerPress PointerAction = iota
	PointerMotion
	PointerRelease
)

func (a PointerAction) String() string {
	switch a {
	case PointerPress:
		return "press"
	case PointerMotion:
		return "motion"
	case PointerRelease:
		return "release"
	default:
		return "unknown"
	}
}

// PointerEvent is a mouse event anywhere in the terminal, in cells
type PointerEvent struct {
	X, Y   int
	Action PointerAction
}

// PointerRouter fans pointer events out to subscribers.  It is the terminal's stand-in for document level
// listeners: a drag keeps receiving events after the pointer leaves the scrub track.
type PointerRouter struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(PointerEvent)
}

func NewPointerRouter() *PointerRouter {
	return &PointerRouter{listeners: make(map[int]func(PointerEvent))}
}

// Subscribe registers fn and returns the function that removes it.  Calling the returned function more than once is safe.
func (r *PointerRouter) Subscribe(fn func(PointerEvent)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// Dispatch delivers ev to every subscriber.  Subscribers may unsubscribe from inside their callback.
func (r *PointerRouter) Dispatch(ev PointerEvent) {
	r.mu.Lock()
	ids := make([]int, 0, len(r.listeners))
	for id := range r.listeners {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for _, id := range ids {
		r.mu.Lock()
		fn, ok := r.listeners[id]
		r.mu.Unlock()
		if ok {
			fn(ev)
		}
	}
}

// Len is the number of active subscribers
func (r *PointerRouter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}
