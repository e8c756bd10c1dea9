// Package playback holds the state machine behind every audio player in the terminal UI: a session per player view,
// pointer-drag seeking, and sample previews for voice lists.  It knows nothing about bubbletea or mpv.
package playback

// Progress is the position report produced by an engine at its polling interval
type Progress struct {
	FractionLoaded float64
	SecondsLoaded  float64
	FractionPlayed float64
	SecondsPlayed  float64
}

// Info is a snapshot of a session for rendering
type Info struct {
	Duration  float64
	Progress  Progress
	IsPlaying bool
	Dragging  bool
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
