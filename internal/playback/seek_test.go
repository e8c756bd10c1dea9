package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFractionClamps(t *testing.T) {
	track := Track{Left: 10, Width: 100}

	tests := []struct {
		x    int
		want float64
	}{
		{-5, 0},
		{0, 0},
		{10, 0},
		{35, 0.25},
		{60, 0.5},
		{110, 1},
		{500, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fraction(tt.x, track), "Fraction(%d)", tt.x)
	}

	for x := -50; x < 200; x++ {
		f := Fraction(x, track)
		assert.True(t, f >= 0 && f <= 1, "Fraction(%d) = %v out of range", x, f)
	}
}

func TestFractionZeroWidth(t *testing.T) {
	assert.Equal(t, 0.0, Fraction(10, Track{Left: 10}))
	assert.Equal(t, 0.0, Fraction(50, Track{Left: 10, Width: -3}))
}

func TestTrackContains(t *testing.T) {
	track := Track{Left: 2, Row: 5, Width: 10}
	assert.True(t, track.Contains(2, 5))
	assert.True(t, track.Contains(11, 5))
	assert.False(t, track.Contains(12, 5))
	assert.False(t, track.Contains(5, 4))
}

func TestDragScenario(t *testing.T) {
	engine := newRecordingEngine()
	router := NewPointerRouter()
	s := NewSession("test", engine, router)
	track := Track{Left: 10, Row: 3, Width: 100}

	s.OnDuration(120)
	s.Play()
	engine.reset()

	s.BeginSeek(35, track)
	assert.False(t, s.IsPlaying())
	assert.True(t, s.Info().Dragging)
	assert.Equal(t, 1, router.Len())

	// Motion is delivered through the router, even off the track row
	router.Dispatch(PointerEvent{X: 85, Y: 20, Action: PointerMotion})
	assert.False(t, s.IsPlaying())

	router.Dispatch(PointerEvent{X: 85, Y: 20, Action: PointerRelease})
	assert.True(t, s.IsPlaying())
	assert.False(t, s.Info().Dragging)
	assert.Equal(t, 0, router.Len())

	assert.Equal(t, []string{"pause", "seek 30", "seek 90", "play"}, engine.calls)
}

func TestDragRestoresPausedState(t *testing.T) {
	engine := newRecordingEngine()
	router := NewPointerRouter()
	s := NewSession("test", engine, router)
	s.OnDuration(60)

	s.BeginSeek(60, Track{Left: 10, Width: 100})
	s.EndSeek()

	assert.False(t, s.IsPlaying())
}

func TestBeginSeekCapturesOnce(t *testing.T) {
	engine := newRecordingEngine()
	router := NewPointerRouter()
	s := NewSession("test", engine, router)
	track := Track{Left: 0, Width: 10}
	s.OnDuration(10)
	s.Play()

	s.BeginSeek(2, track)
	// A second press while dragging must not capture the forced pause
	s.BeginSeek(4, track)
	assert.Equal(t, 1, router.Len())

	s.EndSeek()
	assert.True(t, s.IsPlaying())
}

func TestUpdateSeekIgnoredWhenNotDragging(t *testing.T) {
	engine := newRecordingEngine()
	s := NewSession("test", engine, NewPointerRouter())
	s.OnDuration(100)

	s.UpdateSeek(50)
	assert.Empty(t, engine.calls)
}

func TestEndSeekIsIdempotent(t *testing.T) {
	engine := newRecordingEngine()
	router := NewPointerRouter()
	s := NewSession("test", engine, router)
	s.OnDuration(100)
	s.Play()

	s.BeginSeek(10, Track{Width: 100})
	s.EndSeek()
	engine.reset()

	s.EndSeek()
	s.EndSeek()
	assert.Empty(t, engine.calls)
	assert.True(t, s.IsPlaying())
	assert.Equal(t, 0, router.Len())
}

func TestSeekWithUnknownDuration(t *testing.T) {
	engine := newRecordingEngine()
	s := NewSession("test", engine, NewPointerRouter())

	s.BeginSeek(80, Track{Width: 100})
	require.NotEmpty(t, engine.calls)
	assert.Equal(t, []string{"pause", "seek 0"}, engine.calls)
}

func TestCloseReleasesSubscription(t *testing.T) {
	engine := newRecordingEngine()
	router := NewPointerRouter()
	s := NewSession("test", engine, router)
	s.OnDuration(100)

	s.BeginSeek(10, Track{Width: 100})
	require.Equal(t, 1, router.Len())

	s.Close()
	assert.Equal(t, 0, router.Len())
	assert.False(t, s.Info().Dragging)
}

func TestSeekBy(t *testing.T) {
	engine := newRecordingEngine()
	s := NewSession("test", engine, nil)
	s.OnDuration(200)
	s.OnProgress(Progress{FractionPlayed: 0.5})

	s.SeekBy(0.25)
	s.SeekBy(-0.875)
	s.OnProgress(Progress{FractionPlayed: 0.875})
	s.SeekBy(0.25)

	assert.Equal(t, []string{"seek 150", "seek 0", "seek 200"}, engine.calls)
}
