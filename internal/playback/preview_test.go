package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleURL(i int) string {
	return []string{"u0", "u1", "u2"}[i]
}

func TestPreviewLoadsFirstItem(t *testing.T) {
	engine := newRecordingEngine()
	p := NewPreview(NewSession("voices", engine, nil), 3, sampleURL)

	assert.Equal(t, 0, p.Current())
	assert.Equal(t, []string{"source u0"}, engine.calls)
}

func TestPreviewSelectCurrentToggles(t *testing.T) {
	engine := newRecordingEngine()
	p := NewPreview(NewSession("voices", engine, nil), 3, sampleURL)

	p.Select(0)
	assert.True(t, p.IsPlaying(0))
	p.Select(0)
	assert.False(t, p.IsPlaying(0))
}

func TestPreviewSelectOtherPlaysWhenReady(t *testing.T) {
	engine := newRecordingEngine()
	p := NewPreview(NewSession("voices", engine, nil), 3, sampleURL)
	engine.reset()

	p.Select(2)
	assert.Equal(t, 2, p.Current())
	assert.False(t, p.IsPlaying(2), "nothing plays until the engine is ready")
	assert.Equal(t, []string{"source u2"}, engine.calls)

	p.HandleEvent(ReadyEvent{})
	assert.True(t, p.IsPlaying(2))
	assert.False(t, p.IsPlaying(0))

	// A later ready, e.g. after a reset, does not start playback again
	p.Session().Pause()
	p.HandleEvent(ReadyEvent{})
	assert.False(t, p.IsPlaying(2))
}

func TestPreviewProgressOnlyForReadyItem(t *testing.T) {
	p := NewPreview(NewSession("voices", newRecordingEngine(), nil), 3, sampleURL)

	p.Select(1)
	p.HandleEvent(ProgressEvent{Progress: Progress{FractionPlayed: 0.4}})
	assert.Equal(t, 0.0, p.ProgressOf(1), "item 1 is not ready yet")

	p.HandleEvent(ReadyEvent{})
	p.HandleEvent(ProgressEvent{Progress: Progress{FractionPlayed: 0.4}})
	assert.Equal(t, 0.4, p.ProgressOf(1))
	assert.Equal(t, 0.0, p.ProgressOf(0))
}

func TestPreviewChoosePauses(t *testing.T) {
	p := NewPreview(NewSession("voices", newRecordingEngine(), nil), 3, sampleURL)
	p.Select(0)

	i, ok := p.Choose(1)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	assert.False(t, p.Session().IsPlaying())

	_, ok = p.Choose(5)
	assert.False(t, ok)
}

func TestPreviewEmptyList(t *testing.T) {
	engine := newRecordingEngine()
	p := NewPreview(NewSession("voices", engine, nil), 0, sampleURL)

	p.Select(0)
	assert.Equal(t, -1, p.Current())
	assert.Empty(t, engine.calls)
}
