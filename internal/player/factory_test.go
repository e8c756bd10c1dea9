package player

import (
	"testing"

	"github.com/PizzaHomicide/hookline/internal/config"
	"github.com/PizzaHomicide/hookline/internal/playback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineFake(t *testing.T) {
	engine := NewEngine("test", config.PlayerConfig{Type: "fake"})
	_, ok := engine.(*FakeEngine)
	assert.True(t, ok)
	assert.NoError(t, engine.Close())
}

func TestNewEngineFallsBackWhenMPVMissing(t *testing.T) {
	engine := NewEngine("test", config.PlayerConfig{Type: "mpv", Path: "/definitely/not/mpv"})
	_, ok := engine.(*FakeEngine)
	assert.True(t, ok)
	assert.NoError(t, engine.Close())
}

func TestFakeEngine(t *testing.T) {
	engine := NewFakeEngine()

	require.NoError(t, engine.SetSource("https://media.example.com/samples/v1"))
	assert.Equal(t, playback.ReadyEvent{}, <-engine.Events())
	assert.NoError(t, engine.SetPlaying(true))
	assert.NoError(t, engine.SeekTo(3))

	require.NoError(t, engine.Close())
	require.NoError(t, engine.Close())
	assert.ErrorIs(t, engine.SetPlaying(false), ErrEngineClosed)

	_, ok := <-engine.Events()
	assert.False(t, ok)
}
