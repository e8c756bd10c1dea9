package log

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "test.log")

	logger, err := New(Config{
		Level:    "debug",
		FilePath: logPath,
	})
	require.NoError(t, err)

	SetDefaultLogger(logger)
	t.Cleanup(func() { SetDefaultLogger(nil) })

	Debug("Debug message", "test", true)
	Info("Info message", "test", true)
	Warn("Warning message", "test", true)
	Error("Error message", "error", fmt.Errorf("test error"))
	Trace("Trace message")

	logger.Close()

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	contentStr := string(content)
	assert.Contains(t, contentStr, "Debug message")
	assert.Contains(t, contentStr, "Info message")
	assert.Contains(t, contentStr, "Warning message")
	assert.Contains(t, contentStr, "Error message")
	assert.Contains(t, contentStr, "test error")
	assert.NotContains(t, contentStr, "Trace message", "trace is only written when the level is trace")
}

func TestTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "trace")

	logger.Trace("progress tick", "seconds", 1.5)

	assert.Contains(t, buf.String(), "TRACE: progress tick")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, "info").With("session", "voice-list")

	logger.Info("play")

	assert.Contains(t, buf.String(), `"session":"voice-list"`)
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New(Config{Level: "info"})
	assert.Error(t, err)
}

func TestPackageFunctionsWithoutDefaultLogger(t *testing.T) {
	SetDefaultLogger(nil)
	assert.NotPanics(t, func() {
		Info("nobody listening")
		Trace("nobody listening")
	})
}
