//go:build windows

package player

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/google/uuid"
	"gopkg.in/natefinch/npipe.v2"
)

// newSocketPath returns a named pipe unique to one engine
func newSocketPath() string {
	return `\\.\pipe\hookline-mpv-` + uuid.NewString()
}

func dialIPC(ctx context.Context, path string) (net.Conn, error) {
	log.Debug("Connecting to Windows named pipe", "path", path)

	timeout := 2 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	conn, err := npipe.DialTimeout(path, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mpv pipe: %w", err)
	}
	return conn, nil
}

// Named pipes disappear with the process
func removeSocket(string) {}
