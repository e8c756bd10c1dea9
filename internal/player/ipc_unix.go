//go:build !windows

package player

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/google/uuid"
)

// newSocketPath returns a socket path unique to one engine
func newSocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "hookline-mpv-"+uuid.NewString()+".sock")
}

func dialIPC(ctx context.Context, path string) (net.Conn, error) {
	log.Debug("Connecting to Unix socket", "path", path)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mpv socket: %w", err)
	}
	return conn, nil
}

func removeSocket(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn("Failed to remove mpv socket file", "path", path, "error", err)
	}
}
