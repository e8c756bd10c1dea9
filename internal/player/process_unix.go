//go:build !windows

package player

import (
	"os/exec"
	"syscall"
)

// setupPlayerProcess puts mpv in its own process group so terminal signals meant for the TUI do not reach it
func setupPlayerProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
