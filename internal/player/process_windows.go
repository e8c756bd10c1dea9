//go:build windows

package player

import (
	"os/exec"
	"syscall"
)

// setupPlayerProcess starts mpv without a console window of its own
func setupPlayerProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | 0x08000000, // CREATE_NO_WINDOW
	}
}
