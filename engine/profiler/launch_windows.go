//go:build profile && windows

package profiler

import (
	"os/exec"
	"syscall"
)

// hideConsole keeps the viewer from opening a console window.
func hideConsole(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
