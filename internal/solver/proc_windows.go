//go:build windows

package solver

import (
	"io"
	"os/exec"
	"syscall"
)

// createNewConsole is CREATE_NEW_CONSOLE from the Win32 process creation flags.
const createNewConsole = 0x00000010

func platformArgs() []string {
	return []string{"-x", "--verbosity-level=0"}
}

// configureProcess starts the solver in its own console window.
func configureProcess(cmd *exec.Cmd, _ bool, _, _ io.Writer) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNewConsole}
}
