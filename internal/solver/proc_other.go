//go:build !windows

package solver

import (
	"io"
	"os/exec"
)

func platformArgs() []string {
	return nil
}

// configureProcess discards solver output unless show is set.
func configureProcess(cmd *exec.Cmd, show bool, stdout, stderr io.Writer) {
	if show {
		cmd.Stdout = stdout
		cmd.Stderr = stderr
	}
}
