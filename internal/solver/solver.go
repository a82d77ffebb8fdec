// Package solver runs the external solver executable on one project.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nandrad-tools/regsuite/internal/discover"
	suiteerrors "github.com/nandrad-tools/regsuite/internal/errors"
)

// CmdlineSuffix is appended to a project path to locate its optional file
// holding additional solver arguments.
const CmdlineSuffix = ".cmdline"

// Result describes one finished solver run.
type Result struct {
	ExitCode int
	Duration time.Duration
	Command  []string
}

// Success reports whether the solver exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Invoker runs a solver executable. The zero value is not usable;
// Executable must be set.
type Invoker struct {
	Executable string
	// Args are appended to every invocation.
	Args []string
	// TestInit adds --test-init and shows the solver's output.
	TestInit bool
	Logger   *zap.SugaredLogger
	// Stdout and Stderr receive solver output when it is shown.
	// They default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Check verifies that the executable can be found.
func (inv *Invoker) Check() error {
	if inv.Executable == "" {
		return suiteerrors.Environment("no solver executable given")
	}
	if _, err := exec.LookPath(inv.Executable); err != nil {
		return suiteerrors.WrapEnvironment(err, fmt.Sprintf("solver executable %q not found", inv.Executable))
	}
	return nil
}

// Command returns the argument vector used to run project p, starting with
// the executable.
func (inv *Invoker) Command(p discover.Project) ([]string, error) {
	cmdline := []string{inv.Executable, p.Path}
	if inv.TestInit {
		cmdline = append(cmdline, "--test-init")
	}
	addOn, err := readCmdline(p.Path + CmdlineSuffix)
	if err != nil {
		return nil, err
	}
	cmdline = append(cmdline, addOn...)
	cmdline = append(cmdline, inv.Args...)
	cmdline = append(cmdline, platformArgs()...)
	return cmdline, nil
}

// Run removes the project's output directory and runs the solver on it,
// blocking until it exits. A nonzero exit status is reported through
// Result.ExitCode; the returned error is non-nil only when the solver
// could not be started or ctx was cancelled.
func (inv *Invoker) Run(ctx context.Context, p discover.Project) (Result, error) {
	log := inv.logger()

	if err := p.Validate(); err != nil {
		return Result{}, suiteerrors.ProjectError(p.Path, "refusing to remove output directory "+p.OutputDir)
	}
	if err := os.RemoveAll(p.OutputDir); err != nil {
		return Result{}, suiteerrors.Wrap(err, fmt.Sprintf("cannot remove output directory %s", p.OutputDir))
	}

	cmdline, err := inv.Command(p)
	if err != nil {
		return Result{}, err
	}
	res := Result{Command: cmdline}
	log.Debugw("running solver", "command", strings.Join(cmdline, " "))

	cmd := NewCommand(ctx, cmdline, inv.TestInit, inv.stdout(), inv.stderr())

	start := time.Now()
	err = cmd.Run()
	res.Duration = time.Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}
	res.ExitCode, err = ExitStatus(err)
	if err != nil {
		return res, suiteerrors.WrapEnvironment(err, fmt.Sprintf("cannot start solver %q", inv.Executable))
	}

	log.Debugw("solver finished", "project", p.Path, "exit_code", res.ExitCode, "duration", res.Duration)
	return res, nil
}

// NewCommand creates the subprocess for argv. On Windows it gets its own
// console; elsewhere its output is discarded unless show is set.
func NewCommand(ctx context.Context, argv []string, show bool, stdout, stderr io.Writer) *exec.Cmd {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	configureProcess(cmd, show, stdout, stderr)
	return cmd
}

// ExitStatus converts the error returned by exec.Cmd.Run into an exit
// code. Errors other than a nonzero exit are returned unchanged. A process
// killed by a signal reports -1.
func ExitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code != 0 {
			return code, nil
		}
		return -1, nil
	}
	return 0, err
}

func (inv *Invoker) logger() *zap.SugaredLogger {
	if inv.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return inv.Logger
}

func (inv *Invoker) stdout() io.Writer {
	if inv.Stdout == nil {
		return os.Stdout
	}
	return inv.Stdout
}

func (inv *Invoker) stderr() io.Writer {
	if inv.Stderr == nil {
		return os.Stderr
	}
	return inv.Stderr
}

// readCmdline returns the arguments from the first line of path, or nil
// if the file does not exist.
func readCmdline(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.Fields(line), nil
}
