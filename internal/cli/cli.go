// Package cli provides command-line interface functionality for regsuite.
package cli

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/nandrad-tools/regsuite/internal/errors"
	"github.com/nandrad-tools/regsuite/internal/output"
)

// Version is set at build time.
var Version = "dev"

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return RunContext(context.Background(), args)
}

// RunContext is Run with a context that aborts the current solver run when
// cancelled.
func RunContext(ctx context.Context, args []string) int {
	return run(ctx, args, output.New())
}

// run executes the CLI, writing through out.
func run(ctx context.Context, args []string, out *output.Writer) int {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	var started bool
	app := newApp(out, &started)

	err := app.RunContext(ctx, append([]string{app.Name}, args...))
	switch {
	case err == nil:
		return errors.ExitSuccess
	case errors.IsKind(err, errors.KindSuiteFailed):
		// The failure report has already been printed.
		return errors.ExitFailure
	case !started:
		// Flag parsing failed before any command ran.
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	default:
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
}

func newApp(out *output.Writer, started *bool) *cli.App {
	action := func(fn func(*cli.Context, *output.Writer) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			*started = true
			return fn(c, out)
		}
	}

	return &cli.App{
		Name:            "regsuite",
		Usage:           "Regression test runner for simulation solvers",
		Version:         Version,
		Writer:          out.Stdout(),
		ErrWriter:       out.Stderr(),
		HideHelpCommand: true,
		// Errors are mapped to exit codes by RunContext.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run all projects of a test suite and compare against reference results",
				Flags:  runFlags,
				Action: action(cmdRun),
			},
			{
				Name:   "fmu",
				Usage:  "Export NANDRAD projects as FMUs and run the co-simulation test suite",
				Flags:  fmuFlags,
				Action: action(cmdFMU),
			},
			{
				Name:   "update-refs",
				Usage:  "Replace reference results with the most recently computed output",
				Flags:  updateRefsFlags,
				Action: action(cmdUpdateRefs),
			},
			{
				Name:      "tsv",
				Usage:     "Manipulate columns and rows of a tab-separated value file",
				ArgsUsage: "<operation> <input.tsv> [arguments...]",
				Flags:     tsvFlags,
				Action:    action(cmdTsv),
			},
		},
	}
}
