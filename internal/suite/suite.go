// Package suite orchestrates a regression run: for every discovered project
// it runs the solver, compares the output against the platform reference
// directory and accumulates failures and timings.
package suite

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/nandrad-tools/regsuite/internal/compare"
	"github.com/nandrad-tools/regsuite/internal/discover"
	"github.com/nandrad-tools/regsuite/internal/output"
	"github.com/nandrad-tools/regsuite/internal/solver"
	"github.com/nandrad-tools/regsuite/internal/stats"
)

// DefaultIterations is the number of passes in performance mode.
const DefaultIterations = 3

// Executor runs one project to completion.
type Executor interface {
	Run(ctx context.Context, p discover.Project) (solver.Result, error)
}

// Preparer runs before the reference check of each project. It returns
// the artifacts that could not be prepared; any of them fails the project.
type Preparer interface {
	Prepare(ctx context.Context, p discover.Project) ([]string, error)
}

// Status is the outcome of one project.
type Status int

const (
	// StatusMatched means the solver succeeded and results match the reference.
	StatusMatched Status = iota
	// StatusMismatched means the solver succeeded but results differ.
	StatusMismatched
	// StatusFailedToRun means the project could not be run or the solver failed.
	StatusFailedToRun
	// StatusUnchecked means the solver succeeded and no comparison was made.
	StatusUnchecked
)

func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusMismatched:
		return "mismatched"
	case StatusFailedToRun:
		return "failed to run"
	case StatusUnchecked:
		return "unchecked"
	default:
		return "unknown"
	}
}

// Options configures a run.
type Options struct {
	// RunAll also runs projects without a reference directory.
	RunAll bool
	// TestInit runs the solver in initialization mode. Implies RunAll and
	// skips the result check.
	TestInit bool
	// Iterations is the number of passes in performance mode.
	Iterations int
	// PlatformID is the reference directory suffix.
	PlatformID string
}

// Outcome records what happened to one project.
type Outcome struct {
	Project discover.Project
	Status  Status
	Diffs   []string
}

// Summary accumulates the results of a run.
type Summary struct {
	Outcomes []Outcome
	// Failed lists failed project paths in order of first failure, each once.
	Failed []string
	// Timings maps output directory to wall clock seconds.
	Timings map[string]float64
	// Runs maps project path to the wall clock seconds of each
	// performance iteration.
	Runs map[string][]float64

	failedSet map[string]bool
}

func newSummary() *Summary {
	return &Summary{
		Timings:   make(map[string]float64),
		Runs:      make(map[string][]float64),
		failedSet: make(map[string]bool),
	}
}

// Success reports whether no project failed.
func (s *Summary) Success() bool {
	return len(s.Failed) == 0
}

func (s *Summary) fail(path string) {
	if s.failedSet[path] {
		return
	}
	s.failedSet[path] = true
	s.Failed = append(s.Failed, path)
}

// TimedDirs returns the output directories with a recorded time, sorted.
func (s *Summary) TimedDirs() []string {
	dirs := make([]string, 0, len(s.Timings))
	for d := range s.Timings {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// Runner executes projects sequentially.
type Runner struct {
	exec Executor
	prep Preparer
	cmp  *compare.Comparator
	out  *output.Writer
	log  *zap.SugaredLogger
	opts Options
}

// New creates a Runner.
func New(exec Executor, cmp *compare.Comparator, w *output.Writer, log *zap.SugaredLogger, opts Options) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.TestInit {
		opts.RunAll = true
	}
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultIterations
	}
	return &Runner{exec: exec, cmp: cmp, out: w, log: log, opts: opts}
}

// WithPreparer sets a step that runs before each project.
func (r *Runner) WithPreparer(p Preparer) *Runner {
	r.prep = p
	return r
}

// Run executes all projects in order and compares their results. Project
// failures are recorded in the summary; the returned error is non-nil only
// for fatal conditions such as a solver that cannot be started.
func (r *Runner) Run(ctx context.Context, projects []discover.Project) (*Summary, error) {
	sum := newSummary()
	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		outcome, err := r.runProject(ctx, p, sum)
		if err != nil {
			return sum, err
		}
		sum.Outcomes = append(sum.Outcomes, outcome)
		if outcome.Status == StatusMismatched || outcome.Status == StatusFailedToRun {
			sum.fail(p.Path)
		}
	}
	return sum, nil
}

func (r *Runner) runProject(ctx context.Context, p discover.Project, sum *Summary) (Outcome, error) {
	outcome := Outcome{Project: p, Status: StatusFailedToRun}
	r.out.Println("%s", p.Path)

	if r.prep != nil {
		failed, err := r.prep.Prepare(ctx, p)
		if err != nil {
			return outcome, err
		}
		if len(failed) > 0 {
			for _, f := range failed {
				r.out.Failure("Generation of '%s' failed.", f)
			}
			outcome.Diffs = failed
			return outcome, nil
		}
	}

	refDir := p.ReferenceDir(r.opts.PlatformID)
	skipCheck := r.opts.TestInit
	if !isDir(refDir) {
		if !r.opts.RunAll {
			r.out.Failure("Missing reference data directory '%s'", filepath.Base(refDir))
			return outcome, nil
		}
		skipCheck = true
	}

	res, err := r.exec.Run(ctx, p)
	if err != nil {
		return outcome, err
	}
	if !res.Success() {
		r.out.Failure("Simulation failed, see screenlog file %s", screenlog(p))
		r.log.Debugw("solver exited with error", "project", p.Path, "exit_code", res.ExitCode)
		return outcome, nil
	}

	if skipCheck {
		outcome.Status = StatusUnchecked
		sum.Timings[p.OutputDir] = wallClock(p, res)
		return outcome, nil
	}

	rep := r.cmp.Dirs(refDir, p.OutputDir)
	for _, note := range rep.Notes {
		r.log.Infow("statistics note", "project", p.Path, "note", note)
	}
	if !rep.Match {
		outcome.Status = StatusMismatched
		outcome.Diffs = rep.Diffs
		switch {
		case rep.Err != nil:
			r.out.Failure("Error comparing simulation results, error: %v", rep.Err)
		case rep.StatsMismatch:
			r.out.Failure("Mismatching statistics.")
		default:
			r.out.Failure("Mismatching values.")
		}
		for _, d := range rep.Diffs {
			r.out.Detail("%s", d)
		}
		r.out.Failure("Mismatching results.")
		return outcome, nil
	}

	outcome.Status = StatusMatched
	if rep.HasWallClock {
		sum.Timings[p.OutputDir] = rep.WallClock
	} else {
		sum.Timings[p.OutputDir] = res.Duration.Seconds()
	}
	return outcome, nil
}

// wallClock returns the solver-reported wall clock time of a finished run,
// or the measured process duration when the summary lacks it.
func wallClock(p discover.Project, res solver.Result) float64 {
	s, err := stats.Read(filepath.Join(p.OutputDir, stats.SummaryFile))
	if err == nil {
		if v, ok := s.WallClock(); ok {
			return v
		}
	}
	return res.Duration.Seconds()
}

func screenlog(p discover.Project) string {
	return filepath.Join(p.OutputDir, "log", "screenlog.txt")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
