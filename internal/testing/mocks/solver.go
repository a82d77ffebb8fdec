// Package mocks provides shared test doubles for regsuite packages.
package mocks

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nandrad-tools/regsuite/internal/discover"
	"github.com/nandrad-tools/regsuite/internal/solver"
	"github.com/nandrad-tools/regsuite/internal/stats"
)

// DefaultDuration is the measured duration reported by Solver runs.
const DefaultDuration = 250 * time.Millisecond

// Solver stands in for a solver executable. Each run recreates the
// project's output directory and writes the configured summary into it.
// Use NewSolver() to create instances with a fluent builder API.
type Solver struct {
	summary   string
	results   map[string]string
	exitCodes map[string]int
	err       error
	duration  time.Duration

	// RunFunc, if set, replaces the default behavior of Run.
	RunFunc func(ctx context.Context, p discover.Project) (solver.Result, error)

	// Execution tracking (thread-safe)
	runCount int32
	mu       sync.Mutex
	calls    []string
}

// NewSolver creates a mock solver writing the given summary.txt content.
func NewSolver(summary string) *Solver {
	return &Solver{
		summary:   summary,
		results:   make(map[string]string),
		exitCodes: make(map[string]int),
		duration:  DefaultDuration,
	}
}

// WithResult writes content to results/<name> in every output directory.
func (m *Solver) WithResult(name, content string) *Solver {
	m.results[name] = content
	return m
}

// WithExitCode makes runs of the project with the given stem fail.
func (m *Solver) WithExitCode(stem string, code int) *Solver {
	m.exitCodes[stem] = code
	return m
}

// WithError makes every run fail to start.
func (m *Solver) WithError(err error) *Solver {
	m.err = err
	return m
}

// WithDuration sets the measured duration of successful runs.
func (m *Solver) WithDuration(d time.Duration) *Solver {
	m.duration = d
	return m
}

// Run implements the suite executor interface.
func (m *Solver) Run(ctx context.Context, p discover.Project) (solver.Result, error) {
	atomic.AddInt32(&m.runCount, 1)
	m.mu.Lock()
	m.calls = append(m.calls, p.Stem())
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, p)
	}
	if m.err != nil {
		return solver.Result{}, m.err
	}
	if code := m.exitCodes[p.Stem()]; code != 0 {
		return solver.Result{ExitCode: code, Duration: m.duration}, nil
	}
	if err := m.writeOutput(p); err != nil {
		return solver.Result{}, err
	}
	return solver.Result{Duration: m.duration}, nil
}

func (m *Solver) writeOutput(p discover.Project) error {
	if err := os.RemoveAll(p.OutputDir); err != nil {
		return err
	}
	summary := filepath.Join(p.OutputDir, stats.SummaryFile)
	if err := os.MkdirAll(filepath.Dir(summary), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(summary, []byte(m.summary), 0644); err != nil {
		return err
	}
	for name, content := range m.results {
		path := filepath.Join(p.OutputDir, "results", name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// Test inspection methods

// RunCount returns the number of times Run was called.
func (m *Solver) RunCount() int32 {
	return atomic.LoadInt32(&m.runCount)
}

// Calls returns the project stems passed to Run, in call order.
func (m *Solver) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.calls))
	copy(result, m.calls)
	return result
}

// Reset clears execution tracking state.
func (m *Solver) Reset() {
	atomic.StoreInt32(&m.runCount, 0)
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}

// Preparer stands in for a per-project preparation step such as FMU export.
type Preparer struct {
	Failed []string
	Err    error

	mu    sync.Mutex
	calls []string
}

// Prepare implements the suite preparer interface.
func (m *Preparer) Prepare(_ context.Context, p discover.Project) ([]string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, p.Stem())
	m.mu.Unlock()
	return m.Failed, m.Err
}

// Calls returns the project stems passed to Prepare, in call order.
func (m *Preparer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.calls))
	copy(result, m.calls)
	return result
}
