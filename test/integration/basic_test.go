// Package integration contains integration tests for regsuite.
package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/nandrad-tools/regsuite/internal/compare"
	"github.com/nandrad-tools/regsuite/internal/config"
	"github.com/nandrad-tools/regsuite/internal/discover"
	"github.com/nandrad-tools/regsuite/internal/output"
	"github.com/nandrad-tools/regsuite/internal/solver"
	"github.com/nandrad-tools/regsuite/internal/suite"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string
)

// fixturesDir returns the path to the test fixtures directory.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures")
	})
	return fixturesDirPath
}

// copySuite copies the fixture suite into a temporary directory, since
// solver runs write output directories next to the project files.
func copySuite(t *testing.T) string {
	t.Helper()
	dst := filepath.Join(t.TempDir(), "suite")
	if err := os.CopyFS(dst, os.DirFS(filepath.Join(fixturesDir(), "suite"))); err != nil {
		t.Fatalf("failed to copy fixture suite: %v", err)
	}
	return dst
}

// writeSolver creates a solver stub that reproduces the reference output of
// a project, or writes a bare summary when there is none. extra is appended
// to the script to alter the output afterwards.
func writeSolver(t *testing.T, extra string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script solver stub requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "solver.sh")
	script := `#!/bin/sh
out="${1%.*}"
mkdir -p "$out/log"
if [ -d "$out.gcc_linux" ]; then
	cp -R "$out.gcc_linux/." "$out/"
else
	printf 'WallClockTime = 0.5\n' > "$out/log/summary.txt"
fi
` + extra + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write solver stub: %v", err)
	}
	return path
}

type fixtureSuite struct {
	root     string
	cfg      *config.Config
	projects []discover.Project
}

func loadSuite(t *testing.T, root string) fixtureSuite {
	t.Helper()
	cfg, warnings, err := config.Find(root, "")
	if err != nil {
		t.Fatalf("failed to load suite config: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected config warnings: %v", warnings)
	}
	projects, err := discover.Projects(root, "nandrad", cfg.ExcludeDirs...)
	if err != nil {
		t.Fatalf("failed to collect projects: %v", err)
	}
	return fixtureSuite{root: root, cfg: cfg, projects: projects}
}

func (s fixtureSuite) runner(t *testing.T, opts suite.Options, extra string) (*suite.Runner, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	inv := &solver.Invoker{Executable: writeSolver(t, extra), Args: s.cfg.SolverArgs}
	opts.PlatformID = s.cfg.PlatformID
	opts.Iterations = s.cfg.Iterations
	w := output.NewWithWriters(&buf, &buf, false)
	return suite.New(inv, compare.New(s.cfg.Tolerance.Policy()), w, nil, opts), &buf
}

func TestSuiteDiscovery(t *testing.T) {
	t.Parallel()
	s := loadSuite(t, copySuite(t))

	var names []string
	for _, p := range s.projects {
		names = append(names, p.DisplayName())
	}
	want := []string{"Heating/Floor", "Unreferenced/New", "Ventilation/Room"}
	if len(names) != len(want) {
		t.Fatalf("projects = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("projects[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSuiteRunAll(t *testing.T) {
	t.Parallel()
	s := loadSuite(t, copySuite(t))
	r, buf := s.runner(t, suite.Options{RunAll: true}, "")

	sum, err := r.Run(t.Context(), s.projects)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	r.Report(sum)

	if !sum.Success() {
		t.Fatalf("suite failed: %v\n%s", sum.Failed, buf.String())
	}
	wantStatus := map[string]suite.Status{
		"Heating/Floor":    suite.StatusMatched,
		"Unreferenced/New": suite.StatusUnchecked,
		"Ventilation/Room": suite.StatusMatched,
	}
	for _, o := range sum.Outcomes {
		if got, want := o.Status, wantStatus[o.Project.DisplayName()]; got != want {
			t.Errorf("%s: status = %v, want %v", o.Project.DisplayName(), got, want)
		}
	}
	if got := sum.Timings[filepath.Join(s.root, "Ventilation", "Room")]; got != 3.5 {
		t.Errorf("Room wall clock = %v, want 3.5", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte("*** Success ***")) {
		t.Errorf("report missing success verdict:\n%s", buf.String())
	}
}

func TestSuitePerformance(t *testing.T) {
	t.Parallel()
	s := loadSuite(t, copySuite(t))
	r, _ := s.runner(t, suite.Options{}, "")

	sum, err := r.RunPerformance(t.Context(), s.projects)
	if err != nil {
		t.Fatalf("RunPerformance() error = %v", err)
	}
	for _, p := range s.projects {
		if got := len(sum.Runs[p.Path]); got != s.cfg.Iterations {
			t.Errorf("%s: %d runs, want %d", p.DisplayName(), got, s.cfg.Iterations)
		}
	}
}
