package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nandrad-tools/regsuite/internal/errors"
	"github.com/nandrad-tools/regsuite/internal/output"
	"github.com/nandrad-tools/regsuite/internal/platform"
)

// runCaptured runs the CLI with a fresh colorless writer over buffers.
func runCaptured(args ...string) (code int, stdout, stderr *bytes.Buffer) {
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	code = run(context.Background(), args, output.NewWithWriters(stdout, stderr, false))
	return code, stdout, stderr
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// newSuiteDir creates a suite with one project and reference results for
// the host platform. It returns the suite root and the reference directory.
func newSuiteDir(t *testing.T) (root, refDir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script solver stub requires a POSIX shell")
	}
	id, err := platform.Resolve("")
	if err != nil {
		t.Skipf("unsupported platform: %v", err)
	}
	root = t.TempDir()
	refDir = filepath.Join(root, "Case1", "Room."+id)
	writeFile(t, filepath.Join(root, "Case1", "Room.nandrad"), "<project/>")
	writeFile(t, filepath.Join(refDir, "log", "summary.txt"), "WallClockTime = 9.0\nIntegratorSteps = 42\n")
	return root, refDir
}

// writeSolver creates a solver stub that reports the given step count.
func writeSolver(t *testing.T, steps string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solver.sh")
	script := `#!/bin/sh
out="${1%.nandrad}"
mkdir -p "$out/log"
printf 'WallClockTime = 1.0\nIntegratorSteps = ` + steps + `\n' > "$out/log/summary.txt"
`
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Help(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
	}{
		{"empty", []string{}},
		{"-h", []string{"-h"}},
		{"--help", []string{"--help"}},
		{"run --help", []string{"run", "--help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, stdout, _ := runCaptured(tt.args...)
			if code != errors.ExitSuccess {
				t.Errorf("run(%v) = %d, want 0", tt.args, code)
			}
			if !strings.Contains(stdout.String(), "regsuite") {
				t.Errorf("help output missing program name:\n%s", stdout.String())
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	t.Parallel()
	code, stdout, _ := runCaptured("--version")
	if code != errors.ExitSuccess {
		t.Errorf("run(--version) = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), Version) {
		t.Errorf("version output = %q, want it to contain %q", stdout.String(), Version)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"missing required flags", []string{"run", "-p", root}},
		{"unknown flag", []string{"run", "--bogus"}},
		{"test-init with performance", []string{"run", "-p", root, "-s", "solver", "-e", "nandrad", "--test-init", "--performance"}},
		{"missing suite directory", []string{"run", "-p", filepath.Join(root, "missing"), "-s", "solver", "-e", "nandrad"}},
		{"tsv without arguments", []string{"tsv"}},
		{"tsv unknown operation", []string{"tsv", "transpose", "in.tsv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, _, stderr := runCaptured(tt.args...)
			if code != errors.ExitConfigError {
				t.Errorf("run(%v) = %d, want %d\nstderr: %s", tt.args, code, errors.ExitConfigError, stderr.String())
			}
		})
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()
	root, _ := newSuiteDir(t)
	writeFile(t, filepath.Join(root, "regsuite.yaml"), "iterations: -1\n")

	code, _, stderr := runCaptured("run", "-p", root, "-s", "/bin/true", "-e", "nandrad")
	if code != errors.ExitConfigError {
		t.Errorf("run() = %d, want %d\nstderr: %s", code, errors.ExitConfigError, stderr.String())
	}
}

func TestRun_MissingSolver(t *testing.T) {
	t.Parallel()
	root, _ := newSuiteDir(t)

	code, _, stderr := runCaptured("run", "-p", root, "-s", filepath.Join(root, "no-such-solver"), "-e", "nandrad")
	if code != errors.ExitFailure {
		t.Errorf("run() = %d, want %d", code, errors.ExitFailure)
	}
	if !strings.Contains(stderr.String(), "regsuite:") {
		t.Errorf("stderr = %q, want error prefix", stderr.String())
	}
}

func TestRun_Suite(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		steps    string
		wantCode int
		wantOut  string
	}{
		{"matching results", "42", errors.ExitSuccess, "*** Success ***"},
		{"mismatching results", "41", errors.ExitFailure, "*** Failure ***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root, _ := newSuiteDir(t)
			solverPath := writeSolver(t, tt.steps)

			code, stdout, stderr := runCaptured("run", "-p", root, "-s", solverPath, "-e", ".nandrad")
			if code != tt.wantCode {
				t.Fatalf("run() = %d, want %d\nstdout: %s\nstderr: %s", code, tt.wantCode, stdout.String(), stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantOut) {
				t.Errorf("stdout missing %q:\n%s", tt.wantOut, stdout.String())
			}
			if !strings.Contains(stdout.String(), "Number of projects") {
				t.Errorf("stdout missing header:\n%s", stdout.String())
			}
			if strings.Contains(stderr.String(), "regsuite:") {
				t.Errorf("suite failure should not print an error line:\n%s", stderr.String())
			}
		})
	}
}

func TestRun_Quiet(t *testing.T) {
	t.Parallel()
	root, _ := newSuiteDir(t)

	code, stdout, _ := runCaptured("run", "-q", "-p", root, "-s", writeSolver(t, "42"), "-e", "nandrad")
	if code != errors.ExitSuccess {
		t.Fatalf("run() = %d, want 0", code)
	}
	if strings.Contains(stdout.String(), "Number of projects") {
		t.Errorf("quiet run printed the header:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "*** Success ***") {
		t.Errorf("quiet run must still print the verdict:\n%s", stdout.String())
	}
}

func TestRun_NoColorsIsPerInvocation(t *testing.T) {
	t.Parallel()
	root, _ := newSuiteDir(t)
	args := []string{"update-refs", "-p", root, "-e", "nandrad", "--dry-run"}

	var buf bytes.Buffer
	first := output.NewWithWriters(&buf, &buf, true)
	if code := run(context.Background(), append(args, "--no-colors"), first); code != errors.ExitSuccess {
		t.Fatalf("run(--no-colors) = %d, want 0\n%s", code, buf.String())
	}
	if first.Color() {
		t.Error("--no-colors did not disable colors for its invocation")
	}

	second := output.NewWithWriters(&buf, &buf, true)
	if code := run(context.Background(), args, second); code != errors.ExitSuccess {
		t.Fatalf("run() = %d, want 0\n%s", code, buf.String())
	}
	if !second.Color() {
		t.Error("--no-colors leaked into a later invocation")
	}
}

func TestRun_UpdateRefs(t *testing.T) {
	t.Parallel()
	root, refDir := newSuiteDir(t)
	writeFile(t, filepath.Join(root, "Case1", "Room", "log", "summary.txt"), "WallClockTime = 2.0\nIntegratorSteps = 43\n")

	code, stdout, _ := runCaptured("update-refs", "-p", root, "-e", "nandrad", "--dry-run")
	if code != errors.ExitSuccess {
		t.Fatalf("dry run = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "DRY RUN") {
		t.Errorf("stdout missing dry run marker:\n%s", stdout.String())
	}
	ref := filepath.Join(refDir, "log", "summary.txt")
	if data, _ := os.ReadFile(ref); !strings.Contains(string(data), "= 42") {
		t.Errorf("dry run modified reference: %q", data)
	}

	if code, _, _ := runCaptured("update-refs", "-p", root, "-e", "nandrad"); code != errors.ExitSuccess {
		t.Fatalf("update = %d, want 0", code)
	}
	if data, _ := os.ReadFile(ref); !strings.Contains(string(data), "= 43") {
		t.Errorf("reference not replaced: %q", data)
	}
}

func TestRun_Tsv(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	input := filepath.Join(dir, "states.tsv")
	writeFile(t, input, "Time [h]\tA [C]\tB [C]\n0\t1\t2\n1\t3\t4\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "remove columns",
			args: []string{"tsv", "-o", filepath.Join(dir, "removed.tsv"), "remove_columns", input, "1"},
			want: "Time [h]\tB [C]\n0\t2\n1\t4\n",
		},
		{
			name: "extract rows",
			args: []string{"tsv", "-o", filepath.Join(dir, "rows.tsv"), "extract_rows", input, "1"},
			want: "Time [h]\tA [C]\tB [C]\n1\t3\t4\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, _, stderr := runCaptured(tt.args...)
			if code != errors.ExitSuccess {
				t.Fatalf("run(%v) = %d, want 0\nstderr: %s", tt.args, code, stderr.String())
			}
			data, err := os.ReadFile(tt.args[2])
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("output = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestRun_TsvDefaultOutput(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	input := filepath.Join(dir, "states.tsv")
	writeFile(t, input, "Time [h]\tA [C]\n0\t\n")

	if code, _, _ := runCaptured("tsv", "empty2zero", input); code != errors.ExitSuccess {
		t.Fatalf("run() = %d, want 0", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "states_out.tsv")); err != nil {
		t.Errorf("default output not written: %v", err)
	}
}

func TestRun_TsvMissingInput(t *testing.T) {
	t.Parallel()
	input := filepath.Join(t.TempDir(), "missing.tsv")

	code, _, stderr := runCaptured("tsv", "empty2zero", input)
	if code != errors.ExitFailure {
		t.Errorf("run() = %d, want %d", code, errors.ExitFailure)
	}
	if !strings.Contains(stderr.String(), "input file not found") {
		t.Errorf("stderr = %q, want not-found message", stderr.String())
	}
}
