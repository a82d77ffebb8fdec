package integration

import (
	"strings"
	"testing"

	"github.com/nandrad-tools/regsuite/internal/suite"
)

func TestSuiteMissingReference(t *testing.T) {
	t.Parallel()
	s := loadSuite(t, copySuite(t))
	r, buf := s.runner(t, suite.Options{}, "")

	sum, err := r.Run(t.Context(), s.projects)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	r.Report(sum)

	if sum.Success() {
		t.Fatal("expected failure for project without reference results")
	}
	if len(sum.Failed) != 1 || !strings.HasSuffix(sum.Failed[0], "New.nandrad") {
		t.Errorf("failed = %v, want only New.nandrad", sum.Failed)
	}
	if !strings.Contains(buf.String(), "Missing reference data directory 'New.gcc_linux'") {
		t.Errorf("output missing reference message:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "*** Failure ***") {
		t.Errorf("report missing failure verdict:\n%s", buf.String())
	}
}

func TestSuiteMismatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		extra      string
		wantFailed string
		wantOut    []string
	}{
		{
			name: "values",
			extra: `case "$1" in *Room.nandrad)
	printf 'Time [h]\tAir temperature [C]\tHeating load [W]\n0\t20\t150\n1\t21.5\t142.25\n2\t20.75\t138.5\n' > "$out/results/states.tsv";;
esac`,
			wantFailed: "Room.nandrad",
			wantOut:    []string{"Mismatching values.", `column "Air temperature [C]"`, "Mismatching results."},
		},
		{
			name: "statistics",
			extra: `case "$1" in *Floor.nandrad)
	printf 'WallClockTime = 1.0\nIntegratorSteps = 95\n' > "$out/log/summary.txt";;
esac`,
			wantFailed: "Floor.nandrad",
			wantOut:    []string{"Mismatching statistics.", "IntegratorSteps", "Mismatching results."},
		},
		{
			name:       "solver failure",
			extra:      `case "$1" in *Floor.nandrad) exit 3;; esac`,
			wantFailed: "Floor.nandrad",
			wantOut:    []string{"Simulation failed, see screenlog file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := loadSuite(t, copySuite(t))
			r, buf := s.runner(t, suite.Options{RunAll: true}, tt.extra)

			sum, err := r.Run(t.Context(), s.projects)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if len(sum.Failed) != 1 || !strings.HasSuffix(sum.Failed[0], tt.wantFailed) {
				t.Fatalf("failed = %v, want only %s\n%s", sum.Failed, tt.wantFailed, buf.String())
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
