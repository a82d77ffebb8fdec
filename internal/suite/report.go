package suite

import (
	"fmt"
	"path/filepath"

	"github.com/nandrad-tools/regsuite/internal/platform"
)

// Report prints the successful projects with their times, the failed
// projects, and the final verdict.
func (r *Runner) Report(sum *Summary) {
	r.out.Section("successful projects")
	var rows [][]string
	for _, dir := range sum.TimedDirs() {
		rows = append(rows, []string{displayName(dir), fmt.Sprintf("%.3f", sum.Timings[dir])})
	}
	r.out.Table([]string{"Project path", "Wall clock time [s]"}, rows, 1)
	r.verdict(sum)
}

// ReportPerformance prints the performance timings, writes them to the
// suite root, and prints the verdict.
func (r *Runner) ReportPerformance(sum *Summary, root string, host platform.HostInfo) error {
	lines := PerformanceLines(sum)

	r.out.Section("successful projects")
	r.out.Println("%-65s %s", "Project path", "Wall clock times [s], last column is min of all runs")
	for _, l := range lines {
		r.out.Success("%s", l)
	}

	path, err := WritePerformanceStats(root, lines, host)
	if err != nil {
		return err
	}
	r.out.Hint("Timings written to %s", path)

	r.verdict(sum)
	return nil
}

func (r *Runner) verdict(sum *Summary) {
	if !sum.Success() {
		r.out.Section("failed projects")
		for _, p := range sum.Failed {
			r.out.Failure("%s", p)
		}
		r.out.FinalFailure("*** Failure ***")
		return
	}
	r.out.FinalSuccess("*** Success ***")
}

// displayName shortens a path to "<parent>/<name>".
func displayName(path string) string {
	return filepath.Base(filepath.Dir(path)) + "/" + filepath.Base(path)
}
