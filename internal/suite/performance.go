package suite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nandrad-tools/regsuite/internal/discover"
	"github.com/nandrad-tools/regsuite/internal/platform"
)

// PerformanceFile is written to the suite root in performance mode.
const PerformanceFile = "performance_stats.txt"

// RunPerformance runs every project Iterations times without checking
// results and records the wall clock time of each successful run.
func (r *Runner) RunPerformance(ctx context.Context, projects []discover.Project) (*Summary, error) {
	sum := newSummary()
	for iter := 0; iter < r.opts.Iterations; iter++ {
		r.log.Infow("performance pass", "iteration", iter+1, "of", r.opts.Iterations)
		for _, p := range projects {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			r.out.Println("%s", p.Path)

			res, err := r.exec.Run(ctx, p)
			if err != nil {
				return sum, err
			}
			if !res.Success() {
				sum.fail(p.Path)
				r.out.Failure("Simulation failed, see screenlog file %s", screenlog(p))
				continue
			}
			sum.Runs[p.Path] = append(sum.Runs[p.Path], wallClock(p, res))
		}
	}
	return sum, nil
}

// PerformanceLines formats the per-project timings: the project, each
// run's time, then the minimum of all runs.
func PerformanceLines(sum *Summary) []string {
	paths := make([]string, 0, len(sum.Runs))
	for p := range sum.Runs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	lines := make([]string, 0, len(paths))
	for _, path := range paths {
		runs := sum.Runs[path]
		var b strings.Builder
		fmt.Fprintf(&b, "%-65s", displayName(path))
		minVal := runs[0]
		for _, t := range runs {
			fmt.Fprintf(&b, " %10.3f", t)
			minVal = min(minVal, t)
		}
		fmt.Fprintf(&b, "     %10.3f", minVal)
		lines = append(lines, b.String())
	}
	return lines
}

// WritePerformanceStats writes the timing lines to PerformanceFile in root,
// preceded by host information as comment lines.
func WritePerformanceStats(root string, lines []string, host platform.HostInfo) (string, error) {
	var b strings.Builder
	for _, h := range host.Lines() {
		b.WriteString("# " + h + "\n")
	}
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	path := filepath.Join(root, PerformanceFile)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
