// Package compare checks a computed solver output directory against its
// reference directory: solver statistics from log/summary.txt and the
// tabular files below results/.
package compare

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nandrad-tools/regsuite/internal/stats"
)

// ResultsDir is the folder holding tabular output inside an output directory.
const ResultsDir = "results"

// Report is the outcome of comparing one computed directory against its
// reference.
type Report struct {
	Match bool
	// StatsMismatch is set when solver statistics differ.
	StatsMismatch bool
	// ValuesMismatch is set when result files differ.
	ValuesMismatch bool
	Diffs          []string
	Notes          []string
	// WallClock is the computed run's WallClockTime in seconds, if present.
	WallClock    float64
	HasWallClock bool
	// Err holds an unexpected I/O error. It is folded into Match=false.
	Err error
}

// Comparator compares output directories under a fixed tolerance policy.
type Comparator struct {
	tol Tolerance
}

// New creates a Comparator. An empty mode falls back to ModeCombined.
func New(tol Tolerance) *Comparator {
	if tol.Mode == "" {
		tol.Mode = ModeCombined
	}
	return &Comparator{tol: tol}
}

// Tolerance returns the comparator's policy.
func (c *Comparator) Tolerance() Tolerance {
	return c.tol
}

// Dirs compares the computed output directory against the reference
// directory. It never returns an error: missing statistics files and
// unexpected I/O errors yield a failed report.
func (c *Comparator) Dirs(refDir, computedDir string) Report {
	var rep Report

	refStats, err := stats.Read(filepath.Join(refDir, stats.SummaryFile))
	if err != nil {
		return failed(rep, fmt.Errorf("reference: %w", err))
	}
	compStats, err := stats.Read(filepath.Join(computedDir, stats.SummaryFile))
	if err != nil {
		return failed(rep, fmt.Errorf("computed: %w", err))
	}
	rep.WallClock, rep.HasWallClock = compStats.WallClock()

	diffs, notes := Stats(refStats, compStats, c.tol)
	rep.Notes = append(rep.Notes, notes...)
	if len(diffs) > 0 {
		rep.StatsMismatch = true
		rep.Diffs = append(rep.Diffs, diffs...)
		return rep
	}

	refResults := filepath.Join(refDir, ResultsDir)
	info, err := os.Stat(refResults)
	switch {
	case errors.Is(err, os.ErrNotExist):
		rep.Match = true
		return rep
	case err != nil:
		return failed(rep, err)
	case !info.IsDir():
		return failed(rep, fmt.Errorf("%s is not a directory", refResults))
	}

	diffs, err = Results(refResults, filepath.Join(computedDir, ResultsDir), c.tol)
	if err != nil {
		return failed(rep, err)
	}
	if len(diffs) > 0 {
		rep.ValuesMismatch = true
		rep.Diffs = append(rep.Diffs, diffs...)
		return rep
	}

	rep.Match = true
	return rep
}

func failed(rep Report, err error) Report {
	rep.Match = false
	rep.Err = err
	rep.Diffs = append(rep.Diffs, err.Error())
	return rep
}
