// Package refs replaces platform reference directories with freshly
// computed solver output.
package refs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nandrad-tools/regsuite/internal/compare"
	"github.com/nandrad-tools/regsuite/internal/discover"
	"github.com/nandrad-tools/regsuite/internal/stats"
)

// Action describes the update of one project's reference directory.
type Action struct {
	Project discover.Project
	// Dest is the reference directory that is replaced.
	Dest string
	// Skipped is set when the project has no computed output.
	Skipped bool
}

// Plan determines what Update would do for the given projects.
func Plan(projects []discover.Project, platformID string) []Action {
	actions := make([]Action, 0, len(projects))
	for _, p := range projects {
		a := Action{Project: p, Dest: p.ReferenceDir(platformID)}
		if _, err := os.Stat(filepath.Join(p.OutputDir, stats.SummaryFile)); err != nil {
			a.Skipped = true
		}
		actions = append(actions, a)
	}
	return actions
}

// Update replaces the reference directory of each project that has output
// with a copy of its summary file and results tree. With dryRun set nothing
// is written.
func Update(projects []discover.Project, platformID string, dryRun bool) ([]Action, error) {
	actions := Plan(projects, platformID)
	if dryRun {
		return actions, nil
	}
	for _, a := range actions {
		if a.Skipped {
			continue
		}
		if err := apply(a); err != nil {
			return actions, fmt.Errorf("update %s: %w", a.Dest, err)
		}
	}
	return actions, nil
}

func apply(a Action) error {
	if err := os.RemoveAll(a.Dest); err != nil {
		return err
	}
	src := a.Project.OutputDir
	if err := copyFile(filepath.Join(src, stats.SummaryFile), filepath.Join(a.Dest, stats.SummaryFile)); err != nil {
		return err
	}
	results := filepath.Join(src, compare.ResultsDir)
	if _, err := os.Stat(results); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return copyTree(results, filepath.Join(a.Dest, compare.ResultsDir))
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(out, in)
	return err
}
