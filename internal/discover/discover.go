// Package discover finds solver project files below a test-suite root.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResourcesDir is the directory name whose direct children are never
// treated as projects.
const ResourcesDir = "resources"

// Project is one solver input case.
type Project struct {
	// Path is the absolute path of the project file.
	Path string
	// OutputDir is where the solver writes its output: Path without extension.
	OutputDir string
}

// NewProject creates a Project for the given project file path.
func NewProject(path string) Project {
	return Project{
		Path:      path,
		OutputDir: strings.TrimSuffix(path, filepath.Ext(path)),
	}
}

// Validate reports whether OutputDir is a proper child of the directory
// holding the project file. A file named only by its extension (".nandrad")
// or with a dot stem ("..nandrad") would otherwise map its output onto the
// case directory or one of its parents.
func (p Project) Validate() error {
	out := filepath.Clean(p.OutputDir)
	if filepath.Dir(out) != filepath.Dir(filepath.Clean(p.Path)) || out == filepath.Clean(p.Path) {
		return fmt.Errorf("project file %s has no name before its extension", p.Path)
	}
	return nil
}

// ReferenceDir returns the reference directory for the given platform,
// i.e. "<output dir>.<platformID>".
func (p Project) ReferenceDir(platformID string) string {
	return p.OutputDir + "." + platformID
}

// Stem returns the project file name without extension.
func (p Project) Stem() string {
	return filepath.Base(p.OutputDir)
}

// DisplayName returns "<parent dir>/<file name>", the form used in reports.
func (p Project) DisplayName() string {
	return filepath.Base(filepath.Dir(p.Path)) + "/" + filepath.Base(p.Path)
}

// Projects walks root recursively and returns every regular file ending in
// "."+ext, skipping files directly inside a directory named "resources" and
// directories listed in excludeDirs. Results are absolute and sorted.
func Projects(root, ext string, excludeDirs ...string) ([]Project, error) {
	suffix := "." + strings.TrimPrefix(ext, ".")
	if suffix == "." {
		return nil, fmt.Errorf("empty project extension")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(excludeDirs))
	for _, d := range excludeDirs {
		excluded[d] = true
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != absRoot && excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}
		if filepath.Base(filepath.Dir(path)) == ResourcesDir {
			return nil
		}
		if NewProject(path).Validate() != nil {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(paths)

	projects := make([]Project, len(paths))
	for i, p := range paths {
		projects[i] = NewProject(p)
	}
	return projects, nil
}

// Siblings lists the files in dir (not recursive) whose name ends in
// "."+ext, sorted by name.
func Siblings(dir, ext string) ([]string, error) {
	suffix := "." + strings.TrimPrefix(ext, ".")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), suffix) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
