package compare

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nandrad-tools/regsuite/internal/tsv"
)

// maxFileDiffs caps the number of differences reported per file.
const maxFileDiffs = 10

// Results compares every file below refDir with its counterpart below
// computedDir. A reference file missing on the computed side is a
// difference. Files only present on the computed side are ignored.
func Results(refDir, computedDir string, tol Tolerance) ([]string, error) {
	var rels []string
	err := filepath.WalkDir(refDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(refDir, path)
		if err != nil {
			return err
		}
		rels = append(rels, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(rels)

	var diffs []string
	for _, rel := range rels {
		computedPath := filepath.Join(computedDir, rel)
		if _, err := os.Stat(computedPath); err != nil {
			diffs = append(diffs, fmt.Sprintf("%s: missing in computed results", filepath.ToSlash(rel)))
			continue
		}
		fileDiffs, err := File(filepath.Join(refDir, rel), computedPath, tol)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.ToSlash(rel), err)
		}
		for _, d := range fileDiffs {
			diffs = append(diffs, filepath.ToSlash(rel)+": "+d)
		}
	}
	return diffs, nil
}

// File compares two result files. TSV files are compared column by column
// with header labels checked verbatim; any other file is compared line by
// line and field by field.
func File(refPath, computedPath string, tol Tolerance) ([]string, error) {
	if strings.EqualFold(filepath.Ext(refPath), ".tsv") {
		return tsvFile(refPath, computedPath, tol)
	}
	return textFile(refPath, computedPath, tol)
}

func tsvFile(refPath, computedPath string, tol Tolerance) ([]string, error) {
	ref, err := tsv.Read(refPath)
	if err != nil {
		return nil, err
	}
	comp, err := tsv.Read(computedPath)
	if err != nil {
		return nil, err
	}

	if len(ref.Headers) != len(comp.Headers) {
		return []string{fmt.Sprintf("column count: reference %d, computed %d", len(ref.Headers), len(comp.Headers))}, nil
	}
	if ref.RowCount() != comp.RowCount() {
		return []string{fmt.Sprintf("row count: reference %d, computed %d", ref.RowCount(), comp.RowCount())}, nil
	}

	var diffs []string
	for c, header := range ref.Headers {
		if header != comp.Headers[c] {
			diffs = append(diffs, fmt.Sprintf("column %d header: reference %q, computed %q", c, header, comp.Headers[c]))
			continue
		}
		for r := range ref.Data[c] {
			if len(diffs) >= maxFileDiffs {
				return append(diffs, "..."), nil
			}
			if ok, d := Field(ref.Data[c][r], comp.Data[c][r], tol); !ok {
				diffs = append(diffs, fmt.Sprintf("column %q, row %d: %s", header, r, d))
			}
		}
	}
	return diffs, nil
}

func textFile(refPath, computedPath string, tol Tolerance) ([]string, error) {
	refLines, err := readLines(refPath)
	if err != nil {
		return nil, err
	}
	compLines, err := readLines(computedPath)
	if err != nil {
		return nil, err
	}
	return Lines(refLines, compLines, tol), nil
}

// Lines compares two files given as lines. Identical lines are accepted
// immediately; otherwise lines are split into fields and compared with
// Field.
func Lines(ref, computed []string, tol Tolerance) []string {
	var diffs []string
	if len(ref) != len(computed) {
		diffs = append(diffs, fmt.Sprintf("line count: reference %d, computed %d", len(ref), len(computed)))
	}
	n := min(len(ref), len(computed))
	for i := 0; i < n; i++ {
		if ref[i] == computed[i] {
			continue
		}
		if len(diffs) >= maxFileDiffs {
			return append(diffs, "...")
		}
		rf := splitFields(ref[i])
		cf := splitFields(computed[i])
		if len(rf) != len(cf) {
			diffs = append(diffs, fmt.Sprintf("line %d: reference has %d fields, computed %d", i+1, len(rf), len(cf)))
			continue
		}
		for j := range rf {
			if ok, d := Field(rf[j], cf[j], tol); !ok {
				diffs = append(diffs, fmt.Sprintf("line %d, field %d: %s", i+1, j+1, d))
				break
			}
		}
	}
	return diffs
}

// Field compares two cells: numerically under tol when both parse as
// numbers, verbatim otherwise.
func Field(ref, computed string, tol Tolerance) (bool, string) {
	r := strings.TrimSpace(ref)
	c := strings.TrimSpace(computed)
	if r == c {
		return true, ""
	}
	rv, rerr := strconv.ParseFloat(r, 64)
	cv, cerr := strconv.ParseFloat(c, 64)
	if rerr != nil || cerr != nil {
		return false, fmt.Sprintf("reference %q, computed %q", r, c)
	}
	if tol.Equal(rv, cv) {
		return true, ""
	}
	return false, fmt.Sprintf("reference %v, computed %v (tolerance: %s)", rv, cv, tol)
}

func splitFields(line string) []string {
	if strings.Contains(line, "\t") {
		return strings.Split(line, "\t")
	}
	return strings.Fields(line)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}
