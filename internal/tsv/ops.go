package tsv

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Operation names accepted by Apply.
const (
	OpRemoveEmpty    = "remove_empty"
	OpEmptyToZero    = "empty2zero"
	OpInsertColumns  = "insert_columns"
	OpRemoveColumns  = "remove_columns"
	OpExtractColumns = "extract_columns"
	OpRemoveRows     = "remove_rows"
	OpExtractRows    = "extract_rows"
)

// Operations lists all supported operations.
func Operations() []string {
	return []string{
		OpRemoveEmpty, OpEmptyToZero, OpInsertColumns, OpRemoveColumns,
		OpExtractColumns, OpRemoveRows, OpExtractRows,
	}
}

// MaxRangeSize bounds the number of indexes a single range may expand to.
const MaxRangeSize = 1_000_000

// ExpandRange expands "7" to [7] and "3-5" to [3 4 5]. Reversed ranges are
// normalised, so "5-3" also yields [3 4 5]. Ranges spanning more than
// MaxRangeSize indexes are rejected.
func ExpandRange(r string) ([]int, error) {
	tokens := strings.Split(strings.TrimSpace(r), "-")
	switch len(tokens) {
	case 1:
		i, err := strconv.Atoi(tokens[0])
		if err != nil || i < 0 {
			return nil, fmt.Errorf("invalid range value '%s'", r)
		}
		return []int{i}, nil
	case 2:
		start, err1 := strconv.Atoi(strings.TrimSpace(tokens[0]))
		end, err2 := strconv.Atoi(strings.TrimSpace(tokens[1]))
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid range value '%s'", r)
		}
		if start > end {
			start, end = end, start
		}
		if end-start >= MaxRangeSize {
			return nil, fmt.Errorf("range '%s' spans more than %d indexes", r, MaxRangeSize)
		}
		res := make([]int, 0, end-start+1)
		for i := start; i <= end; i++ {
			res = append(res, i)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("invalid range value '%s'", r)
	}
}

// ParseSelection expands a '|' separated list of indexes and ranges, e.g.
// "0|5-10|17", keeping the given order.
func ParseSelection(sel string) ([]int, error) {
	var res []int
	for _, part := range strings.Split(sel, "|") {
		idx, err := ExpandRange(part)
		if err != nil {
			return nil, err
		}
		res = append(res, idx...)
	}
	return res, nil
}

func toSet(indexes []int) map[int]bool {
	set := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		set[i] = true
	}
	return set
}

// RemoveEmptyColumns drops columns without any non-blank value.
func (t *Table) RemoveEmptyColumns() {
	var headers []string
	var data [][]string
	for c, col := range t.Data {
		empty := true
		for _, v := range col {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if !empty {
			headers = append(headers, t.Headers[c])
			data = append(data, col)
		}
	}
	t.Headers = headers
	t.Data = data
}

// EmptyToZero replaces blank values with "0".
func (t *Table) EmptyToZero() {
	for _, col := range t.Data {
		for r, v := range col {
			if strings.TrimSpace(v) == "" {
				col[r] = "0"
			}
		}
	}
}

// InsertColumns inserts all columns of other before column index. An index
// past the last column appends at the end.
func (t *Table) InsertColumns(other *Table, index int) error {
	if index < 0 {
		return fmt.Errorf("invalid insert index %d", index)
	}
	if t.RowCount() != other.RowCount() {
		return fmt.Errorf("mismatching row counts (%d vs. %d)", t.RowCount(), other.RowCount())
	}
	if index > len(t.Headers) {
		index = len(t.Headers)
	}

	headers := make([]string, 0, len(t.Headers)+len(other.Headers))
	headers = append(headers, t.Headers[:index]...)
	headers = append(headers, other.Headers...)
	headers = append(headers, t.Headers[index:]...)

	data := make([][]string, 0, len(t.Data)+len(other.Data))
	data = append(data, t.Data[:index]...)
	data = append(data, other.Data...)
	data = append(data, t.Data[index:]...)

	t.Headers = headers
	t.Data = data
	return nil
}

// RemoveColumns drops the selected columns.
func (t *Table) RemoveColumns(cols []int) {
	set := toSet(cols)
	var headers []string
	var data [][]string
	for c := range t.Headers {
		if !set[c] {
			headers = append(headers, t.Headers[c])
			data = append(data, t.Data[c])
		}
	}
	t.Headers = headers
	t.Data = data
}

// ExtractColumns keeps only the selected columns, in selection order. When
// newHeaders is non-nil it must have one label per selected column.
// Out-of-range indexes are skipped and returned.
func (t *Table) ExtractColumns(cols []int, newHeaders []string) ([]int, error) {
	if newHeaders != nil && len(newHeaders) != len(cols) {
		return nil, fmt.Errorf("number of selected columns (%d) does not match number of given new headers (%d)", len(cols), len(newHeaders))
	}
	if len(toSet(cols)) != len(cols) {
		return nil, fmt.Errorf("duplicate column indexes in selection range")
	}

	var skipped []int
	var headers []string
	var data [][]string
	for i, c := range cols {
		if c >= len(t.Headers) {
			skipped = append(skipped, c)
			continue
		}
		if newHeaders != nil {
			headers = append(headers, newHeaders[i])
		} else {
			headers = append(headers, t.Headers[c])
		}
		data = append(data, t.Data[c])
	}
	t.Headers = headers
	t.Data = data
	return skipped, nil
}

// RemoveRows drops the selected data rows (index 0 is the first data row).
func (t *Table) RemoveRows(rows []int) {
	set := toSet(rows)
	t.filterRows(func(r int) bool { return !set[r] })
}

// ExtractRows keeps only the selected data rows, in file order.
func (t *Table) ExtractRows(rows []int) int {
	set := toSet(rows)
	t.filterRows(func(r int) bool { return set[r] })
	return len(set)
}

func (t *Table) filterRows(keep func(int) bool) {
	rowCount := t.RowCount()
	data := make([][]string, len(t.Data))
	for c := range t.Data {
		data[c] = []string{}
		for r := 0; r < rowCount; r++ {
			if keep(r) {
				data[c] = append(data[c], t.Data[c][r])
			}
		}
	}
	t.Data = data
}

// Loader reads a secondary table, used by insert_columns.
type Loader func(path string) (*Table, error)

// Apply runs the named operation on t. args are the operation-specific
// positional arguments. The returned messages are informational notes
// (e.g. skipped column indexes).
func Apply(t *Table, op string, args []string, load Loader) ([]string, error) {
	var notes []string
	switch op {
	case OpRemoveEmpty:
		t.RemoveEmptyColumns()

	case OpEmptyToZero:
		t.EmptyToZero()

	case OpInsertColumns:
		if len(args) < 2 {
			return nil, fmt.Errorf("missing arguments to '%s' operation", op)
		}
		other, err := load(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading file with columns to insert: %w", err)
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid insert index '%s'", args[1])
		}
		if index >= len(t.Headers) {
			notes = append(notes, "Inserting at end")
		} else {
			notes = append(notes, fmt.Sprintf("Inserting columns before #%d", index))
		}
		if err := t.InsertColumns(other, index); err != nil {
			return nil, err
		}

	case OpRemoveColumns:
		if len(args) < 1 {
			return nil, fmt.Errorf("missing arguments to '%s' operation", op)
		}
		cols, err := ParseSelection(args[0])
		if err != nil {
			return nil, err
		}
		t.RemoveColumns(cols)

	case OpExtractColumns:
		if len(args) < 1 {
			return nil, fmt.Errorf("missing arguments to '%s' operation", op)
		}
		cols, err := ParseSelection(args[0])
		if err != nil {
			return nil, err
		}
		var headers []string
		if len(args) > 1 {
			for _, h := range strings.Split(args[1], "|") {
				headers = append(headers, strings.TrimSpace(h))
			}
		}
		skipped, err := t.ExtractColumns(cols, headers)
		if err != nil {
			return nil, err
		}
		for _, c := range skipped {
			notes = append(notes, fmt.Sprintf("Column index %d out of range, skipped", c))
		}

	case OpRemoveRows:
		if len(args) < 1 {
			return nil, fmt.Errorf("missing arguments to '%s' operation", op)
		}
		rows, err := ParseSelection(args[0])
		if err != nil {
			return nil, err
		}
		t.RemoveRows(rows)

	case OpExtractRows:
		if len(args) < 1 {
			return nil, fmt.Errorf("missing arguments to '%s' operation", op)
		}
		rows, err := ParseSelection(args[0])
		if err != nil {
			return nil, err
		}
		n := t.ExtractRows(rows)
		notes = append(notes, fmt.Sprintf("Extracting %d rows", n))

	default:
		ops := Operations()
		sort.Strings(ops)
		return nil, fmt.Errorf("unknown operation %s (valid: %s)", op, strings.Join(ops, ", "))
	}
	return notes, nil
}

// DefaultOutputPath derives "<input without .tsv>_out.tsv".
func DefaultOutputPath(input string) string {
	if len(input) < 4 {
		return input + "_out.tsv"
	}
	return input[:len(input)-4] + "_out.tsv"
}
