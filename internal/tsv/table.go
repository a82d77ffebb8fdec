// Package tsv reads, manipulates and writes tab-separated value files.
//
// The first line of a file holds the column headers. Data is stored
// column-major: Data[col][row].
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Table is an in-memory TSV file.
type Table struct {
	Headers []string
	Data    [][]string
}

// Read loads a TSV file, keeping all values as strings.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse reads TSV content from r. Rows with fewer cells than headers are
// padded with empty strings; rows with more cells are an error.
func Parse(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty file, missing header line")
	}
	headers := strings.Split(strings.TrimRight(scanner.Text(), "\r"), "\t")
	t := &Table{
		Headers: headers,
		Data:    make([][]string, len(headers)),
	}

	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, "\t")
		if len(cells) > len(headers) {
			return nil, fmt.Errorf("line %d: %d values but only %d columns", lineNo, len(cells), len(headers))
		}
		for col := range headers {
			val := ""
			if col < len(cells) {
				val = cells[col]
			}
			t.Data[col] = append(t.Data[col], val)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if len(t.Data) == 0 {
		return 0
	}
	return len(t.Data[0])
}

// Write stores the table at path.
func (t *Table) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := t.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteTo writes the table in TSV format.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	written, err := bw.WriteString(strings.Join(t.Headers, "\t") + "\n")
	n += int64(written)
	if err != nil {
		return n, err
	}

	row := make([]string, len(t.Data))
	for r := 0; r < t.RowCount(); r++ {
		for c := range t.Data {
			row[c] = t.Data[c][r]
		}
		written, err = bw.WriteString(strings.Join(row, "\t") + "\n")
		n += int64(written)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ConvertToDouble parses every value as float64 and rewrites it with
// default precision.
func (t *Table) ConvertToDouble() error {
	for c, col := range t.Data {
		for r, val := range col {
			f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil {
				return fmt.Errorf("column %d (%s), row %d: invalid number %q", c, t.Headers[c], r, val)
			}
			col[r] = strconv.FormatFloat(f, 'g', -1, 64)
		}
	}
	return nil
}
