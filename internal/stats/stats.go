// Package stats reads solver statistics files (log/summary.txt).
//
// A statistics file holds one "Key = Value" pair per line. Values are either
// integer counters (time steps, Newton iterations, ...) or floating-point
// timers (seconds). Blank lines and lines starting with '#' are ignored.
package stats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// SummaryFile is the location of the statistics file inside an output directory.
const SummaryFile = "log/summary.txt"

// WallClockKey is the timer holding the total run time of a solver run.
const WallClockKey = "WallClockTime"

// Value is a single parsed statistics value.
type Value struct {
	Raw   string
	Int   int64
	Float float64
	IsInt bool
}

// Stats maps counter/timer names to their values.
type Stats struct {
	Path   string
	Values map[string]Value
}

// IsTimeKey reports whether a key names a timing value. Timings are
// nondeterministic and never take part in comparisons.
func IsTimeKey(key string) bool {
	return strings.Contains(key, "Time")
}

// Read parses the statistics file at path.
// The returned error wraps the os error, so errors.Is(err, os.ErrNotExist)
// identifies a missing file.
func Read(path string) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open statistics file: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Parse reads "Key = Value" lines from r. Keys must be unique.
func Parse(r io.Reader) (*Stats, error) {
	s := &Stats{Values: make(map[string]Value)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, raw, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected 'Key = Value', got %q", lineNo, line)
		}
		key = strings.TrimSpace(key)
		raw = strings.TrimSpace(raw)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", lineNo)
		}
		if _, dup := s.Values[key]; dup {
			return nil, fmt.Errorf("line %d: duplicate key %q", lineNo, key)
		}

		v, err := parseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: key %q: %w", lineNo, key, err)
		}
		s.Values[key] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseValue(raw string) (Value, error) {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Value{Raw: raw, Int: i, Float: float64(i), IsInt: true}, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid numeric value %q", raw)
	}
	return Value{Raw: raw, Float: f}, nil
}

// Get returns the value stored under key.
func (s *Stats) Get(key string) (Value, bool) {
	v, ok := s.Values[key]
	return v, ok
}

// WallClock returns the WallClockTime timer in seconds.
func (s *Stats) WallClock() (float64, bool) {
	v, ok := s.Values[WallClockKey]
	if !ok {
		return 0, false
	}
	return v.Float, true
}

// Keys returns all keys in sorted order.
func (s *Stats) Keys() []string {
	keys := make([]string, 0, len(s.Values))
	for k := range s.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
