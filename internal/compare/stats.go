package compare

import (
	"fmt"

	"github.com/nandrad-tools/regsuite/internal/stats"
)

// Stats compares computed solver statistics against the reference.
//
// Keys containing "Time" are skipped. Every other reference key must be
// present in computed with an equal value: when either side is an integer
// counter both must be integers and equal, only values that are
// non-integer on both sides are compared under tol. Keys that only
// appear in computed are returned as notes.
func Stats(ref, computed *stats.Stats, tol Tolerance) (diffs, notes []string) {
	for _, key := range ref.Keys() {
		if stats.IsTimeKey(key) {
			continue
		}
		rv := ref.Values[key]
		cv, ok := computed.Values[key]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("%s: missing in computed statistics (reference %s)", key, rv.Raw))
			continue
		}
		if rv.IsInt || cv.IsInt {
			if !rv.IsInt || !cv.IsInt || rv.Int != cv.Int {
				diffs = append(diffs, fmt.Sprintf("%s: reference %s, computed %s", key, rv.Raw, cv.Raw))
			}
			continue
		}
		if !tol.Equal(rv.Float, cv.Float) {
			diffs = append(diffs, fmt.Sprintf("%s: reference %s, computed %s (tolerance: %s)", key, rv.Raw, cv.Raw, tol))
		}
	}

	for _, key := range computed.Keys() {
		if stats.IsTimeKey(key) {
			continue
		}
		if _, ok := ref.Values[key]; !ok {
			notes = append(notes, fmt.Sprintf("%s: not present in reference statistics", key))
		}
	}
	return diffs, notes
}
