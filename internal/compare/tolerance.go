package compare

import (
	"fmt"
	"math"
)

// ToleranceMode selects how two floating-point values are compared.
type ToleranceMode string

const (
	// ModeCombined accepts |a-b| <= Absolute + Relative*max(|a|,|b|).
	ModeCombined ToleranceMode = "combined"
	// ModeAbsolute accepts |a-b| <= Absolute.
	ModeAbsolute ToleranceMode = "absolute"
	// ModeRelative accepts |a-b|/|a| <= Relative (absolute check when a == 0).
	ModeRelative ToleranceMode = "relative"
	// ModeULP accepts values at most ULP representable doubles apart.
	ModeULP ToleranceMode = "ulp"
)

// Default tolerance thresholds for result comparison.
const (
	DefaultAbsolute = 1e-9
	DefaultRelative = 1e-6
	DefaultULP      = 4
)

// Tolerance is the numeric comparison policy shared by statistics and
// result file comparison.
type Tolerance struct {
	Mode         ToleranceMode
	Absolute     float64
	Relative     float64
	ULP          int64
	NaNEqualsNaN bool
}

// DefaultTolerance returns the default comparison policy.
func DefaultTolerance() Tolerance {
	return Tolerance{
		Mode:         ModeCombined,
		Absolute:     DefaultAbsolute,
		Relative:     DefaultRelative,
		ULP:          DefaultULP,
		NaNEqualsNaN: true,
	}
}

// Validate checks that the mode is known and thresholds are non-negative.
func (t Tolerance) Validate() error {
	switch t.Mode {
	case "", ModeCombined, ModeAbsolute, ModeRelative, ModeULP:
	default:
		return fmt.Errorf("invalid tolerance mode %q (must be \"combined\", \"absolute\", \"relative\" or \"ulp\")", t.Mode)
	}
	if t.Absolute < 0 || t.Relative < 0 || t.ULP < 0 {
		return fmt.Errorf("tolerance thresholds must not be negative")
	}
	return nil
}

// Equal reports whether expected and actual agree under the policy.
func (t Tolerance) Equal(expected, actual float64) bool {
	if math.IsNaN(expected) && math.IsNaN(actual) {
		return t.NaNEqualsNaN
	}
	if math.IsInf(expected, 1) && math.IsInf(actual, 1) {
		return true
	}
	if math.IsInf(expected, -1) && math.IsInf(actual, -1) {
		return true
	}
	if math.IsNaN(expected) || math.IsNaN(actual) ||
		math.IsInf(expected, 0) || math.IsInf(actual, 0) {
		return false
	}
	if expected == actual {
		return true
	}

	diff := math.Abs(expected - actual)
	switch t.Mode {
	case ModeAbsolute:
		return diff <= t.Absolute
	case ModeRelative:
		if expected == 0 {
			return math.Abs(actual) <= t.Relative
		}
		return diff/math.Abs(expected) <= t.Relative
	case ModeULP:
		return ULPDiff(expected, actual) <= t.ULP
	default:
		scale := math.Max(math.Abs(expected), math.Abs(actual))
		return diff <= t.Absolute+t.Relative*scale
	}
}

// String describes the policy for diagnostics.
func (t Tolerance) String() string {
	switch t.Mode {
	case ModeAbsolute:
		return fmt.Sprintf("absolute %g", t.Absolute)
	case ModeRelative:
		return fmt.Sprintf("relative %g", t.Relative)
	case ModeULP:
		return fmt.Sprintf("%d ulp", t.ULP)
	default:
		return fmt.Sprintf("abs %g + rel %g", t.Absolute, t.Relative)
	}
}

// ULPDiff returns the number of representable doubles between a and b.
func ULPDiff(a, b float64) int64 {
	ai := int64(math.Float64bits(a))
	bi := int64(math.Float64bits(b))
	// Map negative values onto a monotonic integer line.
	if ai < 0 {
		ai = math.MinInt64 - ai
	}
	if bi < 0 {
		bi = math.MinInt64 - bi
	}
	d := ai - bi
	if d < 0 {
		if d == math.MinInt64 {
			return math.MaxInt64
		}
		d = -d
	}
	return d
}
