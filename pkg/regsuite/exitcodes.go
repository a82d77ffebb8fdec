// Package regsuite provides public constants for build pipelines that invoke
// the regsuite CLI.
package regsuite

// Exit codes returned by the regsuite CLI.
// Pipelines can check these symbolically rather than using magic numbers.
const (
	// ExitSuccess indicates every project ran and matched its reference
	// results (or was legitimately skipped).
	ExitSuccess = 0

	// ExitFailure indicates that a project failed to run, mismatched its
	// reference results, or that the environment was unusable (missing
	// solver, unknown platform, missing MASTERSIM_PATH).
	ExitFailure = 1

	// ExitConfigError indicates invalid command-line flags or an invalid
	// suite configuration file.
	ExitConfigError = 2
)
