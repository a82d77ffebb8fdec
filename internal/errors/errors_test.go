package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSuiteError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SuiteError
		expected string
	}{
		{
			name:     "message only",
			err:      &SuiteError{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "with project",
			err:      &SuiteError{Project: "/suite/A.nandrad", Message: "solver failed"},
			expected: "[/suite/A.nandrad] solver failed",
		},
		{
			name:     "with cause",
			err:      &SuiteError{Message: "cannot start solver", Cause: errors.New("permission denied")},
			expected: "cannot start solver: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSuiteError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &SuiteError{
		Message: "wrapper",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}

	errNoCause := &SuiteError{Message: "no cause"}
	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestSuiteError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrorKind
		expected int
	}{
		{"runtime", KindRuntime, ExitFailure},
		{"config", KindConfig, ExitConfigError},
		{"not found", KindNotFound, ExitFailure},
		{"environment", KindEnvironment, ExitFailure},
		{"suite failed", KindSuiteFailed, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &SuiteError{Kind: tt.kind}
			if got := err.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *SuiteError
		kind    ErrorKind
		message string
	}{
		{"Config", Config("invalid config"), KindConfig, "invalid config"},
		{"Configf", Configf("field %q: %s", "iterations", "must be positive"), KindConfig, `field "iterations": must be positive`},
		{"Environment", Environment("no solver"), KindEnvironment, "no solver"},
		{"Environmentf", Environmentf("variable %q missing", "MASTERSIM_PATH"), KindEnvironment, `variable "MASTERSIM_PATH" missing`},
		{"NotFound", NotFound("reference directory", "A.gcc_linux"), KindNotFound, "reference directory not found: A.gcc_linux"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Message != tt.message {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.message)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("original error")
	err := Wrap(cause, "wrapped message")

	if err.Kind != KindRuntime {
		t.Errorf("Kind = %v, want %v", err.Kind, KindRuntime)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find original cause")
	}
}

func TestWrapEnvironment(t *testing.T) {
	cause := errors.New("exec format error")
	err := WrapEnvironment(cause, "cannot start solver")

	if err.Kind != KindEnvironment {
		t.Errorf("Kind = %v, want %v", err.Kind, KindEnvironment)
	}
	if err.ExitCode() != ExitFailure {
		t.Errorf("ExitCode() = %d, want %d", err.ExitCode(), ExitFailure)
	}
}

func TestWrapConfig(t *testing.T) {
	cause := errors.New("yaml: line 2: did not find expected key")
	err := WrapConfig(cause, "invalid regsuite.yaml")

	if err.Kind != KindConfig {
		t.Errorf("Kind = %v, want %v", err.Kind, KindConfig)
	}
	if GetExitCode(fmt.Errorf("load: %w", err)) != ExitConfigError {
		t.Errorf("GetExitCode() = %d, want %d", GetExitCode(err), ExitConfigError)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find original cause")
	}
}

func TestProjectError(t *testing.T) {
	err := ProjectError("A.nandrad", "mismatching results")

	if err.Project != "A.nandrad" {
		t.Errorf("Project = %q, want %q", err.Project, "A.nandrad")
	}
	if got := err.Error(); got != "[A.nandrad] mismatching results" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Environment("missing"))

	if !IsKind(wrapped, KindEnvironment) {
		t.Error("IsKind() = false for wrapped environment error")
	}
	if IsKind(wrapped, KindConfig) {
		t.Error("IsKind() = true for wrong kind")
	}
	if IsKind(errors.New("plain"), KindRuntime) {
		t.Error("IsKind() = true for plain error")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitFailure},
		{"config", Config("bad"), ExitConfigError},
		{"wrapped config", fmt.Errorf("load: %w", Config("bad")), ExitConfigError},
		{"suite failed", ErrSuiteFailed, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
