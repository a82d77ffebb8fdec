// Package errors provides structured error types and exit codes for regsuite.
package errors

import (
	"errors"
	"fmt"

	"github.com/nandrad-tools/regsuite/pkg/regsuite"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess     = regsuite.ExitSuccess
	ExitFailure     = regsuite.ExitFailure
	ExitConfigError = regsuite.ExitConfigError
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindEnvironment
	KindSuiteFailed
)

// ErrSuiteFailed is returned once the failure report has been printed.
// Callers should exit with ExitFailure without printing it again.
var ErrSuiteFailed = &SuiteError{Kind: KindSuiteFailed, Message: "one or more projects failed"}

// SuiteError is the base error type for regsuite.
type SuiteError struct {
	Kind    ErrorKind
	Message string
	Project string // Project path if applicable
	Cause   error  // Underlying error
}

func (e *SuiteError) Error() string {
	msg := e.Message
	if e.Project != "" {
		msg = fmt.Sprintf("[%s] %s", e.Project, e.Message)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *SuiteError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *SuiteError) ExitCode() int {
	if e.Kind == KindConfig {
		return ExitConfigError
	}
	return ExitFailure
}

// Config creates a new configuration error.
func Config(message string) *SuiteError {
	return &SuiteError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *SuiteError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *SuiteError {
	return &SuiteError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *SuiteError {
	return Environment(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *SuiteError {
	return &SuiteError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// WrapEnvironment wraps an error as an environment error (e.g. an executable
// that cannot be started).
func WrapEnvironment(err error, message string) *SuiteError {
	return &SuiteError{
		Kind:    KindEnvironment,
		Message: message,
		Cause:   err,
	}
}

// WrapConfig wraps an error as a configuration error.
func WrapConfig(err error, message string) *SuiteError {
	return &SuiteError{
		Kind:    KindConfig,
		Message: message,
		Cause:   err,
	}
}

// ProjectError creates an error for a specific project.
func ProjectError(project, message string) *SuiteError {
	return &SuiteError{
		Kind:    KindRuntime,
		Project: project,
		Message: message,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *SuiteError {
	return &SuiteError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// IsKind reports whether err is or wraps a SuiteError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *SuiteError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var se *SuiteError
	if errors.As(err, &se) {
		return se.ExitCode()
	}
	return ExitFailure
}
