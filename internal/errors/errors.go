// Package apperrors holds the error types shared by the evaluator, the
// server and the CLI, and maps them to process exit codes.
//
// Every wrapping type implements Unwrap, so callers test for causes with
// errors.Is and errors.As rather than by type switch.
package apperrors

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorDiverged = 3 // a series hit its term limit before converging
	ExitErrorConfig   = 4
	ExitErrorCanceled = 130 // 128 + SIGINT
)

// ErrNotConverged is reported when a series reaches its term limit before
// its terms drop below the tolerance.
var ErrNotConverged = errors.New("series did not converge within the term limit")

// ErrNonFinite is reported when a partial sum overflows float64 or turns
// into NaN, for example exp far beyond x = 709.
var ErrNonFinite = errors.New("sum is not a finite float64 (overflow)")

// ConfigError is invalid user input found while reading flags or the
// environment.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EvaluationError tags a failure with the series it came from.
type EvaluationError struct {
	Series string
	Cause  error
}

func (e EvaluationError) Error() string {
	if e.Series == "" {
		return e.Cause.Error()
	}
	return e.Series + ": " + e.Cause.Error()
}

func (e EvaluationError) Unwrap() error { return e.Cause }

// NewEvaluationError returns nil for a nil cause, so it can wrap a result
// unconditionally.
func NewEvaluationError(series string, cause error) error {
	if cause == nil {
		return nil
	}
	return EvaluationError{Series: series, Cause: cause}
}

// DomainError reports an argument outside the region where a series
// converges, such as |x| >= 1 for the geometric series.
type DomainError struct {
	Series string
	Param  string
	Value  float64
	Reason string
}

func (e DomainError) Error() string {
	return fmt.Sprintf("%s: %s=%g is outside the domain of convergence (%s)", e.Series, e.Param, e.Value, e.Reason)
}

// ServerError is a failure to start, run or stop the HTTP server.
type ServerError struct {
	Message string
	Cause   error
}

func (e ServerError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e ServerError) Unwrap() error { return e.Cause }

func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// ValidationError rejects one request or configuration field.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
}

func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// WrapError prefixes err with a formatted context message, keeping it
// reachable through errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
