package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape codes HandleEvaluationError uses for
// emphasis. It lets the cli package inject its theme without an import
// cycle.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// NoColors is a ColorProvider for plain output.
type NoColors struct{}

func (NoColors) Yellow() string { return "" }
func (NoColors) Reset() string  { return "" }

// ExitCode maps an evaluation error to the process exit code.
func ExitCode(err error) int {
	var domainErr DomainError
	var configErr ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, ErrNotConverged):
		return ExitErrorDiverged
	case errors.As(err, &domainErr), errors.As(err, &configErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleEvaluationError prints a one-line status for err to out and returns
// its exit code. A positive duration is reported as the time spent before
// the failure. colors may be nil.
func HandleEvaluationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	code := ExitCode(err)
	if code == ExitSuccess {
		return code
	}
	if colors == nil {
		colors = NoColors{}
	}
	y, r := colors.Yellow(), colors.Reset()

	after := ""
	if duration > 0 {
		after = fmt.Sprintf(" after %s%s%s", y, duration, r)
	}

	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", after)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", y, after, r)
	case ExitErrorDiverged:
		fmt.Fprintf(out, "%sStatus: Not converged%s.%s %v\n", y, after, r, err)
	case ExitErrorConfig:
		fmt.Fprintf(out, "Status: Invalid argument. %v\n", err)
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	}
	return code
}
