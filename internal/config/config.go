// Package config provides the configuration management for the seqcalc application.
// It defines the data structure for the configuration, handles the parsing of
// command-line arguments, and performs validation on the configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/series"
)

const (
	// EnvPrefix is the prefix for all environment variables used by seqcalc.
	// Environment variables provide an alternative to CLI flags for configuration.
	EnvPrefix = "SEQCALC_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultSeries is the default series selection.
	DefaultSeries = "all"
	// DefaultTimeout is the default evaluation timeout.
	DefaultTimeout = 1 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
)

// AppConfig aggregates the application's configuration parameters, parsed from
// command-line flags.
type AppConfig struct {
	// Series is the name of the series to evaluate, or "all".
	Series string
	// X is the point at which the series is evaluated.
	X float64
	// A is the Pochhammer parameter of the binomial series.
	A float64
	// MaxTerms caps the number of terms summed.
	MaxTerms int
	// Tolerance stops the summation at the first term smaller in magnitude.
	// Zero selects the machine epsilon.
	Tolerance float64
	// Show is the number of leading terms to display.
	Show int
	// Timeout sets the maximum duration for the evaluation.
	Timeout time.Duration
	// Verbose, if true, displays the leading terms of each series.
	Verbose bool
	// Details, if true, provides a detailed report including timings.
	Details bool
	// JSONOutput, if true, outputs the results in JSON format.
	JSONOutput bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// OutputFile, if specified, saves the results to this file path.
	OutputFile string
	// Quiet mode prints only the sums, one per line.
	Quiet bool
	// Interactive, if true, starts the application in REPL mode.
	Interactive bool
	// Completion, if set, generates shell completion script for the specified shell.
	// Valid values are: "bash", "zsh", "fish", "powershell".
	Completion string
}

// ToParams converts the application configuration into series.Params.
func (c AppConfig) ToParams() series.Params {
	return series.Params{
		X:         c.X,
		A:         c.A,
		MaxTerms:  c.MaxTerms,
		Tolerance: c.Tolerance,
		Show:      c.Show,
	}
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Parameters:
//   - availableSeries: The names of the registered series.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableSeries []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.MaxTerms <= 0 || c.MaxTerms > series.MaxTermsLimit {
		return apperrors.NewConfigError("max-terms must be between 1 and %d: %d", series.MaxTermsLimit, c.MaxTerms)
	}
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) {
		return apperrors.NewConfigError("tolerance cannot be negative: %g", c.Tolerance)
	}
	if c.Show < 0 {
		return apperrors.NewConfigError("show cannot be negative: %d", c.Show)
	}
	if math.IsNaN(c.X) || math.IsInf(c.X, 0) {
		return apperrors.NewConfigError("x must be a finite number: %g", c.X)
	}
	if c.Series != "all" && !slices.Contains(availableSeries, c.Series) {
		return apperrors.NewConfigError("unrecognized series: '%s'. Valid series are: 'all' or [%s]", c.Series, strings.Join(availableSeries, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct, then validates it.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//   - availableSeries: The valid series names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableSeries []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	seriesHelp := fmt.Sprintf("Series to evaluate: 'all' (default) or one of [%s].", strings.Join(availableSeries, ", "))
	defaults := series.DefaultParams()

	config := AppConfig{}
	fs.StringVar(&config.Series, "series", DefaultSeries, seriesHelp)
	fs.Float64Var(&config.X, "x", defaults.X, "Point at which the series are evaluated.")
	fs.Float64Var(&config.A, "a", defaults.A, "Parameter a of the binomial series.")
	fs.IntVar(&config.MaxTerms, "max-terms", defaults.MaxTerms, "Maximum number of terms to sum.")
	fs.Float64Var(&config.Tolerance, "tol", defaults.Tolerance, "Stop at the first term smaller than this (0 for machine epsilon).")
	fs.IntVar(&config.Show, "show", defaults.Show, "Number of leading terms to display with -v.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the evaluation.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the leading terms of each series.")
	fs.BoolVar(&config.Details, "d", false, "Display timing details and reference comparison.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the results.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if err := applyEnv(fs); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}

	config.Series = strings.ToLower(config.Series)
	if err := config.Validate(availableSeries); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
