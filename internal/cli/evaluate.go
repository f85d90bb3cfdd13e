package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/seqcalc/internal/config"
	"github.com/agbru/seqcalc/internal/series"
)

// GetSeriesToRun determines which series should be evaluated based on the
// configuration. Series are returned in name order for reproducible output.
//
// Parameters:
//   - cfg: The application configuration containing the series selection.
//   - factory: The series registry.
//
// Returns:
//   - []series.Series: The series to evaluate.
func GetSeriesToRun(cfg config.AppConfig, factory series.Factory) []series.Series {
	if cfg.Series == "all" {
		names := factory.List()
		out := make([]series.Series, 0, len(names))
		for _, name := range names {
			if s, err := factory.Get(name); err == nil {
				out = append(out, s)
			}
		}
		return out
	}
	if s, err := factory.Get(cfg.Series); err == nil {
		return []series.Series{s}
	}
	return nil
}

// PrintExecutionConfig displays the current execution configuration.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Evaluating at %sx=%g%s (a=%g) with a timeout of %s%s%s.\n",
		ColorMagenta(), cfg.X, ColorReset(), cfg.A, ColorYellow(), cfg.Timeout, ColorReset())
	tol := fmt.Sprintf("%g", cfg.Tolerance)
	if cfg.Tolerance == 0 {
		tol = "machine epsilon"
	}
	writeOut(out, "Truncation: at most %s%d%s terms, tolerance %s%s%s.\n",
		ColorCyan(), cfg.MaxTerms, ColorReset(), ColorCyan(), tol, ColorReset())
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(), ColorCyan(), runtime.Version(), ColorReset())
}

// PrintExecutionMode displays whether one series or several are evaluated.
func PrintExecutionMode(list []series.Series, out io.Writer) {
	var modeDesc string
	if len(list) > 1 {
		modeDesc = fmt.Sprintf("Parallel evaluation of %d series", len(list))
	} else {
		modeDesc = fmt.Sprintf("Single evaluation of %s%s%s (%s)",
			ColorGreen(), list[0].Name(), ColorReset(), list[0].Description())
	}
	writeOut(out, "Execution mode: %s.\n", modeDesc)
	writeOut(out, "\n--- Starting Execution ---\n")
}

func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
