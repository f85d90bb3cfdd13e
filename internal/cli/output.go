package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/seqcalc/internal/series"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the results (empty for no file output).
	OutputFile string
	// Quiet mode prints only the sums.
	Quiet bool
	// Verbose shows the leading terms.
	Verbose bool
	// Details shows timing and reference comparison.
	Details bool
}

// WriteResultsToFile writes evaluation results to config.OutputFile, one
// series per line in "name<TAB>sum<TAB>terms<TAB>converged" form below a
// commented header.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultsToFile(results []series.Result, params series.Params, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Series Evaluation Results\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# x=%g a=%g max-terms=%d tol=%g\n", params.X, params.A, params.MaxTerms, params.Tolerance)
	fmt.Fprintf(file, "\n")

	for _, r := range results {
		fmt.Fprintf(file, "%s\t%s\t%d\t%t\n", r.Series, FormatValue(r.Sum), r.Terms, r.Converged)
	}
	return nil
}

// FormatQuietResult formats a result for quiet mode output: just the sum.
func FormatQuietResult(result series.Result) string {
	return FormatValue(result.Sum)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, result series.Result) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig displays a result with the given output
// configuration.
func DisplayResultWithConfig(out io.Writer, result series.Result, config OutputConfig) {
	if config.Quiet {
		DisplayQuietResult(out, result)
		return
	}
	DisplayResult(result, config.Verbose, config.Details, out)
}

// WriteJSON encodes results as an indented JSON array.
func WriteJSON(out io.Writer, results []series.Result) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
