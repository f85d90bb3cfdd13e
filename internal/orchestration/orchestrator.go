// Package orchestration runs several series evaluations concurrently and
// summarizes their outcome.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/seqcalc/internal/cli"
	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/series"
	"github.com/agbru/seqcalc/internal/ui"
)

// EvaluationResult is the outcome of one series evaluation as seen by the
// orchestrator.
type EvaluationResult struct {
	// Name is the series name.
	Name string
	// Result is the evaluator output. Only meaningful when Err is nil.
	Result series.Result
	// Duration is the wall time of the evaluation.
	Duration time.Duration
	// Err is the evaluation error, if any.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the number of updates dropped when the UI
// is slow to consume them.
const ProgressBufferMultiplier = 5

// ExecuteEvaluations evaluates every series concurrently, each on its own
// cursor tree, and streams their progress to the CLI display.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - list: The series to evaluate.
//   - cfg: The application configuration (x, a, truncation).
//   - evaluator: The evaluator shared by all goroutines.
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []EvaluationResult: One result per series, in input order.
func ExecuteEvaluations(ctx context.Context, list []series.Series, cfg config.AppConfig, evaluator *series.Evaluator, out io.Writer) []EvaluationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]EvaluationResult, len(list))
	progressChan := make(chan series.ProgressUpdate, len(list)*ProgressBufferMultiplier)

	subject := series.NewProgressSubject()
	subject.Register(series.NewChannelObserver(progressChan))
	subject.Register(series.NewLoggingObserver(evaluator.Logger(), 0.25))

	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name()
	}
	gauges := series.NewMetricsObserver(names)
	gauges.ResetMetrics()
	subject.Register(gauges)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(list), out)

	params := cfg.ToParams()
	for i, s := range list {
		g.Go(func() error {
			start := time.Now()
			res, err := evaluator.Evaluate(ctx, s, params, subject, i)
			results[i] = EvaluationResult{Name: s.Name(), Result: res, Duration: time.Since(start), Err: err}
			// A failed series must not cancel its siblings.
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeResults prints a summary table of the evaluations followed by the
// detail of each successful one, and returns the process exit code.
//
// The run succeeds when at least one series converged. When every successful
// series stopped at the term limit it exits with ExitErrorDiverged, and when
// none succeeded the first error decides the exit code.
//
// Parameters:
//   - results: The results to analyze.
//   - cfg: The application configuration.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeResults(results []EvaluationResult, cfg config.AppConfig, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Name < results[j].Name
	})

	var firstError error
	successCount, convergedCount := 0, 0

	if !cfg.Quiet {
		fmt.Fprintf(out, "\n--- Evaluation Summary ---\n")
		tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			ui.Paint(ui.Underline, "Series"), ui.Paint(ui.Underline, "Sum"), ui.Paint(ui.Underline, "Terms"),
			ui.Paint(ui.Underline, "Duration"), ui.Paint(ui.Underline, "Status"))
		for _, res := range results {
			sum, terms := "-", "-"
			if res.Err == nil {
				sum, terms = cli.FormatValue(res.Result.Sum), strconv.Itoa(res.Result.Terms)
			}
			duration := cli.FormatExecutionDuration(res.Duration)
			if res.Duration == 0 {
				duration = "< 1µs"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				ui.Paint(ui.Primary, res.Name), sum, terms, ui.Paint(ui.Warning, duration), statusText(res))
		}
		if err := tw.Flush(); err != nil {
			fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
		}
	}

	for _, res := range results {
		switch {
		case res.Err != nil:
			if firstError == nil {
				firstError = res.Err
			}
		case res.Result.Converged:
			successCount++
			convergedCount++
		default:
			successCount++
		}
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No series could be evaluated.\n")
		return apperrors.HandleEvaluationError(firstError, 0, out, cli.CLIColorProvider{})
	}
	if convergedCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No series converged within %d terms.\n", cfg.MaxTerms)
		return apperrors.HandleEvaluationError(apperrors.ErrNotConverged, 0, out, cli.CLIColorProvider{})
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. %d of %d series converged.\n", convergedCount, len(results))
	}
	outCfg := cli.OutputConfig{Quiet: cfg.Quiet, Verbose: cfg.Verbose, Details: cfg.Details}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if !cfg.Quiet {
			fmt.Fprintln(out)
		}
		cli.DisplayResultWithConfig(out, res.Result, outCfg)
	}
	return apperrors.ExitSuccess
}

func statusText(res EvaluationResult) string {
	switch {
	case res.Err != nil:
		return ui.Paint(ui.Error, fmt.Sprintf("❌ Failure (%v)", res.Err))
	case !res.Result.Converged:
		return ui.Paint(ui.Warning, "⚠️ Term limit")
	case res.Result.HasReference && !res.Result.WithinTolerance:
		return ui.Paint(ui.Warning, "⚠️ Off reference")
	}
	return ui.Paint(ui.Success, "✅ Converged")
}

// Results extracts the evaluator outputs of the successful evaluations, in
// order, for JSON or file output.
func Results(results []EvaluationResult) []series.Result {
	out := make([]series.Result, 0, len(results))
	for _, res := range results {
		if res.Err == nil {
			out = append(out, res.Result)
		}
	}
	return out
}
