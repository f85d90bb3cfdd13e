package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/seqcalc/internal/cli"
	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/orchestration"
	"github.com/agbru/seqcalc/internal/series"
	"github.com/agbru/seqcalc/internal/server"
	"github.com/agbru/seqcalc/internal/ui"
)

// Application represents the seqcalc application instance.
// It encapsulates the configuration and provides methods to run
// the application in various modes (CLI, server, REPL).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the registered series.
	Factory series.Factory
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New parses args (os.Args layout, program name first) against the global
// series registry. Usage and configuration errors are written to errWriter
// and returned.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := series.GlobalFactory()

	programName := "seqcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (completion, server, REPL, or CLI).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	// Respects --no-color and NO_COLOR.
	ui.InitTheme(a.Config.NoColor, out)

	if a.Config.ServerMode {
		return a.runServer()
	}

	if a.Config.Interactive {
		return a.runREPL()
	}

	return a.runEvaluate(ctx, out)
}

// newEvaluator returns an evaluator logging to ErrWriter. Its debug events
// only show in verbose mode.
func (a *Application) newEvaluator() *series.Evaluator {
	logger := logging.NewConsole(a.ErrWriter, "evaluator", a.Config.Verbose, a.Config.NoColor)
	return series.NewEvaluatorWithLogger(logging.Unwrap(logger))
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config,
		server.WithLogger(logging.NewLogger(os.Stdout, "server")))
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive REPL mode.
func (a *Application) runREPL() int {
	repl := cli.NewREPL(a.Factory, a.newEvaluator(), cli.REPLConfig{
		DefaultSeries: a.Config.Series,
		Timeout:       a.Config.Timeout,
		Params:        a.Config.ToParams(),
	})
	repl.Start()
	return apperrors.ExitSuccess
}

// runEvaluate evaluates the selected series concurrently and reports them.
func (a *Application) runEvaluate(ctx context.Context, out io.Writer) int {
	ctx, cancel := WithLifecycle(ctx, a.Config.Timeout)
	defer cancel()

	toRun := cli.GetSeriesToRun(a.Config, a.Factory)
	if len(toRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "No series to evaluate for '%s'\n", a.Config.Series)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(toRun, out)
	}

	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	results := orchestration.ExecuteEvaluations(ctx, toRun, a.Config, a.newEvaluator(), progressOut)

	if a.Config.JSONOutput {
		return a.printJSONResults(results, out)
	}

	exitCode := orchestration.AnalyzeResults(results, a.Config, out)
	if exitCode != apperrors.ExitSuccess {
		return exitCode
	}
	return a.saveResultsIfNeeded(results, out)
}

// saveResultsIfNeeded writes the successful results to the output file, if one
// is configured.
func (a *Application) saveResultsIfNeeded(results []orchestration.EvaluationResult, out io.Writer) int {
	if a.Config.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}
	if err := cli.WriteResultsToFile(orchestration.Results(results), a.Config.ToParams(), outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving results: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
			cli.ColorGreen(), cli.ColorCyan(), a.Config.OutputFile, cli.ColorReset())
	}
	return apperrors.ExitSuccess
}

// printJSONResults writes the successful results as a JSON array. Failed
// evaluations are reported on ErrWriter. The exit code follows the same rules
// as the summary table.
func (a *Application) printJSONResults(results []orchestration.EvaluationResult, out io.Writer) int {
	var firstErr error
	converged := false
	for _, res := range results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(a.ErrWriter, "%s: %v\n", res.Name, res.Err)
			if firstErr == nil {
				firstErr = res.Err
			}
		case res.Result.Converged:
			converged = true
		}
	}

	ok := orchestration.Results(results)
	if err := cli.WriteJSON(out, ok); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error encoding JSON: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	switch {
	case converged:
		return apperrors.ExitSuccess
	case len(ok) == 0 && firstErr != nil:
		return apperrors.HandleEvaluationError(firstErr, 0, a.ErrWriter, apperrors.NoColors{})
	}
	return apperrors.HandleEvaluationError(apperrors.ErrNotConverged, 0, a.ErrWriter, apperrors.NoColors{})
}

// IsHelpError reports whether New failed because -h or -help was given.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
