// Command seqcalc evaluates infinite series built from composable cursors.
//
// It runs as a one-shot CLI (the default), an interactive REPL (-interactive)
// or an HTTP API (-server). See -h for the flags and SEQCALC_* environment
// variables.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agbru/seqcalc/internal/app"
	apperrors "github.com/agbru/seqcalc/internal/errors"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if app.HasVersionFlag(args[1:]) {
		if app.HasJSONFlag(args[1:]) {
			if err := app.PrintVersionJSON(os.Stdout); err != nil {
				return apperrors.ExitErrorGeneric
			}
			return apperrors.ExitSuccess
		}
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		fmt.Fprintln(os.Stderr, err)
		return apperrors.ExitErrorConfig
	}

	return application.Run(context.Background(), os.Stdout)
}
