package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/agbru/seqcalc/internal/series"
	"github.com/agbru/seqcalc/internal/testutil"
	"github.com/agbru/seqcalc/internal/ui"
)

// Golden output tests: the expected text is kept inline to pin formatting.

func TestDisplayResult_Golden(t *testing.T) {
	ui.InitTheme(false, io.Discard)

	tests := []struct {
		name     string
		result   series.Result
		verbose  bool
		details  bool
		expected string
	}{
		{
			name:     "Verbose Result",
			result:   series.Result{Series: "exp", Sum: 2.5, Terms: 3, Converged: true, Shown: []float64{1, 1, 0.5}},
			verbose:  true,
			expected: "exp = 2.5\nTerms summed: 3 (converged).\nLeading terms: 1, 1, 0.5\n",
		},
		{
			name: "Detailed Result",
			result: series.Result{
				Series: "zeta2", Sum: 1.5, Terms: 1234,
				HasReference: true, Reference: 2, AbsError: 0.5,
			},
			details: true,
			expected: "zeta2 = 1.5\nTerms summed: 1,234 (term limit reached).\n\n" +
				"--- Detailed result analysis ---\n" +
				"Evaluation time : < 1µs\n" +
				"Reference       : 2\n" +
				"Absolute error  : 5.000e-01 ✗\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayResult(tt.result, tt.verbose, tt.details, &buf)
			got := testutil.StripAnsiCodes(buf.String())
			if got != tt.expected {
				t.Errorf("Golden mismatch for %s.\nWant:\n%q\nGot:\n%q", tt.name, tt.expected, got)
			}
		})
	}
}

func TestDisplayQuietResult_Golden(t *testing.T) {
	var buf bytes.Buffer
	DisplayQuietResult(&buf, series.Result{Series: "geometric", Sum: 2})
	if got, want := buf.String(), "2\n"; got != want {
		t.Errorf("quiet output = %q, want %q", got, want)
	}
}
