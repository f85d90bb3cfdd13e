package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/seqcalc/internal/series"
	"github.com/agbru/seqcalc/internal/testutil"
)

func newTestREPL(cfg REPLConfig) (*REPL, *bytes.Buffer) {
	if cfg.Params == (series.Params{}) {
		cfg.Params = series.DefaultParams()
	}
	r := NewREPL(series.NewDefaultFactory(), series.NewEvaluatorWithLogger(zerolog.Nop()), cfg)
	var out bytes.Buffer
	r.SetOutput(&out)
	return r, &out
}

func TestNewREPL(t *testing.T) {
	t.Parallel()
	r, _ := newTestREPL(REPLConfig{DefaultSeries: "sin"})
	if r.current != "sin" {
		t.Errorf("Expected default series 'sin', got '%s'", r.current)
	}
	if r.config.Timeout != time.Minute {
		t.Errorf("Expected timeout to default to 1m, got %v", r.config.Timeout)
	}
}

func TestNewREPL_DefaultSeries(t *testing.T) {
	t.Parallel()
	r, _ := newTestREPL(REPLConfig{DefaultSeries: "all"})
	if r.current != "binomial" {
		t.Errorf("Expected the first series in name order, got '%s'", r.current)
	}
}

func TestProcessCommand(t *testing.T) {
	r, out := newTestREPL(REPLConfig{DefaultSeries: "exp", Timeout: 5 * time.Second})
	strip := testutil.StripAnsiCodes

	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"eval default", "eval", []string{"exp = 2.71828182845904", "converged", "Leading terms: 1, 1, 0.5"}},
		{"eval with x", "eval exp 0", []string{"exp = 1"}},
		{"bare series name", "cos 0", []string{"cos = 1"}},
		{"unknown series", "eval nope", []string{"Unknown series: nope", "Available series:"}},
		{"invalid x", "eval exp abc", []string{"Invalid value: abc"}},
		{"domain error", "eval geometric 2", []string{"Error:", "outside the domain"}},
		{"set x", "x 0.5", []string{"x set to 0.5"}},
		{"set x invalid", "x abc", []string{"Invalid value: abc"}},
		{"set x missing", "x", []string{"Usage: x <value>"}},
		{"set tol negative", "tol -1", []string{"Tolerance cannot be negative"}},
		{"set terms", "terms 500", []string{"terms set to 500"}},
		{"set terms zero", "terms 0", []string{"Invalid value: 0"}},
		{"set show", "show 2", []string{"show set to 2"}},
		{"list", "list", []string{"Available series:", "zeta2", "fibonacci", "► "}},
		{"status", "status", []string{"Series:", "x:          0.5", "Max terms:  500"}},
		{"help", "help", []string{"Available commands:", "eval [series] [x]"}},
		{"unknown command", "bogus", []string{"Unknown command: bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			if !r.processCommand(tt.input) {
				t.Fatalf("processCommand(%q) requested exit", tt.input)
			}
			output := strip(out.String())
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("Expected output to contain %q, got:\n%s", s, output)
				}
			}
		})
	}

	t.Run("exit", func(t *testing.T) {
		out.Reset()
		if r.processCommand("exit") {
			t.Error("exit should stop the REPL")
		}
		if !strings.Contains(strip(out.String()), "Goodbye!") {
			t.Error("Expected goodbye message")
		}
	})
}

func TestCompareCommand(t *testing.T) {
	r, out := newTestREPL(REPLConfig{Timeout: 5 * time.Second})
	r.processCommand("x 0.5")
	out.Reset()
	r.processCommand("compare")
	output := testutil.StripAnsiCodes(out.String())

	for _, name := range series.NewDefaultFactory().List() {
		if !strings.Contains(output, name) {
			t.Errorf("Expected %s in comparison, got:\n%s", name, output)
		}
	}
	for _, line := range strings.Split(output, "\n") {
		name := strings.TrimSpace(strings.SplitN(line, ":", 2)[0])
		switch name {
		case "exp", "geometric", "sin", "cos":
			if !strings.Contains(line, "✓") {
				t.Errorf("Expected %s to match its closed form: %q", name, line)
			}
		case "zeta2":
			// Slow convergence: the default term budget is not enough.
			if !strings.Contains(line, "MISMATCH") {
				t.Errorf("Expected zeta2 to miss its closed form: %q", line)
			}
		}
	}
}

func TestREPLStart(t *testing.T) {
	t.Run("exit command", func(t *testing.T) {
		r, out := newTestREPL(REPLConfig{})
		r.SetInput(strings.NewReader("x 0.25\nstatus\nexit\n"))
		r.Start()
		output := testutil.StripAnsiCodes(out.String())
		for _, s := range []string{"Series Calculator", "x set to 0.25", "Current configuration", "Goodbye!"} {
			if !strings.Contains(output, s) {
				t.Errorf("Expected %q in output", s)
			}
		}
	})

	t.Run("EOF without newline", func(t *testing.T) {
		r, out := newTestREPL(REPLConfig{})
		r.SetInput(strings.NewReader("list"))
		r.Start()
		output := testutil.StripAnsiCodes(out.String())
		if !strings.Contains(output, "Available series:") {
			t.Error("Expected the last line to be processed before EOF")
		}
		if !strings.Contains(output, "Goodbye!") {
			t.Error("Expected goodbye on EOF")
		}
	})
}
