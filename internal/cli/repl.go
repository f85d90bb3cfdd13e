package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/seqcalc/internal/series"
	"github.com/agbru/seqcalc/internal/ui"
)

// REPLConfig configures an interactive session.
type REPLConfig struct {
	// DefaultSeries is the series evaluated by a bare "eval". Empty or "all"
	// selects the first registered series.
	DefaultSeries string
	// Timeout bounds each evaluation. Defaults to one minute.
	Timeout time.Duration
	// Params are the initial evaluation parameters.
	Params series.Params
}

// REPL is an interactive session: the parameters set by one command apply
// to every later evaluation.
type REPL struct {
	config    REPLConfig
	factory   series.Factory
	evaluator *series.Evaluator
	params    series.Params
	current   string
	in        io.Reader
	out       io.Writer
}

func NewREPL(factory series.Factory, evaluator *series.Evaluator, config REPLConfig) *REPL {
	current := config.DefaultSeries
	if current == "" || current == "all" {
		if names := factory.List(); len(names) > 0 {
			current = names[0]
		}
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	return &REPL{
		config:    config,
		factory:   factory,
		evaluator: evaluator,
		params:    config.Params,
		current:   current,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

func (r *REPL) SetInput(in io.Reader)   { r.in = in }
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// replCommand is one entry of the command table. run returns false to end
// the session.
type replCommand struct {
	names []string
	usage string
	help  string
	run   func(r *REPL, args []string) bool
}

func (c replCommand) label() string {
	if c.usage == "" {
		return c.names[0]
	}
	return c.names[0] + " " + c.usage
}

var replCommands []replCommand

func init() {
	keep := func(f func(r *REPL, args []string)) func(*REPL, []string) bool {
		return func(r *REPL, args []string) bool { f(r, args); return true }
	}
	replCommands = []replCommand{
		{[]string{"eval", "e"}, "[series] [x]", "Evaluate a series at x", keep((*REPL).cmdEval)},
		{[]string{"compare", "cmp"}, "", "Evaluate every series at the current x", keep(func(r *REPL, _ []string) { r.cmdCompare() })},
		{[]string{"x"}, "<value>", "Set the evaluation point", keep(func(r *REPL, args []string) { r.setFloat("x", args, &r.params.X) })},
		{[]string{"a"}, "<value>", "Set the binomial parameter", keep(func(r *REPL, args []string) { r.setFloat("a", args, &r.params.A) })},
		{[]string{"terms"}, "<n>", "Set the maximum number of terms", keep(func(r *REPL, args []string) { r.setInt("terms", args, &r.params.MaxTerms, 1) })},
		{[]string{"tol"}, "<value>", "Set the truncation tolerance", keep(func(r *REPL, args []string) { r.setFloat("tol", args, &r.params.Tolerance) })},
		{[]string{"show"}, "<n>", "Set the number of leading terms displayed", keep(func(r *REPL, args []string) { r.setInt("show", args, &r.params.Show, 0) })},
		{[]string{"list", "ls"}, "", "List the available series", keep(func(r *REPL, _ []string) { r.cmdList() })},
		{[]string{"status", "st"}, "", "Display the current parameters", keep(func(r *REPL, _ []string) { r.cmdStatus() })},
		{[]string{"help", "h", "?"}, "", "Display this help", keep(func(r *REPL, _ []string) { r.printHelp() })},
		{[]string{"exit", "quit", "q"}, "", "Leave the session", func(r *REPL, _ []string) bool {
			fmt.Fprintln(r.out, ui.Paint(ui.Success, "Goodbye!"))
			return false
		}},
	}
}

func lookupCommand(name string) (replCommand, bool) {
	for _, c := range replCommands {
		for _, n := range c.names {
			if n == name {
				return c, true
			}
		}
	}
	return replCommand{}, false
}

// Start reads commands until "exit" or the end of the input.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	prompt := ui.Paint(ui.Success, "seq> ")
	scanner := bufio.NewScanner(r.in)
	for fmt.Fprint(r.out, prompt); scanner.Scan(); fmt.Fprint(r.out, prompt) {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !r.processCommand(line) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(r.out, ui.Paint(ui.Error, "Read error: "+err.Error()))
	}
	fmt.Fprintln(r.out, "\nGoodbye!")
}

func (r *REPL) printBanner() {
	const width = 58
	title := "Σ Series Calculator - Interactive Mode"
	pad := width - len([]rune(title))
	border := strings.Repeat("═", width)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, ui.Paint(ui.Secondary, "╔"+border+"╗"))
	fmt.Fprintf(r.out, "%s%s%s%s%s\n",
		ui.Paint(ui.Secondary, "║"), strings.Repeat(" ", pad/2),
		ui.Paint(ui.Bold, title), strings.Repeat(" ", pad-pad/2), ui.Paint(ui.Secondary, "║"))
	fmt.Fprintln(r.out, ui.Paint(ui.Secondary, "╚"+border+"╝"))
	fmt.Fprintln(r.out)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, ui.Paint(ui.Bold, "Available commands:"))
	for _, c := range replCommands {
		help := c.help
		if c.names[0] == "eval" {
			help += " (default: " + r.current + ")"
		}
		fmt.Fprintf(r.out, "  %s%s - %s\n", ui.Paint(ui.Warning, c.label()), strings.Repeat(" ", max(1, 18-len(c.label()))), help)
	}
}

// processCommand runs one input line and reports whether the session goes
// on. A line starting with a series name evaluates that series.
func (r *REPL) processCommand(input string) bool {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return true
	}
	name := strings.ToLower(fields[0])
	if c, ok := lookupCommand(name); ok {
		return c.run(r, fields[1:])
	}
	if _, err := r.factory.Get(name); err == nil {
		r.cmdEval(fields)
		return true
	}
	fmt.Fprintln(r.out, ui.Paint(ui.Error, "Unknown command: "+name))
	fmt.Fprintf(r.out, "Type %s to see available commands.\n", ui.Paint(ui.Warning, "help"))
	return true
}

func (r *REPL) cmdEval(args []string) {
	name := r.current
	if len(args) > 0 {
		name = strings.ToLower(args[0])
	}
	s, err := r.factory.Get(name)
	if err != nil {
		fmt.Fprintln(r.out, ui.Paint(ui.Error, "Unknown series: "+name))
		fmt.Fprintf(r.out, "Available series: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}

	p := r.params
	if len(args) > 1 {
		if p.X, err = strconv.ParseFloat(args[1], 64); err != nil {
			fmt.Fprintln(r.out, ui.Paint(ui.Error, "Invalid value: "+args[1]))
			return
		}
	}
	r.current = name

	fmt.Fprintf(r.out, "Evaluating %s at x=%s...\n",
		ui.Paint(ui.Info, name), ui.Paint(ui.Secondary, strconv.FormatFloat(p.X, 'g', -1, 64)))
	result, err := r.evaluate(s, p)
	if err != nil {
		fmt.Fprintln(r.out, ui.Paint(ui.Error, fmt.Sprintf("Error: %v", err)))
		return
	}
	fmt.Fprintln(r.out)
	DisplayResult(result, true, true, r.out)
	fmt.Fprintln(r.out)
}

// evaluate runs s under the session timeout with a spinner on r.out.
func (r *REPL) evaluate(s series.Series, p series.Params) (series.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	updates := make(chan series.ProgressUpdate, 10)
	subject := series.NewProgressSubject()
	subject.Register(series.NewChannelObserver(updates))

	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, updates, 1, r.out)

	result, err := r.evaluator.Evaluate(ctx, s, p, subject, 0)
	close(updates)
	wg.Wait()
	return result, err
}

func (r *REPL) cmdCompare() {
	rule := ui.Paint(ui.Secondary, strings.Repeat("─", 57))
	fmt.Fprintf(r.out, "\n%s\n%s\n", ui.Paint(ui.Bold, fmt.Sprintf("Comparison at x=%g:", r.params.X)), rule)

	for _, name := range r.factory.List() {
		s, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		label := ui.Paint(ui.Warning, fmt.Sprintf("%-10s", name))

		ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
		result, err := r.evaluator.Evaluate(ctx, s, r.params, nil, 0)
		cancel()
		if err != nil {
			fmt.Fprintf(r.out, "  %s: %s\n", label, ui.Paint(ui.Error, fmt.Sprintf("Error - %v", err)))
			continue
		}

		var mark string
		switch {
		case !result.HasReference:
		case result.WithinTolerance:
			mark = ui.Paint(ui.Success, "✓")
		default:
			mark = ui.Paint(ui.Error, "✗ MISMATCH")
		}
		fmt.Fprintf(r.out, "  %s: %s %8d terms %s\n",
			label, ui.Paint(ui.Secondary, fmt.Sprintf("%24s", FormatValue(result.Sum))), result.Terms, mark)
	}
	fmt.Fprintf(r.out, "%s\n\n", rule)
}

func (r *REPL) setFloat(name string, args []string, dst *float64) {
	if len(args) == 0 {
		fmt.Fprintln(r.out, ui.Paint(ui.Error, "Usage: "+name+" <value>"))
		return
	}
	v, err := strconv.ParseFloat(args[0], 64)
	switch {
	case err != nil || math.IsNaN(v):
		fmt.Fprintln(r.out, ui.Paint(ui.Error, "Invalid value: "+args[0]))
	case name == "tol" && v < 0:
		fmt.Fprintln(r.out, ui.Paint(ui.Error, "Tolerance cannot be negative"))
	default:
		*dst = v
		fmt.Fprintf(r.out, "%s set to %s\n", name, ui.Paint(ui.Success, strconv.FormatFloat(v, 'g', -1, 64)))
	}
}

// setInt accepts values in [least, series.MaxTermsLimit].
func (r *REPL) setInt(name string, args []string, dst *int, least int) {
	if len(args) == 0 {
		fmt.Fprintln(r.out, ui.Paint(ui.Error, "Usage: "+name+" <n>"))
		return
	}
	v, err := strconv.Atoi(args[0])
	if err != nil || v < least || v > series.MaxTermsLimit {
		fmt.Fprintln(r.out, ui.Paint(ui.Error, "Invalid value: "+args[0]))
		return
	}
	*dst = v
	fmt.Fprintf(r.out, "%s set to %s\n", name, ui.Paint(ui.Success, strconv.Itoa(v)))
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%s\n", ui.Paint(ui.Bold, "Available series:"))
	for _, name := range r.factory.List() {
		s, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.current {
			marker = ui.Paint(ui.Success, "► ")
		}
		fmt.Fprintf(r.out, "%s%s - %s\n", marker, ui.Paint(ui.Warning, fmt.Sprintf("%-10s", name)), s.Description())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	rows := []struct{ label, value string }{
		{"Series:", r.current},
		{"x:", strconv.FormatFloat(r.params.X, 'g', -1, 64)},
		{"a:", strconv.FormatFloat(r.params.A, 'g', -1, 64)},
		{"Max terms:", strconv.Itoa(r.params.MaxTerms)},
		{"Tolerance:", strconv.FormatFloat(r.params.Tolerance, 'g', -1, 64)},
		{"Show:", strconv.Itoa(r.params.Show)},
		{"Timeout:", r.config.Timeout.String()},
	}
	fmt.Fprintf(r.out, "\n%s\n", ui.Paint(ui.Bold, "Current configuration:"))
	for _, row := range rows {
		fmt.Fprintf(r.out, "  %-11s %s\n", row.label, ui.Paint(ui.Secondary, row.value))
	}
	fmt.Fprintln(r.out)
}
