// Package cli renders evaluation progress and results for the terminal and
// hosts the interactive REPL and the shell completion generators.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/seqcalc/internal/series"
	"github.com/agbru/seqcalc/internal/ui"
)

// FormatExecutionDuration prints sub-millisecond durations in µs, sub-second
// ones in ms and anything longer with time.Duration's own format.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return strconv.FormatInt(d.Microseconds(), 10) + "µs"
	case d < time.Second:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	default:
		return d.String()
	}
}

// Escape codes of the active theme, for callers composing format strings.
func ColorReset() string     { return ui.Code(ui.Reset) }
func ColorRed() string       { return ui.Code(ui.Error) }
func ColorGreen() string     { return ui.Code(ui.Success) }
func ColorYellow() string    { return ui.Code(ui.Warning) }
func ColorBlue() string      { return ui.Code(ui.Primary) }
func ColorMagenta() string   { return ui.Code(ui.Info) }
func ColorCyan() string      { return ui.Code(ui.Secondary) }
func ColorBold() string      { return ui.Code(ui.Bold) }
func ColorUnderline() string { return ui.Code(ui.Underline) }

// FormatValue prints v with 17 significant digits, enough to round-trip a
// float64 and compare partial sums against closed forms.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

func formatTerms(terms []float64) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, strconv.FormatFloat(t, 'g', 8, 64))
	}
	return strings.Join(parts, ", ")
}

// DisplayResult prints one evaluation. verbose adds the leading terms,
// details adds timing and the comparison with the closed form.
func DisplayResult(result series.Result, verbose, details bool, out io.Writer) {
	fmt.Fprintf(out, "%s = %s\n", ui.Paint(ui.Info, result.Series), ui.Paint(ui.Success, FormatValue(result.Sum)))

	status := ui.Paint(ui.Success, "converged")
	if !result.Converged {
		status = ui.Paint(ui.Warning, "term limit reached")
	}
	terms := formatNumberString(strconv.Itoa(result.Terms))
	fmt.Fprintf(out, "Terms summed: %s (%s).\n", ui.Paint(ui.Secondary, terms), status)

	if verbose && len(result.Shown) > 0 {
		fmt.Fprintf(out, "Leading terms: %s\n", ui.Paint(ui.Secondary, formatTerms(result.Shown)))
	}
	if !details {
		return
	}

	elapsed := "< 1µs"
	if result.Duration > 0 {
		elapsed = FormatExecutionDuration(result.Duration)
	}
	fmt.Fprintf(out, "\n%s\n", ui.Paint(ui.Bold, "--- Detailed result analysis ---"))
	fmt.Fprintf(out, "Evaluation time : %s\n", ui.Paint(ui.Success, elapsed))

	if !result.HasReference {
		fmt.Fprintf(out, "Reference       : %s\n", ui.Paint(ui.Secondary, "n/a"))
		return
	}
	mark := ui.Paint(ui.Success, "✓")
	if !result.WithinTolerance {
		mark = ui.Paint(ui.Error, "✗")
	}
	fmt.Fprintf(out, "Reference       : %s\n", ui.Paint(ui.Secondary, FormatValue(result.Reference)))
	fmt.Fprintf(out, "Absolute error  : %s %s\n", ui.Paint(ui.Secondary, fmt.Sprintf("%.3e", result.AbsError)), mark)
}

// formatNumberString groups the digits of an optionally signed integer
// string by thousands.
func formatNumberString(s string) string {
	sign, digits := "", s
	if strings.HasPrefix(s, "-") {
		sign, digits = "-", s[1:]
	}
	var b strings.Builder
	b.Grow(len(s) + len(digits)/3)
	b.WriteString(sign)
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
