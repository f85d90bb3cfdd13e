package config

import (
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/agbru/seqcalc/internal/ui"
)

func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() { writeUsage(fs) }
}

// writeUsage prints the flag reference in the theme picked for the output,
// so NO_COLOR and SEQCALC_THEME apply before the application starts.
func writeUsage(fs *flag.FlagSet) {
	out := fs.Output()
	ui.InitTheme(false, out)

	fmt.Fprintf(out, "\n%s\nSums power series built from composable sequence cursors.\n\n", ui.Paint(ui.Bold, "Series Calculator"))
	fmt.Fprintf(out, "%s\n  %s [flags]\n\n%s\n", ui.Paint(ui.Warning, "Usage:"), fs.Name(), ui.Paint(ui.Warning, "Flags:"))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fs.VisitAll(func(f *flag.Flag) {
		arg, usage := flag.UnquoteUsage(f)
		line := fmt.Sprintf("  %s\t%s", ui.Paint(ui.Primary, strings.TrimSpace("-"+f.Name+" "+arg)), usage)
		switch f.DefValue {
		case "", "0", "false":
		default:
			line += " " + ui.Paint(ui.Secondary, "(default "+f.DefValue+")")
		}
		fmt.Fprintln(tw, line)
	})
	_ = tw.Flush()

	fmt.Fprintf(out, "\n%s\n  Flags can also be set through %s<NAME>, e.g. %sMAX_TERMS=1000.\n\n",
		ui.Paint(ui.Warning, "Environment:"), EnvPrefix, EnvPrefix)
}
