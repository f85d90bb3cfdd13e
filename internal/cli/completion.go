package cli

import (
	"fmt"
	"io"
	"strings"
)

// completionFlag describes one command-line flag for the completion
// generators. Single letter names are written with one dash, longer ones
// with two.
type completionFlag struct {
	short, long string
	desc        string
	arg         string   // argument placeholder, empty for switches
	values      []string // fixed candidates for arg
	file        bool     // arg is a path
}

func (f completionFlag) names() []string {
	var names []string
	if f.short != "" {
		names = append(names, "-"+f.short)
	}
	if f.long != "" {
		names = append(names, "--"+f.long)
	}
	return names
}

func seqcalcFlags(seriesNames []string) []completionFlag {
	return []completionFlag{
		{short: "h", long: "help", desc: "Show help message"},
		{short: "V", long: "version", desc: "Show version information"},
		{long: "series", desc: "Series to evaluate", arg: "series", values: append(append([]string{}, seriesNames...), "all")},
		{short: "x", desc: "Evaluation point", arg: "number"},
		{short: "a", desc: "Binomial parameter", arg: "number"},
		{long: "max-terms", desc: "Maximum number of terms", arg: "number", values: []string{"1000", "100000", "1000000"}},
		{long: "tol", desc: "Truncation tolerance", arg: "number", values: []string{"0", "1e-6", "1e-9", "1e-12", "1e-15"}},
		{long: "show", desc: "Leading terms to display", arg: "number"},
		{short: "v", desc: "Display leading terms"},
		{short: "d", long: "details", desc: "Show timing and reference comparison"},
		{long: "timeout", desc: "Maximum execution time", arg: "duration", values: []string{"10s", "30s", "1m", "5m"}},
		{long: "json", desc: "Output in JSON format"},
		{long: "server", desc: "Start HTTP server mode"},
		{long: "port", desc: "Server port", arg: "port", values: []string{"8080", "3000", "5000", "9000"}},
		{long: "no-color", desc: "Disable colored output"},
		{short: "o", long: "output", desc: "Output file path", arg: "file", file: true},
		{short: "q", long: "quiet", desc: "Quiet mode for scripts"},
		{long: "interactive", desc: "Start interactive REPL mode"},
		{long: "completion", desc: "Generate completion script", arg: "shell", values: []string{"bash", "zsh", "fish", "powershell"}},
	}
}

// GenerateCompletion writes the completion script of shell ("bash", "zsh",
// "fish", "powershell" or "ps") to out. seriesNames are offered as values
// of -series.
func GenerateCompletion(out io.Writer, shell string, seriesNames []string) error {
	flags := seqcalcFlags(seriesNames)
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(flags)
	case "zsh":
		script = zshCompletion(flags)
	case "fish":
		script = fishCompletion(flags)
	case "powershell", "ps":
		script = powerShellCompletion(flags)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	_, err := io.WriteString(out, script)
	return err
}

func bashCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("# Bash completion for seqcalc. Source it from ~/.bashrc.\n\n")
	b.WriteString("_seqcalc_completions() {\n")
	b.WriteString("    local cur=\"${COMP_WORDS[COMP_CWORD]}\" prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    COMPREPLY=()\n\n    case \"${prev}\" in\n")

	var options []string
	for _, f := range flags {
		options = append(options, f.names()...)

		var gen string
		switch {
		case f.file:
			gen = "-f"
		case len(f.values) > 0:
			gen = "-W \"" + strings.Join(f.values, " ") + "\""
		default:
			continue
		}
		// Go's flag package accepts long names with a single dash too.
		patterns := f.names()
		if f.long != "" {
			patterns = append(patterns, "-"+f.long)
		}
		fmt.Fprintf(&b, "        %s)\n            COMPREPLY=( $(compgen %s -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(patterns, "|"), gen)
	}

	b.WriteString("    esac\n\n    if [[ \"${cur}\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(options, " "))
	b.WriteString("    fi\n}\n\ncomplete -F _seqcalc_completions seqcalc\n")
	return b.String()
}

func zshCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("#compdef seqcalc\n\n# Zsh completion for seqcalc. Place it in a directory of $fpath.\n\n")
	b.WriteString("_seqcalc() {\n    _arguments -s")
	for _, f := range flags {
		names := f.names()
		spec := "'" + names[0]
		if len(names) > 1 {
			spec = fmt.Sprintf("'(%s)'{%s}'", strings.Join(names, " "), strings.Join(names, ","))
		}
		spec += "[" + f.desc + "]"
		switch {
		case f.file:
			spec += ":file:_files"
		case len(f.values) > 0:
			spec += ":" + f.arg + ":(" + strings.Join(f.values, " ") + ")"
		case f.arg != "":
			spec += ":" + f.arg + ":"
		}
		b.WriteString(" \\\n        " + spec + "'")
	}
	b.WriteString("\n}\n\n_seqcalc \"$@\"\n")
	return b.String()
}

func fishCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("# Fish completion for seqcalc. Save it as ~/.config/fish/completions/seqcalc.fish.\n\n")
	b.WriteString("complete -c seqcalc -f\n")
	for _, f := range flags {
		b.WriteString("complete -c seqcalc")
		if f.short != "" {
			b.WriteString(" -s " + f.short)
		}
		if f.long != "" {
			b.WriteString(" -l " + f.long)
		}
		fmt.Fprintf(&b, " -d '%s'", f.desc)
		switch {
		case f.file:
			b.WriteString(" -rF")
		case len(f.values) > 0:
			fmt.Fprintf(&b, " -xa '%s'", strings.Join(f.values, " "))
		case f.arg != "":
			b.WriteString(" -x")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func powerShellCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("# PowerShell completion for seqcalc. Add it to your $PROFILE.\n\n")

	b.WriteString("$seqcalcOptions = @(\n")
	for _, f := range flags {
		for _, name := range f.names() {
			fmt.Fprintf(&b, "    @{ Name = '%s'; Description = '%s' }\n", name, f.desc)
		}
	}
	b.WriteString(")\n\n$seqcalcValues = @{\n")
	for _, f := range flags {
		if len(f.values) == 0 {
			continue
		}
		quoted := make([]string, len(f.values))
		for i, v := range f.values {
			quoted[i] = "'" + v + "'"
		}
		for _, name := range f.names() {
			fmt.Fprintf(&b, "    '%s' = @(%s)\n", name, strings.Join(quoted, ", "))
		}
	}
	b.WriteString(`}

Register-ArgumentCompleter -CommandName 'seqcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $elements = $commandAst.CommandElements
    $prev = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    if ($seqcalcValues.ContainsKey($prev)) {
        $seqcalcValues[$prev] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    $seqcalcOptions | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`)
	return b.String()
}
