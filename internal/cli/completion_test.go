package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	names := []string{"exp", "sin"}

	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{
			"_seqcalc_completions()",
			"--series|-series)\n            COMPREPLY=( $(compgen -W \"exp sin all\" -- \"${cur}\") )",
			"-o|--output|-output)\n            COMPREPLY=( $(compgen -f",
			"-h --help -V --version --series -x -a --max-terms",
			"complete -F _seqcalc_completions seqcalc",
		}},
		{"zsh", []string{
			"#compdef seqcalc",
			"'--series[Series to evaluate]:series:(exp sin all)'",
			"'(-o --output)'{-o,--output}'[Output file path]:file:_files'",
			"'-x[Evaluation point]:number:'",
			"'-v[Display leading terms]'",
		}},
		{"fish", []string{
			"complete -c seqcalc -l series -d 'Series to evaluate' -xa 'exp sin all'",
			"complete -c seqcalc -s o -l output -d 'Output file path' -rF",
			"complete -c seqcalc -s x -d 'Evaluation point' -x\n",
			"complete -c seqcalc -l json -d 'Output in JSON format'\n",
		}},
		{"powershell", []string{
			"Register-ArgumentCompleter",
			"'--series' = @('exp', 'sin', 'all')",
			"@{ Name = '--quiet'; Description = 'Quiet mode for scripts' }",
		}},
		{"ps", []string{"Register-ArgumentCompleter"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, names); err != nil {
				t.Fatalf("GenerateCompletion(%s): %v", tt.shell, err)
			}
			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("%s script missing %q:\n%s", tt.shell, s, out)
				}
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()
		if err := GenerateCompletion(&bytes.Buffer{}, "tcsh", names); err == nil {
			t.Error("expected an error for tcsh")
		}
	})
}

func TestSeqcalcFlagsDoNotAliasSeriesNames(t *testing.T) {
	t.Parallel()
	names := make([]string, 2, 8)
	names[0], names[1] = "exp", "sin"
	_ = seqcalcFlags(names)
	if len(names) != 2 || cap(names) != 8 {
		t.Fatalf("series names modified: %v", names)
	}
	if got := names[:3][2]; got != "" {
		t.Errorf("seqcalcFlags wrote %q past the end of the caller's slice", got)
	}
}
