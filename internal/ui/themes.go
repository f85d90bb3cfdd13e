// Package ui holds the terminal color themes of seqcalc, shared by the CLI,
// the REPL and the usage text.
package ui

import (
	"io"
	"os"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

// ThemeEnv selects the theme by name: "dark", "light", "none", or "auto"
// (dark on a terminal, none otherwise).
const ThemeEnv = "SEQCALC_THEME"

// Theme maps each Role to an ANSI escape sequence.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

var (
	// DarkTheme uses bright 256-color codes for dark backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme uses darker codes that stay readable on light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme has no escape sequences at all.
	NoColorTheme = Theme{Name: "none"}
)

var themes = map[string]Theme{
	DarkTheme.Name:    DarkTheme,
	LightTheme.Name:   LightTheme,
	NoColorTheme.Name: NoColorTheme,
}

var current atomic.Pointer[Theme]

func init() {
	SetCurrentTheme(DarkTheme)
}

// ThemeNames lists the selectable theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes)+1)
	for name := range themes {
		names = append(names, name)
	}
	names = append(names, "auto")
	slices.Sort(names)
	return names
}

// LookupTheme returns the theme called name, case-insensitively.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(name)]
	return t, ok
}

// GetCurrentTheme returns the active theme. It is safe for concurrent use.
func GetCurrentTheme() Theme {
	return *current.Load()
}

// SetCurrentTheme replaces the active theme.
func SetCurrentTheme(t Theme) {
	current.Store(&t)
}

// SetTheme activates the theme called name, falling back to DarkTheme.
func SetTheme(name string) {
	t, ok := LookupTheme(name)
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme picks the theme for output written to out.
//
// Precedence: the noColor flag, then NO_COLOR (https://no-color.org/, any
// value disables colors), then SEQCALC_THEME, then DarkTheme.
func InitTheme(noColor bool, out io.Writer) {
	_, noColorEnv := os.LookupEnv("NO_COLOR")
	name := strings.ToLower(os.Getenv(ThemeEnv))
	switch {
	case noColor, noColorEnv:
		SetCurrentTheme(NoColorTheme)
	case name == "auto":
		if IsTerminal(out) {
			SetCurrentTheme(DarkTheme)
		} else {
			SetCurrentTheme(NoColorTheme)
		}
	default:
		SetTheme(name)
	}
}

// IsTerminal reports whether w is a terminal, Cygwin and MSYS pseudo-terminals
// included. Anything that is not an *os.File is not a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
