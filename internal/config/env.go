package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// envVars lists the flags that can be set from the environment, with the
// variable suffix after EnvPrefix and the short alias that also counts as
// setting the flag on the command line.
var envVars = []struct {
	flag, alias, env string
}{
	{"series", "", "SERIES"},
	{"x", "", "X"},
	{"a", "", "A"},
	{"max-terms", "", "MAX_TERMS"},
	{"tol", "", "TOL"},
	{"show", "", "SHOW"},
	{"timeout", "", "TIMEOUT"},
	{"port", "", "PORT"},
	{"output", "o", "OUTPUT"},
	{"server", "", "SERVER"},
	{"json", "", "JSON"},
	{"v", "", "VERBOSE"},
	{"details", "d", "DETAILS"},
	{"quiet", "q", "QUIET"},
	{"interactive", "", "INTERACTIVE"},
	{"no-color", "", "NO_COLOR"},
}

// applyEnv fills the flags absent from the command line from their
// variables, giving the precedence flags > environment > defaults. Values
// go through the flag's own parser, so a malformed one is an error.
func applyEnv(fs *flag.FlagSet) error {
	onCommandLine := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { onCommandLine[f.Name] = true })

	for _, v := range envVars {
		if onCommandLine[v.flag] || onCommandLine[v.alias] {
			continue
		}
		raw := os.Getenv(EnvPrefix + v.env)
		if raw == "" {
			continue
		}
		if isBoolFlag(fs.Lookup(v.flag)) {
			raw = normalizeBool(raw)
		}
		if err := fs.Set(v.flag, raw); err != nil {
			return fmt.Errorf("%s%s=%q: %w", EnvPrefix, v.env, raw, err)
		}
	}
	return nil
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// normalizeBool accepts yes/no and on/off on top of strconv.ParseBool's
// spellings.
func normalizeBool(s string) string {
	switch strings.ToLower(s) {
	case "yes", "on":
		return "true"
	case "no", "off":
		return "false"
	}
	return s
}
