// Package testutil holds helpers shared by the package tests.
package testutil

import "regexp"

// ansiRegex matches CSI escape sequences such as the theme colors.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes terminal color codes so tests can match plain text.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
