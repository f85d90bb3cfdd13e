package cli

import apperrors "github.com/agbru/seqcalc/internal/errors"

var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider implements apperrors.ColorProvider with the current CLI
// theme, so error reports use the same colors as the rest of the output.
type CLIColorProvider struct{}

// Yellow returns the warning color of the current theme.
func (c CLIColorProvider) Yellow() string { return ColorYellow() }

// Reset returns the reset escape code of the current theme.
func (c CLIColorProvider) Reset() string { return ColorReset() }
