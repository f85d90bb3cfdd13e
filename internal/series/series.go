// Package series defines the numeric series that seqcalc evaluates. Every
// series is a term cursor composed from pkg/seq generators and adaptors; the
// Evaluator bounds it, sums it and reports progress while doing so.
package series

import (
	"github.com/agbru/seqcalc/pkg/seq"
)

// Default evaluation parameters.
const (
	// DefaultMaxTerms caps the number of terms summed for one series.
	DefaultMaxTerms = 100_000
	// MaxTermsLimit is the largest accepted MaxTerms. The evaluator caches
	// every term it sums, so this also bounds its memory use.
	MaxTermsLimit = 10_000_000
	// DefaultTolerance is the magnitude under which a term ends the sum.
	DefaultTolerance = 1e-15
	// DefaultShow is the number of leading terms reported with a result.
	DefaultShow = 5
	// ReferenceTolerance is the absolute or relative distance within which a
	// sum is considered to agree with the closed form.
	ReferenceTolerance = 1e-8
)

// Params are the inputs of one series evaluation.
type Params struct {
	// X is the argument of the series (ignored by constant series).
	X float64
	// A is the exponent of the binomial series.
	A float64
	// MaxTerms is the maximum number of terms to sum.
	MaxTerms int
	// Tolerance stops the sum at the first term with |t| <= Tolerance. Zero
	// selects the machine epsilon.
	Tolerance float64
	// Show is how many leading terms to return with the result.
	Show int
}

// DefaultParams returns the parameters used when none are given.
func DefaultParams() Params {
	return Params{
		X:         1,
		A:         0.5,
		MaxTerms:  DefaultMaxTerms,
		Tolerance: DefaultTolerance,
		Show:      DefaultShow,
	}
}

// Series is a numeric series defined by its term cursor.
type Series interface {
	// Name returns the registry key of the series (e.g. "exp").
	Name() string

	// Description returns a one-line human readable definition.
	Description() string

	// Terms returns a fresh cursor over the terms of the series for p. It
	// returns an apperrors.DomainError when p is outside the region where
	// the series converges. The cursor may be infinite.
	Terms(p Params) (seq.Cursor[float64], error)

	// Reference returns the closed form value of the series for p, if known.
	Reference(p Params) (float64, bool)
}
