// Package service exposes series evaluation as a synchronous service shared
// by the HTTP server and the REPL.
package service

import (
	"context"
	"errors"
	"math"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/series"
)

// ErrMaxTermsExceeded is returned when a request asks for more terms than the
// service allows.
var ErrMaxTermsExceeded = errors.New("maximum number of terms exceeded")

// Service defines the interface for series evaluation services.
type Service interface {
	// Evaluate sums the named series with the given parameters.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - name: The registered name of the series.
	//   - p: The evaluation parameters.
	//
	// Returns:
	//   - series.Result: The result.
	//   - error: An error if validation or evaluation fails.
	Evaluate(ctx context.Context, name string, p series.Params) (series.Result, error)

	// Series lists the available series.
	Series() []series.Series
}

// EvaluationService validates requests, resolves series from a factory and
// runs the evaluator. It implements Service.
type EvaluationService struct {
	factory   series.Factory
	evaluator *series.Evaluator
	maxTerms  int
}

var _ Service = (*EvaluationService)(nil)

// NewEvaluationService creates a new EvaluationService.
//
// Parameters:
//   - factory: The registry to resolve series from.
//   - evaluator: The evaluator to run (a default one if nil).
//   - maxTerms: The maximum allowed MaxTerms (0 for series.MaxTermsLimit).
func NewEvaluationService(factory series.Factory, evaluator *series.Evaluator, maxTerms int) *EvaluationService {
	if evaluator == nil {
		evaluator = series.NewEvaluator()
	}
	if maxTerms <= 0 || maxTerms > series.MaxTermsLimit {
		maxTerms = series.MaxTermsLimit
	}
	return &EvaluationService{factory: factory, evaluator: evaluator, maxTerms: maxTerms}
}

// Validate checks p against the service limits.
func (s *EvaluationService) Validate(p series.Params) error {
	switch {
	case p.MaxTerms <= 0:
		return apperrors.NewValidationError("terms", "must be positive", p.MaxTerms)
	case p.MaxTerms > s.maxTerms:
		return apperrors.WrapError(ErrMaxTermsExceeded, "terms=%d, limit %d", p.MaxTerms, s.maxTerms)
	case p.Tolerance < 0 || math.IsNaN(p.Tolerance):
		return apperrors.NewValidationError("tol", "must be a non-negative number", p.Tolerance)
	case p.Show < 0:
		return apperrors.NewValidationError("show", "cannot be negative", p.Show)
	case math.IsNaN(p.X) || math.IsInf(p.X, 0):
		return apperrors.NewValidationError("x", "must be finite", p.X)
	case math.IsNaN(p.A) || math.IsInf(p.A, 0):
		return apperrors.NewValidationError("a", "must be finite", p.A)
	}
	return nil
}

// Evaluate implements Service.
func (s *EvaluationService) Evaluate(ctx context.Context, name string, p series.Params) (series.Result, error) {
	if err := s.Validate(p); err != nil {
		return series.Result{}, err
	}
	sr, err := s.factory.Get(name)
	if err != nil {
		return series.Result{}, apperrors.NewValidationError("series", err.Error(), name)
	}
	// No progress reporting: callers of the service wait for the result.
	return s.evaluator.Evaluate(ctx, sr, p, nil, 0)
}

// Series implements Service, in name order.
func (s *EvaluationService) Series() []series.Series {
	names := s.factory.List()
	out := make([]series.Series, 0, len(names))
	for _, name := range names {
		if sr, err := s.factory.Get(name); err == nil {
			out = append(out, sr)
		}
	}
	return out
}

// MaxTerms returns the largest MaxTerms the service accepts.
func (s *EvaluationService) MaxTerms() int { return s.maxTerms }
