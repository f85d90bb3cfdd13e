package series

import (
	"context"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gonum.org/v1/gonum/floats/scalar"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/pkg/seq"
)

// chunkSize is the number of terms summed between two cancellation checks.
const chunkSize = 1024

var (
	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seqcalc_evaluations_total",
			Help: "The total number of series evaluations processed",
		},
		[]string{"series", "status"},
	)
	evaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "seqcalc_evaluation_duration_seconds",
			Help: "The duration of series evaluations in seconds",
		},
		[]string{"series"},
	)
	termsSummed = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seqcalc_evaluation_terms",
			Help:    "The number of terms summed per evaluation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		},
		[]string{"series"},
	)
)

// Result is the outcome of one series evaluation.
type Result struct {
	// Series is the name of the evaluated series.
	Series string `json:"series"`
	// Sum is the partial sum of the terms that were consumed.
	Sum float64 `json:"sum"`
	// Terms is the number of terms summed.
	Terms int `json:"terms"`
	// Converged is true when the sum stopped because a term fell under the
	// tolerance (or the series ran out), not because of the term limit.
	Converged bool `json:"converged"`
	// Shown holds the first terms of the series.
	Shown []float64 `json:"shown,omitempty"`
	// Reference is the closed form value, when HasReference is set.
	Reference    float64 `json:"reference,omitempty"`
	HasReference bool    `json:"has_reference"`
	// AbsError is |Sum - Reference|.
	AbsError float64 `json:"abs_error,omitempty"`
	// WithinTolerance reports whether Sum agrees with Reference within
	// ReferenceTolerance.
	WithinTolerance bool `json:"within_tolerance"`
	// Duration is the wall time of the evaluation.
	Duration time.Duration `json:"duration_ns"`
}

// Evaluator sums series term cursors.
type Evaluator struct {
	logger zerolog.Logger
}

// NewEvaluator creates an Evaluator that discards its log output.
func NewEvaluator() *Evaluator {
	return &Evaluator{logger: zerolog.Nop()}
}

// NewEvaluatorWithLogger creates an Evaluator logging through logger.
func NewEvaluatorWithLogger(logger zerolog.Logger) *Evaluator {
	return &Evaluator{logger: logger}
}

// Logger returns the logger e reports through.
func (e *Evaluator) Logger() zerolog.Logger { return e.logger }

// Evaluate sums the terms of s for p.
//
// The term cursor is cut at the first term with |t| <= p.Tolerance (the
// machine epsilon when p.Tolerance is zero) and at
// p.MaxTerms terms, then memoized so that, once the sum is known, the first
// p.Show terms are replayed from the cache instead of being recomputed. The
// context is checked every chunkSize terms.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - s: The series to evaluate.
//   - p: The evaluation parameters.
//   - subject: The progress subject to notify. May be nil.
//   - index: The evaluation identifier passed to observers.
//
// Returns:
//   - Result: The evaluation result.
//   - error: A DomainError for invalid parameters or a context error.
func (e *Evaluator) Evaluate(ctx context.Context, s Series, p Params, subject *ProgressSubject, index int) (result Result, err error) {
	ctx, span := otel.Tracer("series").Start(ctx, "Evaluate")
	defer span.End()
	span.SetAttributes(
		attribute.String("series.name", s.Name()),
		attribute.Float64("series.x", p.X),
		attribute.Int("series.max_terms", p.MaxTerms),
	)

	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
		status := "success"
		switch {
		case err != nil:
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case !result.Converged:
			status = "not_converged"
		}
		evaluationsTotal.WithLabelValues(s.Name(), status).Inc()
		evaluationDuration.WithLabelValues(s.Name()).Observe(result.Duration.Seconds())
		if err == nil {
			termsSummed.WithLabelValues(s.Name()).Observe(float64(result.Terms))
		}

		e.logger.Debug().
			Str("series", s.Name()).
			Float64("x", p.X).
			Int("terms", result.Terms).
			Dur("duration", result.Duration).
			Str("status", status).
			Msg("evaluation completed")
	}()

	report := subject.AsProgressReporter(index)
	report(0)

	terms, err := s.Terms(p)
	if err != nil {
		return Result{Series: s.Name()}, apperrors.NewEvaluationError(s.Name(), err)
	}

	stop := seq.Epsilon(terms)
	if p.Tolerance > 0 {
		stop = seq.EpsilonTol(terms, p.Tolerance)
	}
	cache := seq.Memoize[float64](seq.Counted[float64](p.MaxTerms, stop))

	sum, last := 0.0, 0.0
	for !cache.Exhausted() {
		if err := ctx.Err(); err != nil {
			return Result{Series: s.Name(), Terms: cache.Position()}, apperrors.NewEvaluationError(s.Name(), err)
		}
		sum = seq.SumFrom[float64](seq.Take[float64](chunkSize, cache), sum)
		if progress := termProgress(cache.Position(), p.MaxTerms); progress-last >= ProgressReportThreshold {
			report(progress)
			last = progress
		}
	}

	if !isFinite(sum) {
		return Result{Series: s.Name(), Terms: cache.Position()}, apperrors.NewEvaluationError(s.Name(), apperrors.ErrNonFinite)
	}

	result = Result{
		Series:    s.Name(),
		Sum:       sum,
		Terms:     cache.Position(),
		Converged: stop.Exhausted(),
	}

	cache.Rewind()
	result.Shown = make([]float64, min(p.Show, cache.Buffered()))
	seq.Copy[float64](seq.Take[float64](len(result.Shown), cache), seq.Array(result.Shown))

	// A closed form that overflows while the sum does not is left out.
	if ref, ok := s.Reference(p); ok && isFinite(ref) {
		result.Reference = ref
		result.HasReference = true
		result.AbsError = math.Abs(sum - ref)
		result.WithinTolerance = scalar.EqualWithinAbsOrRel(sum, ref, ReferenceTolerance, ReferenceTolerance)
	}

	span.SetAttributes(
		attribute.Int("series.terms", result.Terms),
		attribute.Bool("series.converged", result.Converged),
	)
	report(1.0)
	return result, nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
