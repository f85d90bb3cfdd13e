package series

import (
	"context"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestClosedForms_PropertyBased checks that evaluated sums agree with their
// closed forms over random arguments.
func TestClosedForms_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)
	ev := NewEvaluator()

	within := func(s Series, x, a float64) bool {
		p := DefaultParams()
		p.X, p.A = x, a
		res, err := ev.Evaluate(context.Background(), s, p, nil, 0)
		if err != nil {
			t.Logf("%s(x=%g, a=%g): %v", s.Name(), x, a, err)
			return false
		}
		return res.Converged && res.WithinTolerance
	}

	properties.Property("exp matches math.Exp", prop.ForAll(
		func(x float64) bool { return within(Exp{}, x, 0) },
		gen.Float64Range(-10, 10),
	))
	properties.Property("geometric matches 1/(1-x)", prop.ForAll(
		func(x float64) bool { return within(Geometric{}, x, 0) },
		gen.Float64Range(-0.95, 0.95),
	))
	properties.Property("sin^2 + cos^2 = 1", prop.ForAll(
		func(x float64) bool {
			p := DefaultParams()
			p.X = x
			s, err1 := ev.Evaluate(context.Background(), Sin{}, p, nil, 0)
			c, err2 := ev.Evaluate(context.Background(), Cos{}, p, nil, 0)
			if err1 != nil || err2 != nil {
				return false
			}
			return math.Abs(s.Sum*s.Sum+c.Sum*c.Sum-1) < 1e-10
		},
		gen.Float64Range(-6, 6),
	))
	properties.Property("binomial matches (1-x)^(-a)", prop.ForAll(
		func(x, a float64) bool { return within(Binomial{}, x, a) },
		gen.Float64Range(-0.8, 0.8), gen.Float64Range(-3, 3),
	))

	properties.TestingRun(t)
}
