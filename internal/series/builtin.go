package series

import (
	"math"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/pkg/seq"
)

// ReciprocalFibonacci is the sum of 1/F(n) for n >= 1.
const ReciprocalFibonacci = 3.3598856662431775531720113029189271796889

// exponentials returns the cursor x^k / k!.
func exponentials(x float64) seq.Cursor[float64] {
	return seq.Div[float64](seq.Power(x), seq.Factorial[float64]())
}

// cycle returns the cursor that repeats pattern forever, indexed by a counter.
func cycle(pattern ...float64) seq.Cursor[float64] {
	return seq.Apply(func(k int) float64 { return pattern[k%len(pattern)] }, seq.Cursor[int](seq.Counter(0)))
}

func nonZero(v float64) bool { return v != 0 }

func unitDisk(name string, x float64) error {
	if math.Abs(x) >= 1 || math.IsNaN(x) {
		return apperrors.DomainError{Series: name, Param: "x", Value: x, Reason: "|x| < 1"}
	}
	return nil
}

// Exp is the Taylor series of e^x.
type Exp struct{}

func (Exp) Name() string        { return "exp" }
func (Exp) Description() string { return "e^x = sum x^k/k!" }

func (Exp) Terms(p Params) (seq.Cursor[float64], error) {
	return exponentials(p.X), nil
}

func (Exp) Reference(p Params) (float64, bool) { return math.Exp(p.X), true }

// Geometric is the series of powers of x.
type Geometric struct{}

func (Geometric) Name() string        { return "geometric" }
func (Geometric) Description() string { return "1/(1-x) = sum x^k, |x| < 1" }

func (g Geometric) Terms(p Params) (seq.Cursor[float64], error) {
	if err := unitDisk(g.Name(), p.X); err != nil {
		return nil, err
	}
	return seq.Power(p.X), nil
}

func (Geometric) Reference(p Params) (float64, bool) { return 1 / (1 - p.X), true }

// Log1p is the Mercator series of ln(1+x).
type Log1p struct{}

func (Log1p) Name() string        { return "log1p" }
func (Log1p) Description() string { return "ln(1+x) = sum (-1)^(k+1) x^k/k, -1 < x <= 1" }

func (l Log1p) Terms(p Params) (seq.Cursor[float64], error) {
	if p.X <= -1 || p.X > 1 || math.IsNaN(p.X) {
		return nil, apperrors.DomainError{Series: l.Name(), Param: "x", Value: p.X, Reason: "-1 < x <= 1"}
	}
	// -(-x)^k / k for k >= 1
	powers := seq.Drop[float64](1, seq.Power(-p.X))
	quotients := seq.Div(powers, seq.Cursor[float64](seq.Counter(1.0)))
	return seq.Apply(func(v float64) float64 { return -v }, seq.Cursor[float64](quotients)), nil
}

func (Log1p) Reference(p Params) (float64, bool) { return math.Log1p(p.X), true }

// trig builds the sine or cosine series: x^k/k! weighted by a period four
// sign pattern, with the zero terms filtered out. The cursor is bounded
// before filtering so that a pattern of zeros cannot stall the filter.
func trig(p Params, pattern ...float64) seq.Cursor[float64] {
	weighted := seq.Mul(cycle(pattern...), exponentials(p.X))
	bound := 2*p.MaxTerms + 2
	return seq.Filter(nonZero, seq.Cursor[float64](seq.Take[float64](bound, weighted)))
}

// Sin is the Taylor series of sin(x).
type Sin struct{}

func (Sin) Name() string        { return "sin" }
func (Sin) Description() string { return "sin(x) = sum (-1)^k x^(2k+1)/(2k+1)!" }

func (Sin) Terms(p Params) (seq.Cursor[float64], error) {
	return trig(p, 0, 1, 0, -1), nil
}

func (Sin) Reference(p Params) (float64, bool) { return math.Sin(p.X), true }

// Cos is the Taylor series of cos(x).
type Cos struct{}

func (Cos) Name() string        { return "cos" }
func (Cos) Description() string { return "cos(x) = sum (-1)^k x^(2k)/(2k)!" }

func (Cos) Terms(p Params) (seq.Cursor[float64], error) {
	return trig(p, 1, 0, -1, 0), nil
}

func (Cos) Reference(p Params) (float64, bool) { return math.Cos(p.X), true }

// Binomial is the binomial series of (1-x)^(-a), built on rising
// Pochhammer products (a)_k x^k / k!.
type Binomial struct{}

func (Binomial) Name() string        { return "binomial" }
func (Binomial) Description() string { return "(1-x)^(-a) = sum (a)_k x^k/k!, |x| < 1" }

func (b Binomial) Terms(p Params) (seq.Cursor[float64], error) {
	var rising seq.Cursor[float64]
	if p.A <= 0 && p.A == math.Trunc(p.A) {
		// (a)_k vanishes for k > -a: a polynomial, valid for every x.
		finite := seq.Take[float64](int(-p.A), seq.Pochhammer(p.A, 1))
		rising = seq.Extrapolate[float64](finite, 0)
	} else {
		if err := unitDisk(b.Name(), p.X); err != nil {
			return nil, err
		}
		rising = seq.Pochhammer(p.A, 1)
	}
	coefficients := seq.Concatenate(seq.Cursor[float64](seq.Array([]float64{1})), rising)
	return seq.Mul[float64](coefficients, exponentials(p.X)), nil
}

func (Binomial) Reference(p Params) (float64, bool) { return math.Pow(1-p.X, -p.A), true }

// Zeta2 is the Basel series. It converges slowly, so it usually hits the
// term limit before its terms fall under the tolerance.
type Zeta2 struct{}

func (Zeta2) Name() string        { return "zeta2" }
func (Zeta2) Description() string { return "pi^2/6 = sum 1/k^2, k >= 1" }

func (Zeta2) Terms(Params) (seq.Cursor[float64], error) {
	return seq.Apply(func(k float64) float64 { return 1 / (k * k) }, seq.Cursor[float64](seq.Counter(1.0))), nil
}

func (Zeta2) Reference(Params) (float64, bool) { return math.Pi * math.Pi / 6, true }

// ReciprocalFib sums the reciprocals of the Fibonacci numbers.
type ReciprocalFib struct{}

func (ReciprocalFib) Name() string        { return "fibonacci" }
func (ReciprocalFib) Description() string { return "psi = sum 1/F(n), n >= 1" }

func (ReciprocalFib) Terms(Params) (seq.Cursor[float64], error) {
	fib := seq.Drop[float64](1, Fibonacci[float64]())
	return seq.Apply(func(f float64) float64 { return 1 / f }, fib), nil
}

func (ReciprocalFib) Reference(Params) (float64, bool) { return ReciprocalFibonacci, true }
