package seq

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestConstant(t *testing.T) {
	t.Parallel()
	c := Constant("x")
	for i := 0; i < 5; i++ {
		if c.Exhausted() {
			t.Fatal("constant reported exhaustion")
		}
		if got := c.Current(); got != "x" {
			t.Fatalf("Current() = %q, want %q", got, "x")
		}
		c.Advance()
	}
}

func TestCounter(t *testing.T) {
	t.Parallel()
	c := Counter(3)
	if diff := cmp.Diff([]int{3, 4, 5, 6}, Collect[int](Take[int](4, c))); diff != "" {
		t.Errorf("Counter(3) mismatch (-want +got):\n%s", diff)
	}

	t.Run("Set", func(t *testing.T) {
		t.Parallel()
		c := Counter(0)
		c.Advance()
		c.Set(10)
		if got := c.Current(); got != 10 {
			t.Fatalf("Current() after Set = %d, want 10", got)
		}
		c.Advance()
		if got := c.Current(); got != 11 {
			t.Fatalf("Current() after Set and Advance = %d, want 11", got)
		}
	})
}

func TestPower(t *testing.T) {
	t.Parallel()
	got := Collect[int](Take[int](6, Power(2)))
	if diff := cmp.Diff([]int{1, 2, 4, 8, 16, 32}, got); diff != "" {
		t.Errorf("Power(2) mismatch (-want +got):\n%s", diff)
	}
}

func TestPochhammer(t *testing.T) {
	t.Parallel()
	approx := cmpopts.EquateApprox(0, 1e-12)

	tests := []struct {
		name string
		x    float64
		n    int
		want []float64
	}{
		{
			name: "Rising",
			x:    1.23,
			n:    1,
			want: []float64{1.23, 1.23 * 2.23, 1.23 * 2.23 * 3.23, 1.23 * 2.23 * 3.23 * 4.23},
		},
		{
			name: "Falling",
			x:    1.23,
			n:    -1,
			want: []float64{1.23, 1.23 * 0.23, 1.23 * 0.23 * -0.77, 1.23 * 0.23 * -0.77 * -1.77},
		},
		{
			name: "ZeroSeed",
			x:    0,
			n:    1,
			want: []float64{1, 1, 2, 6, 24},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Collect[float64](Take[float64](len(tt.want), Pochhammer(tt.x, tt.n)))
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Pochhammer(%v, %d) mismatch (-want +got):\n%s", tt.x, tt.n, diff)
			}
		})
	}
}

func TestFactorial(t *testing.T) {
	t.Parallel()
	got := Collect[uint64](Take[uint64](8, Factorial[uint64]()))
	want := []uint64{1, 1, 2, 6, 24, 120, 720, 5040}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Factorial mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneratorsAreNeverExhausted(t *testing.T) {
	t.Parallel()
	cursors := map[string]Cursor[float64]{
		"Constant":   Constant(0.0),
		"Counter":    Counter(0.0),
		"Power":      Power(0.5),
		"Pochhammer": Pochhammer(2.0, -1),
		"Factorial":  Factorial[float64](),
	}
	for name, c := range cursors {
		for i := 0; i < 200; i++ {
			if c.Exhausted() {
				t.Fatalf("%s exhausted after %d advances", name, i)
			}
			if v := c.Current(); math.IsNaN(v) {
				t.Fatalf("%s produced NaN at %d", name, i)
			}
			c.Advance()
		}
	}
}

func TestGeneratorClone(t *testing.T) {
	t.Parallel()
	p := Power(3)
	p.Advance()
	q := p.Clone()
	p.Advance()
	p.Advance()
	if got := q.Current(); got != 3 {
		t.Errorf("clone moved with original: Current() = %d, want 3", got)
	}
	if got := p.Current(); got != 27 {
		t.Errorf("original Current() = %d, want 27", got)
	}
}
