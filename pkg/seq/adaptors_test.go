package seq

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func isOdd(v int) bool { return v%2 != 0 }

func TestArray(t *testing.T) {
	t.Parallel()

	t.Run("RemainingTracksAdvance", func(t *testing.T) {
		t.Parallel()
		a := Array([]int{1, 2, 3})
		for want := 3; want >= 0; want-- {
			if got := a.Remaining(); got != want {
				t.Fatalf("Remaining() = %d, want %d", got, want)
			}
			if a.Exhausted() != (want == 0) {
				t.Fatalf("Exhausted() = %v with %d remaining", a.Exhausted(), want)
			}
			a.Advance()
		}
		if got := a.Remaining(); got != 0 {
			t.Fatalf("Remaining() after extra Advance = %d, want 0", got)
		}
	})

	t.Run("ArrayN", func(t *testing.T) {
		t.Parallel()
		got := Collect[int](ArrayN([]int{1, 2, 3, 4}, 2))
		if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
			t.Errorf("ArrayN mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("RetreatAndSeek", func(t *testing.T) {
		t.Parallel()
		a := Array([]int{10, 20, 30, 40})
		a.Seek(3)
		if got := a.Current(); got != 40 {
			t.Fatalf("after Seek(3) Current() = %d, want 40", got)
		}
		a.Retreat()
		if got, rem := a.Current(), a.Remaining(); got != 30 || rem != 2 {
			t.Fatalf("after Retreat Current()=%d Remaining()=%d, want 30 and 2", got, rem)
		}
		a.Seek(-2)
		if got, rem := a.Current(), a.Remaining(); got != 10 || rem != 4 {
			t.Fatalf("after Seek(-2) Current()=%d Remaining()=%d, want 10 and 4", got, rem)
		}
	})

	t.Run("RetreatBeforeStartPanics", func(t *testing.T) {
		t.Parallel()
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		Array([]int{1}).Retreat()
	})

	t.Run("Compare", func(t *testing.T) {
		t.Parallel()
		s := []int{1, 2, 3}
		a, b := Array(s), Array(s)
		if a.Compare(b) != 0 {
			t.Fatal("cursors at the same position compare unequal")
		}
		b.Advance()
		if a.Compare(b) >= 0 || b.Compare(a) <= 0 {
			t.Fatal("Compare does not order by position")
		}
		if ArrayN(s, 1).Compare(Array(s)) >= 0 {
			t.Fatal("Compare does not order by remaining length")
		}
	})

	t.Run("AliasesStorage", func(t *testing.T) {
		t.Parallel()
		s := []int{1, 2, 3}
		a := Array(s)
		a.Set(9)
		if s[0] != 9 {
			t.Errorf("Set did not write through: s[0] = %d", s[0])
		}
		c := ArrayCopy(s)
		c.Set(0)
		if s[0] != 9 {
			t.Errorf("ArrayCopy aliases the input: s[0] = %d", s[0])
		}
	})
}

func TestCounted(t *testing.T) {
	t.Parallel()
	c := Counted(3, Cursor[int](Counter(5)))
	if diff := cmp.Diff([]int{5, 6, 7}, Collect[int](c)); diff != "" {
		t.Errorf("Counted mismatch (-want +got):\n%s", diff)
	}

	t.Run("Retreat", func(t *testing.T) {
		t.Parallel()
		c := Counted(2, Cursor[int](Array([]int{1, 2, 3})))
		c.Advance()
		c.Retreat()
		if got, rem := c.Current(), c.Remaining(); got != 1 || rem != 2 {
			t.Fatalf("after Retreat Current()=%d Remaining()=%d, want 1 and 2", got, rem)
		}
	})

	t.Run("RetreatNeedsBidirectionalInner", func(t *testing.T) {
		t.Parallel()
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		Counted(2, Cursor[int](Counter(0))).Retreat()
	})

	t.Run("RemainingOverShorterFilter", func(t *testing.T) {
		t.Parallel()
		c := Counted(5, Cursor[int](Filter(isOdd, Cursor[int](Array([]int{1, 2, 3})))))
		if got, n := c.Remaining(), Length(c.Clone()); n != 2 || got < n {
			t.Fatalf("Remaining() = %d with %d elements left, want an upper bound", got, n)
		}
		c.Advance()
		c.Advance()
		if !c.Exhausted() {
			t.Fatal("not exhausted after the two odd elements")
		}
		if got := c.Remaining(); got != 0 {
			t.Errorf("Remaining() = %d once exhausted, want 0", got)
		}
	})
}

func TestRange(t *testing.T) {
	t.Parallel()
	s := Slice[string]{"a", "b", "c", "d"}

	tests := []struct {
		name string
		c    *RangeCursor[string]
		want []string
	}{
		{name: "Whole", c: MakeRange[string](s), want: []string{"a", "b", "c", "d"}},
		{name: "Sub", c: Range[string](s, 1, 3), want: []string{"b", "c"}},
		{name: "Empty", c: Range[string](s, 2, 2), want: []string{}},
		{name: "Reverse", c: MakeReverse[string](s), want: []string{"d", "c", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.c.Remaining(); got != len(tt.want) {
				t.Errorf("Remaining() = %d, want %d", got, len(tt.want))
			}
			got := Collect[string](tt.c)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConcatenate(t *testing.T) {
	t.Parallel()
	want := []int{1, 2, 3, 4}
	tests := []struct {
		name string
		a, b []int
	}{
		{name: "Split", a: []int{1, 2}, b: []int{3, 4}},
		{name: "EmptyLeft", a: nil, b: want},
		{name: "EmptyRight", a: want, b: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := Concatenate[int](Array(tt.a), Array(tt.b))
			if !Equal[int](c, Array(want)) {
				t.Errorf("Concatenate(%v, %v) != %v", tt.a, tt.b, want)
			}
		})
	}
}

func TestExtrapolate(t *testing.T) {
	t.Parallel()
	got := Collect[int](Take[int](6, Extrapolate[int](Array([]int{1, 2}), 3)))
	if diff := cmp.Diff([]int{1, 2, 3, 3, 3, 3}, got); diff != "" {
		t.Errorf("Extrapolate mismatch (-want +got):\n%s", diff)
	}
}

func TestBinOp(t *testing.T) {
	t.Parallel()
	a := []int{6, 8, 10}
	b := []int{3, 2, 5, 99}

	tests := []struct {
		name string
		c    Cursor[int]
		want []int
	}{
		{name: "Add", c: Add[int](Array(a), Array(b)), want: []int{9, 10, 15}},
		{name: "Sub", c: Sub[int](Array(a), Array(b)), want: []int{3, 6, 5}},
		{name: "Mul", c: Mul[int](Array(a), Array(b)), want: []int{18, 16, 50}},
		{name: "Div", c: Div[int](Array(a), Array(b)), want: []int{2, 4, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, Collect(tt.c)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("MixedTypes", func(t *testing.T) {
		t.Parallel()
		c := BinOp(func(s string, n int) string { return s + string(rune('0'+n)) },
			Cursor[string](Constant("v")), Cursor[int](Array([]int{1, 2})))
		if diff := cmp.Diff([]string{"v1", "v2"}, Collect[string](c)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("AdvanceWhenExhausted", func(t *testing.T) {
		t.Parallel()
		long := Array([]int{10, 20, 30})
		c := Add[int](Array([]int{1}), long)
		for range 3 {
			c.Advance()
		}
		if !c.Exhausted() {
			t.Fatal("Add over a one-element operand is not exhausted")
		}
		if got := long.Remaining(); got != 2 {
			t.Errorf("longer operand has %d remaining, want 2", got)
		}
	})
}

func TestApply(t *testing.T) {
	t.Parallel()
	square := func(v int) int { return v * v }
	out := make([]int, 3)
	Copy[int](Apply(square, Cursor[int](Array([]int{1, 2, 3}))), Array(out))
	if diff := cmp.Diff([]int{1, 4, 9}, out); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	t.Run("OddCounter", func(t *testing.T) {
		t.Parallel()
		got := Collect[int](Take[int](4, Filter(isOdd, Cursor[int](Counter(0)))))
		if diff := cmp.Diff([]int{1, 3, 5, 7}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("TakeTwo", func(t *testing.T) {
		t.Parallel()
		c := Take[int](2, Filter(isOdd, Cursor[int](Counter(0))))
		if got := c.Current(); got != 1 {
			t.Fatalf("first = %d, want 1", got)
		}
		c.Advance()
		if got := c.Current(); got != 3 {
			t.Fatalf("second = %d, want 3", got)
		}
		c.Advance()
		if !c.Exhausted() {
			t.Fatal("not exhausted after two elements")
		}
	})

	t.Run("EmptySource", func(t *testing.T) {
		t.Parallel()
		c := Filter(isOdd, Cursor[int](Array([]int(nil))))
		if !c.Exhausted() {
			t.Fatal("filter over empty source is not exhausted")
		}
		c.Advance()
		if !c.Exhausted() {
			t.Fatal("advance revived an exhausted filter")
		}
	})

	t.Run("NoMatches", func(t *testing.T) {
		t.Parallel()
		if n := Length[int](Filter(isOdd, Cursor[int](Array([]int{2, 4, 6})))); n != 0 {
			t.Fatalf("Length = %d, want 0", n)
		}
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	t.Run("Predicate", func(t *testing.T) {
		t.Parallel()
		c := Truncate(func(v int) bool { return v > 3 }, Cursor[int](Counter(1)))
		if diff := cmp.Diff([]int{1, 2, 3}, Collect[int](c)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Null", func(t *testing.T) {
		t.Parallel()
		got := string(Collect[byte](Null(Cursor[byte](Array([]byte("abc\x00def"))))))
		if got != "abc" {
			t.Errorf("Null = %q, want %q", got, "abc")
		}
	})

	t.Run("AdvancePastStop", func(t *testing.T) {
		t.Parallel()
		c := Null(Cursor[byte](Array([]byte("ab\x00cd"))))
		var seen []byte
		for range 6 {
			if !c.Exhausted() {
				seen = append(seen, c.Current())
			}
			c.Advance()
		}
		if string(seen) != "ab" {
			t.Errorf("read %q, want %q", seen, "ab")
		}
		if !c.Exhausted() || c.Current() != 0 {
			t.Errorf("Exhausted() = %v Current() = %q after advancing past the terminator", c.Exhausted(), c.Current())
		}
	})

	t.Run("NullWithoutTerminator", func(t *testing.T) {
		t.Parallel()
		if n := Length[byte](Null(Cursor[byte](Array([]byte("abc"))))); n != 3 {
			t.Errorf("Length = %d, want 3", n)
		}
	})

	t.Run("Epsilon", func(t *testing.T) {
		t.Parallel()
		// 2^-k reaches machine epsilon after 52 halvings.
		n := Length[float64](Epsilon(Cursor[float64](Power(0.5))))
		if n != 52 {
			t.Errorf("Length = %d, want 52", n)
		}
	})

	t.Run("EpsilonTol", func(t *testing.T) {
		t.Parallel()
		c := EpsilonTol(Cursor[float64](Power(-0.1)), 5e-3)
		if diff := cmp.Diff([]float64{1, -0.1, 0.1 * 0.1}, Collect[float64](c)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestMachineEpsilon(t *testing.T) {
	t.Parallel()
	if got := MachineEpsilon[float64](); got != 0x1p-52 {
		t.Errorf("float64 = %g, want 2^-52", got)
	}
	if got := MachineEpsilon[float32](); got != 0x1p-23 {
		t.Errorf("float32 = %g, want 2^-23", got)
	}
	if got := MachineEpsilon[int](); got != 0 {
		t.Errorf("int = %d, want 0", got)
	}
}
