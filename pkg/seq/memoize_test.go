package seq

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// countingCursor counts reads of its inner cursor.
type countingCursor struct {
	Cursor[int]
	reads *int
}

func (c countingCursor) Current() int {
	*c.reads++
	return c.Cursor.Current()
}

func (c countingCursor) Clone() Cursor[int] {
	return countingCursor{Cursor: c.Cursor.Clone(), reads: c.reads}
}

func TestMemoizeReplay(t *testing.T) {
	t.Parallel()
	reads := 0
	m := Memoize[int](countingCursor{Cursor: Counter(100), reads: &reads})
	start := m.Clone()

	const k = 5
	first := Collect[int](Take[int](k, m.Clone()))
	if reads != k {
		t.Fatalf("inner read %d times during first pass, want %d", reads, k)
	}

	second := Collect[int](Take[int](k, start))
	if reads != k {
		t.Errorf("replay read inner again: %d reads, want %d", reads, k)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("replay mismatch (-first +second):\n%s", diff)
	}
	if got := m.Buffered(); got != k {
		t.Errorf("Buffered() = %d, want %d", got, k)
	}
}

func TestMemoizeContinuesPastBuffer(t *testing.T) {
	t.Parallel()
	m := Memoize[int](Array([]int{1, 2, 3, 4}))
	a := m.Clone()
	a.Advance()
	a.Advance()

	// m replays 1, 2 from the cache, then pulls 3, 4 from inner.
	if diff := cmp.Diff([]int{1, 2, 3, 4}, Collect[int](m)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	// a sees 3, 4 through the cache that m filled.
	if diff := cmp.Diff([]int{3, 4}, Collect(a)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoizeRewindRetreat(t *testing.T) {
	t.Parallel()
	m := Memoize[int](Array([]int{7, 8, 9}))
	Length[int](m.Clone())

	m.Advance()
	m.Advance()
	m.Retreat()
	if got := m.Current(); got != 8 {
		t.Fatalf("after Retreat Current() = %d, want 8", got)
	}
	m.Rewind()
	if got, pos := m.Current(), m.Position(); got != 7 || pos != 0 {
		t.Fatalf("after Rewind Current()=%d Position()=%d, want 7 and 0", got, pos)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic retreating before the first element")
		}
	}()
	m.Retreat()
}

func TestMemoizeExhaustion(t *testing.T) {
	t.Parallel()
	m := Memoize[int](Array([]int{1}))
	if m.Exhausted() {
		t.Fatal("exhausted before any advance")
	}
	m.Advance()
	if !m.Exhausted() {
		t.Fatal("not exhausted after the only element")
	}
	m.Advance()
	if got := m.Buffered(); got != 1 {
		t.Fatalf("Advance on exhausted memoize grew the buffer to %d", got)
	}
	m.Rewind()
	if m.Exhausted() {
		t.Fatal("rewound handle reports exhaustion")
	}
}
