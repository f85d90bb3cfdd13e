package seq

import "cmp"

// ArrayCursor walks a window of n contiguous elements of a slice. It aliases
// the slice: writes through Set are visible to the caller and to every other
// cursor over the same storage.
type ArrayCursor[T any] struct {
	a   []T
	off int
	n   int
}

// Array returns a cursor over all of s.
func Array[T any](s []T) *ArrayCursor[T] {
	return &ArrayCursor[T]{a: s, n: len(s)}
}

// ArrayN returns a cursor over the first n elements of s. It panics if n is
// out of range.
func ArrayN[T any](s []T, n int) *ArrayCursor[T] {
	if n < 0 || n > len(s) {
		panic("seq: ArrayN: window larger than storage")
	}
	return &ArrayCursor[T]{a: s, n: n}
}

// ArrayCopy returns a cursor over a private copy of s.
func ArrayCopy[T any](s []T) *ArrayCursor[T] {
	return Array(append([]T(nil), s...))
}

func (c *ArrayCursor[T]) Exhausted() bool { return c.n == 0 }
func (c *ArrayCursor[T]) Current() T      { return c.a[c.off] }
func (c *ArrayCursor[T]) Remaining() int  { return c.n }

// Position returns the index of the current element in the backing slice.
func (c *ArrayCursor[T]) Position() int { return c.off }

// Set overwrites the current element in the backing storage.
func (c *ArrayCursor[T]) Set(v T) { c.a[c.off] = v }

func (c *ArrayCursor[T]) Advance() {
	if c.n == 0 {
		return
	}
	c.n--
	c.off++
}

// Retreat steps back one element, growing the window by one. Retreating
// before the start of the backing slice panics.
func (c *ArrayCursor[T]) Retreat() {
	if c.off == 0 {
		panic("seq: Array: retreat before start of storage")
	}
	c.n++
	c.off--
}

// Seek moves the cursor by m elements, shrinking the window when moving
// forward and growing it when moving backward.
func (c *ArrayCursor[T]) Seek(m int) {
	off, n := c.off+m, c.n-m
	if off < 0 || n < 0 || off+n > len(c.a) {
		panic("seq: Array: seek outside of storage")
	}
	c.off, c.n = off, n
}

func (c *ArrayCursor[T]) Clone() Cursor[T] {
	cp := *c
	return &cp
}

// Compare orders array cursors by position, then by remaining length. It is
// only meaningful for cursors over the same storage.
func (c *ArrayCursor[T]) Compare(o *ArrayCursor[T]) int {
	if r := cmp.Compare(c.off, o.off); r != 0 {
		return r
	}
	return cmp.Compare(c.n, o.n)
}
