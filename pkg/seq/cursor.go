package seq

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Number is the set of element types the arithmetic cursors work with.
type Number interface {
	constraints.Integer | constraints.Float
}

// Cursor is a position within a sequence of T.
type Cursor[T any] interface {
	// Exhausted reports whether there is no current element.
	Exhausted() bool
	// Current returns the element at the current position. It must not be
	// called on an exhausted cursor and never moves the cursor.
	Current() T
	// Advance moves to the next element. It is a no-op on an exhausted cursor.
	Advance()
	// Clone returns an independent cursor at the same position.
	Clone() Cursor[T]
}

// Bounded is a cursor that knows how many elements are left.
type Bounded[T any] interface {
	Cursor[T]
	// Remaining returns the number of elements not yet consumed.
	Remaining() int
}

// Bidirectional is a cursor that can step back to the previous element.
type Bidirectional[T any] interface {
	Cursor[T]
	Retreat()
}

// Seeker is implemented by cursors that can move by an arbitrary offset.
// Negative offsets move backward.
type Seeker interface {
	Seek(offset int)
}

// Output is the write side of Copy.
type Output[T any] interface {
	Set(v T)
	Advance()
}

// retreat steps c back, panicking when c cannot move backward.
func retreat[T any](c Cursor[T], who string) {
	b, ok := c.(Bidirectional[T])
	if !ok {
		panic("seq: " + who + ": inner cursor does not support Retreat")
	}
	b.Retreat()
}

// All returns an iterator over the elements of a clone of c, so that c
// itself is left where it is.
func All[T any](c Cursor[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := c.Clone(); !it.Exhausted(); it.Advance() {
			if !yield(it.Current()) {
				return
			}
		}
	}
}

// Collect drains c into a slice. An empty cursor yields an empty, non-nil
// slice.
func Collect[T any](c Cursor[T]) []T {
	out := []T{}
	if b, ok := c.(Bounded[T]); ok {
		out = make([]T, 0, b.Remaining())
	}
	for ; !c.Exhausted(); c.Advance() {
		out = append(out, c.Current())
	}
	return out
}
