package seq

// Copy writes every element of src to dst, advancing both, and returns dst
// at its final position. dst must have room for all of src.
func Copy[T any, O Output[T]](src Cursor[T], dst O) O {
	for ; !src.Exhausted(); src.Advance() {
		dst.Set(src.Current())
		dst.Advance()
	}
	return dst
}

// Equal reports whether a and b yield the same elements and run out together.
// Both cursors are consumed.
func Equal[T comparable](a, b Cursor[T]) bool {
	for !a.Exhausted() && !b.Exhausted() {
		if a.Current() != b.Current() {
			return false
		}
		a.Advance()
		b.Advance()
	}
	return a.Exhausted() && b.Exhausted()
}

// Length consumes c and returns the number of elements it had. It does not
// return on a generator.
func Length[T any](c Cursor[T]) int {
	n := 0
	for ; !c.Exhausted(); c.Advance() {
		n++
	}
	return n
}

// Sum adds up the elements of c starting from zero.
func Sum[T Number](c Cursor[T]) T {
	return SumFrom(c, 0)
}

// SumFrom adds up the elements of c starting from initial.
func SumFrom[T Number](c Cursor[T], initial T) T {
	s := initial
	for ; !c.Exhausted(); c.Advance() {
		s += c.Current()
	}
	return s
}

// Take limits c to its first n elements.
func Take[T any](n int, c Cursor[T]) *CountedCursor[T] {
	return Counted(n, c)
}

// Drop returns a clone of c advanced past its first n elements, or to
// exhaustion if c is shorter. c is left untouched.
func Drop[T any](n int, c Cursor[T]) Cursor[T] {
	d := c.Clone()
	for ; n > 0 && !d.Exhausted(); n-- {
		d.Advance()
	}
	return d
}
