package seq

// TruncateCursor stops an inner cursor at the first element satisfying a
// predicate.
type TruncateCursor[T any] struct {
	stop  func(T) bool
	inner Cursor[T]
}

// Truncate returns a cursor over inner that reports exhaustion once stop
// holds for the current element. The predicate is evaluated on each
// Exhausted call; nothing is skipped.
func Truncate[T any](stop func(T) bool, inner Cursor[T]) *TruncateCursor[T] {
	return &TruncateCursor[T]{stop: stop, inner: inner}
}

// Null stops inner at its first zero value.
func Null[T comparable](inner Cursor[T]) *TruncateCursor[T] {
	var zero T
	return Truncate(func(v T) bool { return v == zero }, inner)
}

// Epsilon stops inner once an element is no larger in magnitude than the
// machine epsilon of T.
func Epsilon[T Number](inner Cursor[T]) *TruncateCursor[T] {
	return EpsilonTol(inner, MachineEpsilon[T]())
}

// EpsilonTol stops inner once an element satisfies |x| <= tol.
func EpsilonTol[T Number](inner Cursor[T], tol T) *TruncateCursor[T] {
	return Truncate(func(v T) bool {
		if v < 0 {
			v = -v
		}
		return v <= tol
	}, inner)
}

// MachineEpsilon returns the gap between 1 and the next representable value
// of T. It is zero for integer types.
func MachineEpsilon[T Number]() T {
	one := T(1)
	if one/2 == 0 {
		return 0
	}
	eps := one
	for one+eps/2 != one {
		eps /= 2
	}
	return eps
}

func (c *TruncateCursor[T]) Exhausted() bool {
	return c.inner.Exhausted() || c.stop(c.inner.Current())
}

func (c *TruncateCursor[T]) Current() T { return c.inner.Current() }

// Advance stays put once the stop element is reached, so the cursor never
// moves past it.
func (c *TruncateCursor[T]) Advance() {
	if c.Exhausted() {
		return
	}
	c.inner.Advance()
}

func (c *TruncateCursor[T]) Clone() Cursor[T] {
	return &TruncateCursor[T]{stop: c.stop, inner: c.inner.Clone()}
}
