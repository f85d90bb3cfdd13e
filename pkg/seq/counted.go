package seq

// CountedCursor caps an inner cursor at n elements.
type CountedCursor[T any] struct {
	n     int
	inner Cursor[T]
}

// Counted returns a cursor over at most n elements of inner, even when inner
// would go on. It also stops when inner runs out first.
func Counted[T any](n int, inner Cursor[T]) *CountedCursor[T] {
	if n < 0 {
		n = 0
	}
	return &CountedCursor[T]{n: n, inner: inner}
}

func (c *CountedCursor[T]) Exhausted() bool { return c.n == 0 || c.inner.Exhausted() }
func (c *CountedCursor[T]) Current() T      { return c.inner.Current() }

// Remaining returns the count still allowed, or fewer when the inner cursor
// is bounded and shorter. Over an unbounded inner it is only an upper bound,
// which drops to zero once the inner cursor runs out.
func (c *CountedCursor[T]) Remaining() int {
	if c.inner.Exhausted() {
		return 0
	}
	if b, ok := c.inner.(Bounded[T]); ok {
		return min(c.n, b.Remaining())
	}
	return c.n
}

func (c *CountedCursor[T]) Advance() {
	if c.Exhausted() {
		return
	}
	c.n--
	c.inner.Advance()
}

// Retreat steps back one element. The inner cursor must be Bidirectional.
func (c *CountedCursor[T]) Retreat() {
	retreat(c.inner, "Counted")
	c.n++
}

func (c *CountedCursor[T]) Clone() Cursor[T] {
	return &CountedCursor[T]{n: c.n, inner: c.inner.Clone()}
}
