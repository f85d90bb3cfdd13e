package seq

// FilterCursor yields only the elements of inner that satisfy a predicate.
type FilterCursor[T any] struct {
	pred  func(T) bool
	inner Cursor[T]
}

// Filter returns a cursor over the elements of inner for which pred is true.
// Over an infinite inner with no further matches, Advance never returns.
func Filter[T any](pred func(T) bool, inner Cursor[T]) *FilterCursor[T] {
	c := &FilterCursor[T]{pred: pred, inner: inner}
	c.skip()
	return c
}

func (c *FilterCursor[T]) skip() {
	for !c.inner.Exhausted() && !c.pred(c.inner.Current()) {
		c.inner.Advance()
	}
}

func (c *FilterCursor[T]) Exhausted() bool { return c.inner.Exhausted() }
func (c *FilterCursor[T]) Current() T      { return c.inner.Current() }

func (c *FilterCursor[T]) Advance() {
	c.inner.Advance()
	c.skip()
}

func (c *FilterCursor[T]) Clone() Cursor[T] {
	return &FilterCursor[T]{pred: c.pred, inner: c.inner.Clone()}
}
