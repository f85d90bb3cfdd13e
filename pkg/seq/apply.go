package seq

// ApplyCursor maps every element of an inner cursor through f.
type ApplyCursor[T, U any] struct {
	f     func(T) U
	inner Cursor[T]
}

// Apply returns a cursor yielding f(x) for each element x of inner. f is
// called on every Current, so it should be cheap and free of side effects.
func Apply[T, U any](f func(T) U, inner Cursor[T]) *ApplyCursor[T, U] {
	return &ApplyCursor[T, U]{f: f, inner: inner}
}

func (c *ApplyCursor[T, U]) Exhausted() bool { return c.inner.Exhausted() }
func (c *ApplyCursor[T, U]) Current() U      { return c.f(c.inner.Current()) }
func (c *ApplyCursor[T, U]) Advance()        { c.inner.Advance() }

func (c *ApplyCursor[T, U]) Retreat() { retreat(c.inner, "Apply") }

func (c *ApplyCursor[T, U]) Clone() Cursor[U] {
	return &ApplyCursor[T, U]{f: c.f, inner: c.inner.Clone()}
}
