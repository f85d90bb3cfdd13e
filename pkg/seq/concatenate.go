package seq

// ConcatCursor yields every element of a, then every element of b.
type ConcatCursor[T any] struct {
	a, b Cursor[T]
}

// Concatenate joins two cursors end to end. It never peeks ahead: b is not
// touched until a is exhausted.
func Concatenate[T any](a, b Cursor[T]) *ConcatCursor[T] {
	return &ConcatCursor[T]{a: a, b: b}
}

// Extrapolate yields the elements of finite and then repeats tail forever.
func Extrapolate[T any](finite Cursor[T], tail T) *ConcatCursor[T] {
	return Concatenate(finite, Cursor[T](Constant(tail)))
}

func (c *ConcatCursor[T]) Exhausted() bool {
	return c.a.Exhausted() && c.b.Exhausted()
}

func (c *ConcatCursor[T]) Current() T {
	if !c.a.Exhausted() {
		return c.a.Current()
	}
	return c.b.Current()
}

func (c *ConcatCursor[T]) Advance() {
	if !c.a.Exhausted() {
		c.a.Advance()
		return
	}
	c.b.Advance()
}

func (c *ConcatCursor[T]) Clone() Cursor[T] {
	return &ConcatCursor[T]{a: c.a.Clone(), b: c.b.Clone()}
}
