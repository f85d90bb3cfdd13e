package seq

// BinOpCursor combines two cursors element by element.
type BinOpCursor[A, B, R any] struct {
	op func(A, B) R
	a  Cursor[A]
	b  Cursor[B]
}

// BinOp returns a cursor yielding op(a[i], b[i]). It is exhausted as soon as
// either operand is.
func BinOp[A, B, R any](op func(A, B) R, a Cursor[A], b Cursor[B]) *BinOpCursor[A, B, R] {
	return &BinOpCursor[A, B, R]{op: op, a: a, b: b}
}

func (c *BinOpCursor[A, B, R]) Exhausted() bool {
	return c.a.Exhausted() || c.b.Exhausted()
}

func (c *BinOpCursor[A, B, R]) Current() R {
	return c.op(c.a.Current(), c.b.Current())
}

// Advance is a no-op once either operand is exhausted; the longer one keeps
// its position.
func (c *BinOpCursor[A, B, R]) Advance() {
	if c.Exhausted() {
		return
	}
	c.a.Advance()
	c.b.Advance()
}

func (c *BinOpCursor[A, B, R]) Clone() Cursor[R] {
	return &BinOpCursor[A, B, R]{op: c.op, a: c.a.Clone(), b: c.b.Clone()}
}

// Add returns the elementwise sum of a and b.
func Add[T Number](a, b Cursor[T]) *BinOpCursor[T, T, T] {
	return BinOp(func(x, y T) T { return x + y }, a, b)
}

// Sub returns the elementwise difference of a and b.
func Sub[T Number](a, b Cursor[T]) *BinOpCursor[T, T, T] {
	return BinOp(func(x, y T) T { return x - y }, a, b)
}

// Mul returns the elementwise product of a and b.
func Mul[T Number](a, b Cursor[T]) *BinOpCursor[T, T, T] {
	return BinOp(func(x, y T) T { return x * y }, a, b)
}

// Div returns the elementwise quotient of a and b. Integer division by a zero
// element panics like the / operator does.
func Div[T Number](a, b Cursor[T]) *BinOpCursor[T, T, T] {
	return BinOp(func(x, y T) T { return x / y }, a, b)
}
