package series

import "github.com/agbru/seqcalc/pkg/seq"

// FibonacciCursor yields the Fibonacci numbers 0, 1, 1, 2, 3, 5, ...
type FibonacciCursor[T seq.Number] struct {
	a, b T
}

// Fibonacci returns a generator of the Fibonacci numbers.
func Fibonacci[T seq.Number]() *FibonacciCursor[T] {
	return &FibonacciCursor[T]{a: 0, b: 1}
}

func (c *FibonacciCursor[T]) Exhausted() bool { return false }
func (c *FibonacciCursor[T]) Current() T      { return c.a }
func (c *FibonacciCursor[T]) Advance()        { c.a, c.b = c.b, c.a+c.b }

func (c *FibonacciCursor[T]) Clone() seq.Cursor[T] {
	cp := *c
	return &cp
}
