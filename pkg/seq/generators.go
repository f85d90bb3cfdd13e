package seq

// ConstantCursor repeats the same value forever.
type ConstantCursor[T any] struct {
	t T
}

// Constant returns a cursor that yields t forever.
func Constant[T any](t T) *ConstantCursor[T] {
	return &ConstantCursor[T]{t: t}
}

func (c *ConstantCursor[T]) Exhausted() bool { return false }
func (c *ConstantCursor[T]) Current() T      { return c.t }
func (c *ConstantCursor[T]) Advance()        {}

func (c *ConstantCursor[T]) Clone() Cursor[T] {
	cp := *c
	return &cp
}

// CounterCursor yields t0, t0+1, t0+2, ...
// Use Add(Constant(a), Mul(Constant(b), Counter(0))) for an arithmetic series.
type CounterCursor[T Number] struct {
	t T
}

// Counter returns a cursor counting up from t0.
func Counter[T Number](t0 T) *CounterCursor[T] {
	return &CounterCursor[T]{t: t0}
}

func (c *CounterCursor[T]) Exhausted() bool { return false }
func (c *CounterCursor[T]) Current() T      { return c.t }
func (c *CounterCursor[T]) Advance()        { c.t++ }

// Set overwrites the held value, restarting the count from v.
func (c *CounterCursor[T]) Set(v T) { c.t = v }

func (c *CounterCursor[T]) Clone() Cursor[T] {
	cp := *c
	return &cp
}

// PowerCursor yields 1, base, base², base³, ...
type PowerCursor[T Number] struct {
	base, tn T
}

// Power returns the cursor of successive powers of base.
func Power[T Number](base T) *PowerCursor[T] {
	return &PowerCursor[T]{base: base, tn: 1}
}

func (c *PowerCursor[T]) Exhausted() bool { return false }
func (c *PowerCursor[T]) Current() T      { return c.tn }
func (c *PowerCursor[T]) Advance()        { c.tn *= c.base }

func (c *PowerCursor[T]) Clone() Cursor[T] {
	cp := *c
	return &cp
}

// PochhammerCursor yields the rising (n > 0) or falling (n < 0) Pochhammer
// products x, x(x+n), x(x+n)(x+2n), ... where the step moves one further
// away from zero at every term.
//
// A seed of exactly zero is special: the cursor starts at 1 and its first
// Advance resets x to 1, which makes Pochhammer(0, 1) the factorials.
type PochhammerCursor[T Number] struct {
	x, xn T
	n     int
}

// Pochhammer returns the Pochhammer cursor seeded with x and step n.
func Pochhammer[T Number](x T, n int) *PochhammerCursor[T] {
	return &PochhammerCursor[T]{x: x, xn: x, n: n}
}

// Factorial returns the cursor 0!, 1!, 2!, 3!, ...
func Factorial[T Number]() *PochhammerCursor[T] {
	return Pochhammer[T](0, 1)
}

func (c *PochhammerCursor[T]) Exhausted() bool { return false }

func (c *PochhammerCursor[T]) Current() T {
	if c.xn == 0 {
		return 1
	}
	return c.xn
}

func (c *PochhammerCursor[T]) Advance() {
	if c.x == 0 {
		c.x, c.xn = 1, 1
		return
	}
	c.xn *= c.x + T(c.n)
	if c.n > 0 {
		c.n++
	} else {
		c.n--
	}
}

func (c *PochhammerCursor[T]) Clone() Cursor[T] {
	cp := *c
	return &cp
}
