package seq

// Container is anything with indexed access to its elements.
type Container[T any] interface {
	Len() int
	At(i int) T
}

// Slice adapts a slice to Container.
type Slice[T any] []T

func (s Slice[T]) Len() int   { return len(s) }
func (s Slice[T]) At(i int) T { return s[i] }

// RangeCursor walks a container between two boundary markers. The begin
// marker moves toward end by step, which is -1 for reversed ranges.
type RangeCursor[T any] struct {
	c          Container[T]
	begin, end int
	step       int
}

// Range returns a cursor over c from marker begin up to, but excluding, end.
// When begin > end the range walks backward.
func Range[T any](c Container[T], begin, end int) *RangeCursor[T] {
	step := 1
	if begin > end {
		step = -1
	}
	return &RangeCursor[T]{c: c, begin: begin, end: end, step: step}
}

// MakeRange returns a cursor over every element of c.
func MakeRange[T any](c Container[T]) *RangeCursor[T] {
	return Range(c, 0, c.Len())
}

// MakeReverse returns a cursor over every element of c, last to first.
func MakeReverse[T any](c Container[T]) *RangeCursor[T] {
	return Range(c, c.Len()-1, -1)
}

func (r *RangeCursor[T]) Exhausted() bool { return r.begin == r.end }
func (r *RangeCursor[T]) Current() T      { return r.c.At(r.begin) }

func (r *RangeCursor[T]) Remaining() int {
	return (r.end - r.begin) * r.step
}

func (r *RangeCursor[T]) Advance() {
	if r.begin == r.end {
		return
	}
	r.begin += r.step
}

func (r *RangeCursor[T]) Retreat() { r.begin -= r.step }

func (r *RangeCursor[T]) Clone() Cursor[T] {
	cp := *r
	return &cp
}
