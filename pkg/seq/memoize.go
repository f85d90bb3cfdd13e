package seq

// memo is the state shared by every handle of one Memoize call. The inner
// cursor always sits at index len(buf), so each inner element is read once.
type memo[T any] struct {
	buf   []T
	inner Cursor[T]
}

// MemoCursor replays a cached prefix of an inner cursor. Clones share the
// cache and the inner cursor, but each keeps its own position.
type MemoCursor[T any] struct {
	m   *memo[T]
	pos int
}

// Memoize wraps inner so that elements, once produced, can be re-traversed by
// any clone without pulling them from inner again. The cache is never
// trimmed: it grows to the farthest position any handle reached.
func Memoize[T any](inner Cursor[T]) *MemoCursor[T] {
	return &MemoCursor[T]{m: &memo[T]{inner: inner}}
}

func (c *MemoCursor[T]) replaying() bool { return c.pos < len(c.m.buf) }

func (c *MemoCursor[T]) Exhausted() bool {
	return !c.replaying() && c.m.inner.Exhausted()
}

// Current returns the element at the handle's position. At the live end it
// pulls the element from inner into the cache.
func (c *MemoCursor[T]) Current() T {
	if !c.replaying() {
		c.pull()
	}
	return c.m.buf[c.pos]
}

func (c *MemoCursor[T]) pull() {
	c.m.buf = append(c.m.buf, c.m.inner.Current())
	c.m.inner.Advance()
}

func (c *MemoCursor[T]) Advance() {
	if !c.replaying() {
		if c.m.inner.Exhausted() {
			return
		}
		c.pull()
	}
	c.pos++
}

// Retreat steps back one cached element. It panics at the first element.
func (c *MemoCursor[T]) Retreat() {
	if c.pos == 0 {
		panic("seq: Memoize: retreat before first element")
	}
	c.pos--
}

// Rewind moves the handle back to the first element.
func (c *MemoCursor[T]) Rewind() { c.pos = 0 }

// Position returns the number of elements this handle has advanced past.
func (c *MemoCursor[T]) Position() int { return c.pos }

// Buffered returns the number of cached elements.
func (c *MemoCursor[T]) Buffered() int { return len(c.m.buf) }

func (c *MemoCursor[T]) Clone() Cursor[T] {
	return &MemoCursor[T]{m: c.m, pos: c.pos}
}
