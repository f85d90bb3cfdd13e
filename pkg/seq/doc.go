// Package seq provides composable pull-based sequence cursors.
//
// A cursor is a position within a series of elements. It can be tested for
// exhaustion, dereferenced and advanced:
//
//	for c := seq.Take(5, seq.Factorial[int]()); !c.Exhausted(); c.Advance() {
//	    fmt.Println(c.Current()) // 1 1 2 6 24
//	}
//
// Generators (Constant, Counter, Power, Pochhammer) never run out. Adaptors
// wrap one or two inner cursors and transform what they read, when they stop
// and how they move: Counted, Filter, Apply, Truncate, Concatenate, BinOp and
// Memoize. Consuming algorithms (Copy, Equal, Length, Sum, Drop) only rely on
// the Cursor interface.
//
// Cursors are not safe for concurrent use. Reading or retreating outside a
// cursor's window is a programming error and panics; advancing an exhausted
// cursor does nothing.
//
// Constructors take ownership of the cursors passed to them. Keep a Clone if
// the original position is still needed.
package seq
