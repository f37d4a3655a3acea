// Package arena provides the session-scoped allocation pool that owns every
// AST node and decoded byte buffer produced by a parse. Objects are never
// freed individually; the whole pool is released as a unit when the caller
// is done with the tree.
package arena

// Arena retains every object allocated through New so the parse result
// forms a single ownership unit. Release drops all retained references at
// once, after which the tree must not be used.
type Arena struct {
	retained    []interface{}
	allocations uint64
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// New allocates a zero-valued T from the arena. Zero initialization means
// optional child slots start out absent.
func New[T any](a *Arena) *T {
	v := new(T)
	a.retained = append(a.retained, v)
	a.allocations++
	return v
}

// Bytes allocates an owned copy of b from the arena. Used for lexemes and
// decoded string literals so no parsed subtree keeps a reference into the
// token buffer or source code.
func (a *Arena) Bytes(b []byte) []byte {
	owned := make([]byte, len(b))
	copy(owned, b)
	a.retained = append(a.retained, owned)
	a.allocations++
	return owned
}

// Allocations returns the number of objects allocated so far.
func (a *Arena) Allocations() uint64 {
	return a.allocations
}

// Release drops the arena's ownership of everything it allocated.
func (a *Arena) Release() {
	a.retained = nil
}

// Stats describes arena usage.
type Stats struct {
	Allocations uint64
	Retained    int
}

// Stats returns a snapshot of the arena's usage counters.
func (a *Arena) Stats() Stats {
	return Stats{
		Allocations: a.allocations,
		Retained:    len(a.retained),
	}
}
