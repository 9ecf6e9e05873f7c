package lazy

import (
	"sync"
	"sync/atomic"
)

// Cell memoizes a single derived value on an otherwise immutable owner.
// The compute function passed to Get runs at most once per Cell; every
// later Get returns the cached result, including results that describe a
// failed computation. There is no invalidation. Safe for concurrent use:
// the value is published by sync.Once before any reader observes it.
type Cell[T any] struct {
	once sync.Once
	done atomic.Bool
	v    T
}

// Get returns the memoized value, running compute on the first call.
func (c *Cell[T]) Get(compute func() T) T {
	c.once.Do(func() {
		c.v = compute()
		c.done.Store(true)
	})
	return c.v
}

// Resolved reports whether the cell has been computed.
func (c *Cell[T]) Resolved() bool {
	return c.done.Load()
}
