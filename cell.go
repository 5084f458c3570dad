package sigflow

import "sync"

// Cell is a settable observable value holder. A Cell is written by exactly
// one owner; any number of observers may Read and Watch it.
type Cell[T any] struct {
	mu       sync.Mutex
	value    T
	watchers watchList
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Read returns the current value.
func (c *Cell[T]) Read() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Write stores a new value and notifies watchers. Writes to a given cell
// are serialized; watchers run outside the lock so they are free to Read
// the cell again.
func (c *Cell[T]) Write(v T) {
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()

	c.watchers.notify()
}

// Watch registers fn to run after every write.
func (c *Cell[T]) Watch(fn func()) (unwatch func()) {
	return c.watchers.add(fn)
}
