package sigflow

import "sync"

// Pull is a node whose value is recomputed on demand and forwarded to
// watchers. The owner decides when the computation runs; watchers observe
// the result.
type Pull[T any] struct {
	mu       sync.Mutex
	compute  func() T
	value    T
	watchers watchList
}

// NewPull creates a pull node. The computation runs once eagerly so the
// node holds a value from the start.
func NewPull[T any](compute func() T) *Pull[T] {
	return &Pull[T]{compute: compute, value: compute()}
}

// Read returns the value of the last recompute.
func (p *Pull[T]) Read() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Recompute runs the computation against the upstream values current now
// and forwards the result to watchers.
func (p *Pull[T]) Recompute() {
	p.mu.Lock()
	p.value = p.compute()
	p.mu.Unlock()

	p.watchers.notify()
}

// Watch registers fn to run after every recompute.
func (p *Pull[T]) Watch(fn func()) (unwatch func()) {
	return p.watchers.add(fn)
}
