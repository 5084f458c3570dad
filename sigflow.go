// Package sigflow bridges asynchronous computations and bursty updates into
// reactive cells.
//
// Async flattens a signal of in-flight computations into a plain value cell,
// applying each completion under a configurable ordering policy: completion
// order is decoupled from dispatch order, and the policy decides whether a
// result that arrives out of order still reaches the cell.
//
// Throttle and Debounce bound the frequency of downstream updates. Throttle
// forwards through an owned pull node at most once per window, at the
// earliest legal time; Debounce trails a burst of changes and writes the
// upstream's latest value once the window (or quiet period) elapses.
//
// All three own the cell or node they write. Upstream nodes are consumed
// through the Source interface, timers through Clock, so tests can drive
// everything with a manual clock.
package sigflow

// Source is a readable node with change notification. Cell and Pull both
// satisfy it.
type Source[T any] interface {
	// Read returns the node's current value.
	Read() T

	// Watch registers fn to run on every change. The returned function
	// removes the registration.
	Watch(fn func()) (unwatch func())
}

// Completable is a single asynchronous computation. OnCompletion must invoke
// fn exactly once, at any later time and from any goroutine, with either the
// result or the failure.
type Completable[T any] interface {
	OnCompletion(fn func(v T, err error))
}
