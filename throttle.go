package sigflow

import (
	"sync"
	"time"
)

// Throttle forwards upstream changes through an owned pull node at most
// once per window, at the earliest legal time.
//
// A change arriving while the window is open recomputes immediately and
// starts the next window. A change arriving inside a started window
// schedules a single catch-up recompute at the window boundary, using the
// upstream value current at fire time; further changes before the fire are
// already coalesced and dropped. The catch-up fire does not start a new
// window.
type Throttle[T any] struct {
	pull   *Pull[T]
	clock  Clock
	window time.Duration

	mu          sync.Mutex
	nextAllowed time.Time
	timer       Timer
	active      bool

	unwatch func()
}

// NewThrottle gates src behind window. A nil clock uses the shared system
// TimerService.
func NewThrottle[T any](src Source[T], window time.Duration, clock Clock) *Throttle[T] {
	if clock == nil {
		clock = systemClock
	}

	t := &Throttle[T]{
		pull:   NewPull(src.Read),
		clock:  clock,
		window: window,
		active: true,
	}
	t.unwatch = src.Watch(t.onChange)

	if o := currentOwner(); o != nil {
		o.OnCleanup(t.Dispose)
	}

	return t
}

func (t *Throttle[T]) onChange() {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return
	}

	now := t.clock.Now()
	if !now.Before(t.nextAllowed) {
		// window open: forward now, start the next window
		t.nextAllowed = now.Add(t.window)
		t.mu.Unlock()

		t.pull.Recompute()
		return
	}

	if t.timer != nil {
		// already coalesced into the pending fire
		t.mu.Unlock()
		return
	}
	t.timer = t.clock.Schedule(t.nextAllowed.Sub(now), t.fire)
	t.mu.Unlock()
}

func (t *Throttle[T]) fire() {
	t.mu.Lock()
	t.timer = nil
	if !t.active {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	t.pull.Recompute()
}

// Read returns the last forwarded value.
func (t *Throttle[T]) Read() T {
	return t.pull.Read()
}

// Watch registers fn to run on every forwarded recompute.
func (t *Throttle[T]) Watch(fn func()) (unwatch func()) {
	return t.pull.Watch(fn)
}

// Dispose unsubscribes from the source and cancels any pending timer; a
// fire already in flight observes the inactive state and does nothing.
// Idempotent.
func (t *Throttle[T]) Dispose() {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return
	}
	t.active = false
	timer := t.timer
	t.timer = nil
	t.mu.Unlock()

	if timer != nil {
		timer.Cancel()
	}
	t.unwatch()
}
