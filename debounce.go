package sigflow

import (
	"sync"
	"time"
)

// Debounce coalesces bursts of upstream changes into cell writes spaced at
// least interval apart, trailing the last burst by at most delay once the
// upstream goes quiet.
//
// On the first change of a burst it schedules a single fire: at the end of
// the window still in force, or after delay when no window is in force.
// Later changes before the fire are dropped; the fire re-reads the
// upstream's current value, so the write always reflects the latest change.
type Debounce[T any] struct {
	src      Source[T]
	cell     *Cell[T]
	clock    Clock
	interval time.Duration
	delay    time.Duration

	mu          sync.Mutex
	nextAllowed time.Time
	timer       Timer
	active      bool

	unwatch func()
}

// NewDebounce coalesces src with a minimum output spacing of interval and a
// trailing quiet period of delay. The cell starts at src's value at
// construction. A nil clock uses the shared system TimerService.
func NewDebounce[T any](src Source[T], interval, delay time.Duration, clock Clock) *Debounce[T] {
	if clock == nil {
		clock = systemClock
	}

	d := &Debounce[T]{
		src:      src,
		cell:     NewCell(src.Read()),
		clock:    clock,
		interval: interval,
		delay:    delay,
		active:   true,
	}
	d.unwatch = src.Watch(d.onChange)

	if o := currentOwner(); o != nil {
		o.OnCleanup(d.Dispose)
	}

	return d
}

func (d *Debounce[T]) onChange() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active || d.timer != nil {
		return
	}

	wait := d.nextAllowed.Sub(d.clock.Now())
	if wait < 0 {
		// no window in force: trail the change by the quiet period
		wait = d.delay
	}
	d.timer = d.clock.Schedule(wait, d.fire)
}

func (d *Debounce[T]) fire() {
	d.mu.Lock()
	d.timer = nil
	if !d.active {
		d.mu.Unlock()
		return
	}
	d.nextAllowed = d.clock.Now().Add(d.interval)
	d.mu.Unlock()

	d.cell.Write(d.src.Read())
}

// Read returns the last coalesced value.
func (d *Debounce[T]) Read() T {
	return d.cell.Read()
}

// Watch registers fn to run on every coalesced write.
func (d *Debounce[T]) Watch(fn func()) (unwatch func()) {
	return d.cell.Watch(fn)
}

// Dispose unsubscribes from the source and cancels any pending timer; a
// fire already in flight observes the inactive state and does nothing.
// Idempotent.
func (d *Debounce[T]) Dispose() {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	d.active = false
	timer := d.timer
	d.timer = nil
	d.mu.Unlock()

	if timer != nil {
		timer.Cancel()
	}
	d.unwatch()
}
