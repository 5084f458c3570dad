package sigflow

import "sync/atomic"

type result[T any] struct {
	value T
	err   error
}

// Async flattens a signal of in-flight computations into a value cell.
//
// Every time the source holds a new computation, Async assigns it the next
// sequence id, tells the policy it was dispatched, and registers for its
// completion. When the completion arrives, in any order relative to other
// dispatches, the policy decides whether the result is written to the cell.
//
// A failed computation is written to the cell as an error state rather than
// dropped, so observers never stall on a failure; Read surfaces it.
type Async[T any] struct {
	src  Source[Completable[T]]
	cell *Cell[result[T]]
	tgt  target
	exec Executor

	seq     atomic.Uint64
	active  atomic.Bool
	unwatch func()
}

// NewAsync creates a flattener over src, with the cell seeded to def.
// Completion callbacks are handed to exec; a nil exec runs them Inline.
//
// The computation src holds at construction is dispatched immediately: the
// first result does not wait for a change event. A nil computation in the
// source is skipped.
func NewAsync[T any](src Source[Completable[T]], def T, policy Policy, exec Executor) *Async[T] {
	if exec == nil {
		exec = Inline
	}

	a := &Async[T]{
		src:  src,
		cell: NewCell(result[T]{value: def}),
		tgt:  newTarget(policy),
		exec: exec,
	}
	a.active.Store(true)
	a.unwatch = src.Watch(a.dispatchCurrent)
	a.dispatchCurrent()

	if o := currentOwner(); o != nil {
		o.OnCleanup(a.Dispose)
	}

	return a
}

func (a *Async[T]) dispatchCurrent() {
	if !a.active.Load() {
		return
	}

	task := a.src.Read()
	if task == nil {
		return
	}

	id := a.seq.Add(1)
	a.tgt.dispatch(id)

	task.OnCompletion(func(v T, err error) {
		a.exec.Execute(func() {
			if !a.active.Load() {
				return
			}
			a.tgt.complete(id, func() {
				a.cell.Write(result[T]{value: v, err: err})
			})
		})
	})
}

// Read returns the latest applied result, or the default until one applies.
// A failed computation surfaces as a non-nil error alongside the zero value.
func (a *Async[T]) Read() (T, error) {
	r := a.cell.Read()
	return r.value, r.err
}

// Watch registers fn to run whenever a completion is applied to the cell.
func (a *Async[T]) Watch(fn func()) (unwatch func()) {
	return a.cell.Watch(fn)
}

// Dispose unsubscribes from the source. Completions arriving after disposal
// are dropped; nothing writes into a disposed cell. Idempotent.
func (a *Async[T]) Dispose() {
	if a.active.CompareAndSwap(true, false) {
		a.unwatch()
	}
}
