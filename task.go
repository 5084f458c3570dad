package sigflow

import "sync"

// Task is an asynchronous computation that settles exactly once, with a
// value or an error. It implements Completable.
type Task[T any] struct {
	mu        sync.Mutex
	settled   bool
	value     T
	err       error
	callbacks []func(T, error)
}

// NewTask creates an unsettled task.
func NewTask[T any]() *Task[T] {
	return &Task[T]{}
}

// Go runs fn on its own goroutine and returns the task it settles.
func Go[T any](fn func() (T, error)) *Task[T] {
	t := NewTask[T]()
	go func() {
		v, err := fn()
		if err != nil {
			t.Fail(err)
			return
		}
		t.Complete(v)
	}()
	return t
}

// Complete settles the task with a value. Settling an already settled task
// is a no-op.
func (t *Task[T]) Complete(v T) {
	t.settle(v, nil)
}

// Fail settles the task with an error.
func (t *Task[T]) Fail(err error) {
	var zero T
	t.settle(zero, err)
}

func (t *Task[T]) settle(v T, err error) {
	t.mu.Lock()
	if t.settled {
		t.mu.Unlock()
		return
	}
	t.settled = true
	t.value = v
	t.err = err
	callbacks := t.callbacks
	t.callbacks = nil
	t.mu.Unlock()

	for _, fn := range callbacks {
		fn(v, err)
	}
}

// OnCompletion registers fn to run once the task settles. Each registered
// callback fires exactly once; if the task has already settled, fn runs
// immediately on the calling goroutine.
func (t *Task[T]) OnCompletion(fn func(v T, err error)) {
	t.mu.Lock()
	if !t.settled {
		t.callbacks = append(t.callbacks, fn)
		t.mu.Unlock()
		return
	}
	v, err := t.value, t.err
	t.mu.Unlock()

	fn(v, err)
}
