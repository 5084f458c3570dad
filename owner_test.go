package sigflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOwner(t *testing.T) {
	t.Run("no active owner outside run", func(t *testing.T) {
		assert.Nil(t, currentOwner())
	})

	t.Run("run sets and restores the active owner", func(t *testing.T) {
		outer := NewOwner()
		inner := NewOwner()

		outer.Run(func() {
			assert.Same(t, outer, currentOwner())

			inner.Run(func() {
				assert.Same(t, inner, currentOwner())
			})

			assert.Same(t, outer, currentOwner())
		})

		assert.Nil(t, currentOwner())
	})

	t.Run("dispose cancels pending timers", func(t *testing.T) {
		clock := newFakeClock()
		src := NewCell(0)
		owner := NewOwner()

		var db *Debounce[int]
		owner.Run(func() {
			db = NewDebounce[int](src, 100*time.Millisecond, 20*time.Millisecond, clock)
		})

		src.Write(1)
		assert.Equal(t, 1, clock.pending())

		owner.Dispose()
		clock.Advance(time.Second)

		// nothing wrote into the torn-down cell
		assert.Equal(t, 0, db.Read())
		assert.Equal(t, 0, clock.pending())
	})

	t.Run("dispose tears down every combinator it owns", func(t *testing.T) {
		clock := newFakeClock()
		src := NewCell(0)
		tasks := NewCell[Completable[int]](nil)
		owner := NewOwner()

		var th *Throttle[int]
		var a *Async[int]
		owner.Run(func() {
			th = NewThrottle[int](src, 100*time.Millisecond, clock)
			a = NewAsync(tasks, 0, ApplyLatest, Inline)
		})

		owner.Dispose()
		owner.Dispose() // idempotent

		task := NewTask[int]()
		tasks.Write(task)
		task.Complete(5)
		src.Write(9)
		clock.Advance(time.Second)

		assert.Equal(t, 0, th.Read())
		v, _ := a.Read()
		assert.Equal(t, 0, v)
	})

	t.Run("cleanups run once, in reverse order", func(t *testing.T) {
		owner := NewOwner()

		var order []string
		owner.OnCleanup(func() { order = append(order, "a") })
		owner.OnCleanup(func() { order = append(order, "b") })

		owner.Dispose()
		owner.Dispose()
		assert.Equal(t, []string{"b", "a"}, order)
	})
}
