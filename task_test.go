package sigflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask(t *testing.T) {
	t.Run("callbacks fire on completion", func(t *testing.T) {
		task := NewTask[int]()

		var got int
		var gotErr error
		task.OnCompletion(func(v int, err error) { got, gotErr = v, err })

		task.Complete(42)
		assert.Equal(t, 42, got)
		assert.NoError(t, gotErr)
	})

	t.Run("late registration fires immediately", func(t *testing.T) {
		task := NewTask[string]()
		task.Complete("done")

		var got string
		task.OnCompletion(func(v string, err error) { got = v })
		assert.Equal(t, "done", got)
	})

	t.Run("settles exactly once", func(t *testing.T) {
		task := NewTask[int]()

		calls := 0
		task.OnCompletion(func(int, error) { calls++ })

		task.Complete(1)
		task.Complete(2)
		task.Fail(errors.New("late"))
		assert.Equal(t, 1, calls)

		v, err := 0, error(nil)
		task.OnCompletion(func(got int, gotErr error) { v, err = got, gotErr })
		assert.Equal(t, 1, v)
		assert.NoError(t, err)
	})

	t.Run("failure", func(t *testing.T) {
		task := NewTask[int]()
		task.Fail(errors.New("oops"))

		task.OnCompletion(func(v int, err error) {
			assert.Zero(t, v)
			assert.EqualError(t, err, "oops")
		})
	})

	t.Run("go adapter", func(t *testing.T) {
		done := make(chan struct{})

		task := Go(func() (int, error) { return 7, nil })
		task.OnCompletion(func(v int, err error) {
			assert.Equal(t, 7, v)
			assert.NoError(t, err)
			close(done)
		})

		<-done
	})
}
