package sigflow

// Executor is the execution context completion callbacks are handed to
// before they touch the policy and the cell.
type Executor interface {
	Execute(fn func())
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(fn func())

func (f ExecutorFunc) Execute(fn func()) { f(fn) }

// Inline runs callbacks on the completing goroutine.
var Inline Executor = ExecutorFunc(func(fn func()) { fn() })

// Goroutines runs each callback on its own goroutine.
var Goroutines Executor = ExecutorFunc(func(fn func()) { go fn() })
