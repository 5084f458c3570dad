package sigflow

import (
	"sync"

	"github.com/petermattis/goid"
)

// Owner scopes the lifecycle of combinators. Constructors called inside Run
// register their Dispose with the owner, so tearing the owner down cancels
// pending timers and unsubscribes everything it created.
type Owner struct {
	mu       sync.Mutex
	cleanups []func()
}

// NewOwner creates an owner with no registrations.
func NewOwner() *Owner {
	return &Owner{}
}

var activeOwners sync.Map

func currentOwner() *Owner {
	if o, ok := activeOwners.Load(goid.Get()); ok {
		return o.(*Owner)
	}
	return nil
}

// Run executes fn with o as the goroutine's active owner, restoring the
// previous one afterwards.
func (o *Owner) Run(fn func()) {
	gid := goid.Get()
	prev, hadPrev := activeOwners.Load(gid)
	activeOwners.Store(gid, o)

	defer func() {
		if hadPrev {
			activeOwners.Store(gid, prev)
		} else {
			activeOwners.Delete(gid)
		}
	}()

	fn()
}

// OnCleanup registers fn to be called ONCE when the owner is disposed.
func (o *Owner) OnCleanup(fn func()) {
	o.mu.Lock()
	o.cleanups = append(o.cleanups, fn)
	o.mu.Unlock()
}

// Dispose runs the registered cleanups in reverse registration order.
// Cleanups run once; disposing again is a no-op.
func (o *Owner) Dispose() {
	o.mu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
