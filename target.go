package sigflow

import (
	"sync"
	"sync/atomic"
)

// Policy selects how out-of-order completions reach the cell. The variants
// below are the complete set; extending means adding a variant here.
type Policy int

const (
	// ApplyAll applies every completion as it arrives. The cell may regress
	// to an older result when an older computation finishes after a newer
	// one; that is accepted.
	ApplyAll Policy = iota

	// ApplyLatest drops any completion older than the newest one already
	// applied, so the cell never regresses across dispatch order.
	ApplyLatest
)

// target decides, per completed dispatch, whether the result is applied.
//
// dispatch is called synchronously when a computation is handed out.
// complete is called exactly once per dispatch, at an arbitrary later time,
// possibly concurrently with other completions and new dispatches.
type target interface {
	dispatch(id uint64)
	complete(id uint64, apply func())
}

func newTarget(p Policy) target {
	if p == ApplyLatest {
		return &applyLatest{}
	}
	return applyAll{}
}

type applyAll struct{}

func (applyAll) dispatch(uint64) {}

func (applyAll) complete(_ uint64, apply func()) { apply() }

// applyLatest keeps the highest dispatched and applied ids. The applied
// check, its update and the apply itself form one atomic step: a bare
// compare-and-swap would let an older winner apply after a newer one if it
// were preempted between the swap and the write.
type applyLatest struct {
	lastDispatched atomic.Uint64

	mu          sync.Mutex
	lastApplied uint64
}

func (t *applyLatest) dispatch(id uint64) {
	for {
		last := t.lastDispatched.Load()
		if id <= last || t.lastDispatched.CompareAndSwap(last, id) {
			return
		}
	}
}

// complete applies iff id >= lastApplied. The equal case reapplies: a
// duplicate delivery of the applied dispatch writes the same value again,
// which is harmless, while a strict comparison would drop it for no gain.
func (t *applyLatest) complete(id uint64, apply func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id < t.lastApplied {
		// stale: a newer dispatch already applied
		return
	}
	t.lastApplied = id
	apply()
}
