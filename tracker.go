package sigflow

import (
	"slices"
	"sync"
)

// watchList keeps the functions observing a node.
type watchList struct {
	mu       sync.Mutex
	watchers []*func()
}

func (w *watchList) add(fn func()) (remove func()) {
	entry := &fn

	w.mu.Lock()
	w.watchers = append(w.watchers, entry)
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		if i := slices.Index(w.watchers, entry); i != -1 {
			w.watchers = slices.Delete(w.watchers, i, i+1)
		}
		w.mu.Unlock()
	}
}

func (w *watchList) notify() {
	// cloning to avoid mutation during iteration
	w.mu.Lock()
	watchers := slices.Clone(w.watchers)
	w.mu.Unlock()

	for _, fn := range watchers {
		(*fn)()
	}
}
