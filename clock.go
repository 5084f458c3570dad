package sigflow

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock is the time source and one-shot scheduler the rate limiters run on.
// Tests substitute a manual clock.
type Clock interface {
	Now() time.Time

	// Schedule runs fn once after d. Implementations must not run fn
	// synchronously from within Schedule, even for a zero delay.
	Schedule(d time.Duration, fn func()) Timer
}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Cancel stops the timer if it has not fired yet. It reports whether
	// the callback was prevented from running; calling it after the fire,
	// or twice, is safe and returns false.
	Cancel() bool
}

// TimerService is the system Clock: wall-clock time, timers tracked in a
// pending map so outstanding ones can be stopped together on shutdown.
type TimerService struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewTimerService creates an empty timer service.
func NewTimerService() *TimerService {
	return &TimerService{pending: make(map[string]*time.Timer, 8)}
}

func (s *TimerService) Now() time.Time { return time.Now() }

func (s *TimerService) Schedule(d time.Duration, fn func()) Timer {
	id := uuid.NewString()

	s.mu.Lock()
	t := time.AfterFunc(d, func() {
		s.forget(id)
		fn()
	})
	s.pending[id] = t
	s.mu.Unlock()

	return &systemTimer{svc: s, id: id, timer: t}
}

func (s *TimerService) forget(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// StopAll cancels every pending timer. A timer already firing runs to
// completion.
func (s *TimerService) StopAll() {
	s.mu.Lock()
	pending := s.pending
	s.pending = make(map[string]*time.Timer, 8)
	s.mu.Unlock()

	for _, t := range pending {
		t.Stop()
	}
}

type systemTimer struct {
	svc   *TimerService
	id    string
	timer *time.Timer
}

func (t *systemTimer) Cancel() bool {
	t.svc.forget(t.id)
	return t.timer.Stop()
}

// systemClock is the shared default for combinators built with a nil clock.
var systemClock = NewTimerService()
