// Package scheduler runs one-shot callbacks at absolute times, keyed by
// ID so pending work can be replaced or cancelled.
package scheduler

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler owns a set of pending timers. Scheduling an ID that is
// already pending replaces the earlier timer.
type Scheduler struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	log     zerolog.Logger
	stopped bool
}

func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{timers: make(map[string]*time.Timer), log: log}
}

// Schedule arranges for fn to run at the given time. Times in the past
// fire immediately. fn runs on its own goroutine via the timer.
func (s *Scheduler) Schedule(id string, at time.Time, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if t, ok := s.timers[id]; ok {
		t.Stop()
	}
	d := time.Until(at)
	if d < 0 {
		d = 0
	}
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		fn()
	})
	s.log.Debug().Str("id", id).Time("at", at).Msg("scheduled")
}

// Cancel stops a pending timer. Unknown IDs are a no-op.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// Pending reports whether id has a timer that has not fired yet.
func (s *Scheduler) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[id]
	return ok
}

// Stop cancels everything and rejects further scheduling.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
