// Package testutils provides deterministic fakes and helpers for Kaya tests.
package testutils

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var uuidCounter atomic.Uint64

// GenerateUUID returns a random UUID, or in test mode a sequential one of the
// form 00000001-0000-4000-8000-000000000001.
func GenerateUUID(testMode bool) string {
	if !testMode {
		return uuid.New().String()
	}
	n := uuidCounter.Add(1)
	return fmt.Sprintf("%08d-0000-4000-8000-%012d", n, n)
}

// ResetUUIDCounter restarts the test-mode UUID sequence.
func ResetUUIDCounter() {
	uuidCounter.Store(0)
}

// FixedClock returns a clock function frozen at the given hour of 2025-01-01 in loc.
func FixedClock(hour int, loc *time.Location) func() time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t := time.Date(2025, time.January, 1, hour, 0, 0, 0, loc)
	return func() time.Time { return t }
}

// ManualScheduler is a writer scheduler that never fires on its own.
// Tests drive ticks explicitly and inspect Start/Stop bookkeeping.
type ManualScheduler struct {
	mu       sync.Mutex
	active   bool
	interval time.Duration
	tick     func()
	starts   int
	stops    int
}

// NewManualScheduler creates an inactive scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Start records the interval and tick callback.
func (s *ManualScheduler) Start(interval time.Duration, tick func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.interval = interval
	s.tick = tick
	s.starts++
}

// Stop marks the scheduler inactive.
func (s *ManualScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.stops++
}

// Fire invokes the tick callback once if active. Returns whether it fired.
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	tick := s.tick
	active := s.active
	s.mu.Unlock()
	if !active || tick == nil {
		return false
	}
	tick()
	return true
}

// RunUntilIdle fires until the scheduler stops, bounded by limit ticks.
// Returns the number of ticks fired.
func (s *ManualScheduler) RunUntilIdle(limit int) int {
	n := 0
	for n < limit && s.Fire() {
		n++
	}
	return n
}

// Active reports whether a tick is pending.
func (s *ManualScheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Interval returns the interval passed to the last Start.
func (s *ManualScheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Starts returns how many times Start was called.
func (s *ManualScheduler) Starts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts
}

// Stops returns how many times Stop was called.
func (s *ManualScheduler) Stops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops
}
