package typewriter

import (
	"sync"
	"time"
)

// TickerScheduler fires ticks from a goroutine driven by time.Ticker.
type TickerScheduler struct {
	mu   sync.Mutex
	stop chan struct{}
}

// NewTickerScheduler creates a stopped scheduler.
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

// Start begins firing tick every interval, replacing any previous run.
func (s *TickerScheduler) Start(interval time.Duration, tick func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		close(s.stop)
	}
	stop := make(chan struct{})
	s.stop = stop
	go run(interval, tick, stop)
}

// Stop cancels the pending tick. It returns immediately, so it is safe to call
// from inside tick.
func (s *TickerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func run(interval time.Duration, tick func(), stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// a stop racing with the ticker wins
			select {
			case <-stop:
				return
			default:
			}
			tick()
		}
	}
}
