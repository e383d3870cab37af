package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// typewriterTickMsg asks the model to advance the writer by one tick.
type typewriterTickMsg struct{}

// LoopScheduler runs writer ticks on the bubbletea event loop instead of a
// goroutine: Start and Stop only flip a flag, and the model turns an active
// scheduler into tea.Tick commands.
type LoopScheduler struct {
	mu       sync.Mutex
	active   bool
	interval time.Duration
	tick     func()
}

// NewLoopScheduler creates an inactive scheduler.
func NewLoopScheduler() *LoopScheduler {
	return &LoopScheduler{}
}

// Start records the tick callback and marks the scheduler active.
func (s *LoopScheduler) Start(interval time.Duration, tick func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.interval = interval
	s.tick = tick
}

// Stop marks the scheduler inactive. A tick already scheduled is ignored.
func (s *LoopScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// Active reports whether the writer wants ticks.
func (s *LoopScheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Fire runs the tick callback if active.
func (s *LoopScheduler) Fire() {
	s.mu.Lock()
	tick, active := s.tick, s.active
	s.mu.Unlock()
	if active && tick != nil {
		tick()
	}
}

// Next returns the command delivering the next tick, or nil when inactive.
func (s *LoopScheduler) Next() tea.Cmd {
	s.mu.Lock()
	active, interval := s.active, s.interval
	s.mu.Unlock()
	if !active {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return typewriterTickMsg{}
	})
}
