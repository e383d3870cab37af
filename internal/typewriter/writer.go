// Package typewriter reveals queued text progressively, a few characters per
// scheduled tick, with support for enqueue-while-running and immediate flush.
package typewriter

import (
	"sync"
	"time"

	"github.com/rivo/uniseg"
)

const (
	// DefaultInterval matches a comfortable reading pace.
	DefaultInterval = 14 * time.Millisecond
	// DefaultChunkSize is the number of characters revealed per tick.
	DefaultChunkSize = 2
)

// State is the writer's animation state.
type State int

const (
	// Idle means nothing is queued or being revealed.
	Idle State = iota
	// Running means a string is being revealed on scheduled ticks.
	Running
)

// String returns the state name.
func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Sink receives the visible output.
type Sink interface {
	Insert(text string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(text string)

// Insert calls f(text).
func (f SinkFunc) Insert(text string) { f(text) }

// Scheduler fires tick periodically between Start and Stop. Stop must not
// block on an in-flight tick: the writer stops its scheduler from inside a tick.
type Scheduler interface {
	Start(interval time.Duration, tick func())
	Stop()
}

// Option configures a Writer.
type Option func(*Writer)

// WithInterval sets the tick period. Values below 1ms are clamped.
func WithInterval(d time.Duration) Option {
	return func(w *Writer) {
		if d < time.Millisecond {
			d = time.Millisecond
		}
		w.interval = d
	}
}

// WithChunkSize sets the characters revealed per tick. Values below 1 are clamped.
func WithChunkSize(n int) Option {
	return func(w *Writer) {
		if n < 1 {
			n = 1
		}
		w.chunk = n
	}
}

// WithScheduler replaces the default goroutine ticker.
func WithScheduler(s Scheduler) Option {
	return func(w *Writer) {
		w.scheduler = s
	}
}

// OnFinished registers a completion callback, run each time the writer goes idle.
func OnFinished(fn func()) Option {
	return func(w *Writer) {
		w.finished = append(w.finished, fn)
	}
}

// Writer is a single-consumer FIFO of text blocks drained on a periodic tick.
// Output order is exactly enqueue order; chunking never drops or reorders
// characters and never splits a grapheme cluster.
type Writer struct {
	mu        sync.Mutex
	sink      Sink
	scheduler Scheduler
	interval  time.Duration
	chunk     int

	queue   []string
	current string
	cursor  int // byte offset into current
	running bool
	idle    chan struct{}

	finished []func()
}

// New creates an idle writer emitting to sink.
func New(sink Sink, opts ...Option) *Writer {
	w := &Writer{
		sink:     sink,
		interval: DefaultInterval,
		chunk:    DefaultChunkSize,
		idle:     closedChan(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.scheduler == nil {
		w.scheduler = NewTickerScheduler()
	}
	return w
}

// Enqueue appends text to the queue. An idle writer starts revealing it at once;
// a running writer reveals it after everything queued before it.
func (w *Writer) Enqueue(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.queue = append(w.queue, text)
	if !w.running {
		w.startLocked()
	}
}

// Tick reveals the next chunk of the current string. When the string is
// exhausted the next queued string becomes current, or the writer goes idle
// and signals completion. Ticks while idle are ignored.
func (w *Writer) Tick() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}

	if w.cursor < len(w.current) {
		piece := nextClusters(w.current[w.cursor:], w.chunk)
		w.cursor += len(piece)
		w.sink.Insert(piece)
	}

	done := false
	if w.cursor >= len(w.current) {
		done = w.advanceLocked()
	}
	w.mu.Unlock()

	if done {
		w.notifyFinished()
	}
}

// Skip writes the rest of the current string and every queued string in one
// step, cancels the pending tick, and signals completion. Idle writers are untouched.
func (w *Writer) Skip() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}

	w.scheduler.Stop()
	if rest := w.current[w.cursor:]; rest != "" {
		w.sink.Insert(rest)
	}
	for _, text := range w.queue {
		if text != "" {
			w.sink.Insert(text)
		}
	}
	w.queue = nil
	w.current = ""
	w.cursor = 0
	w.setIdleLocked()
	w.mu.Unlock()

	w.notifyFinished()
}

// State reports whether the writer is revealing text.
func (w *Writer) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return Running
	}
	return Idle
}

// Pending returns the number of strings waiting behind the current one.
func (w *Writer) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

// Idle returns a channel that is closed while the writer is idle. A channel
// obtained during a run is closed when that run completes.
func (w *Writer) Idle() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.idle
}

// Interval returns the configured tick period.
func (w *Writer) Interval() time.Duration {
	return w.interval
}

func (w *Writer) startLocked() {
	w.current = w.queue[0]
	w.queue = w.queue[1:]
	w.cursor = 0
	w.running = true
	w.idle = make(chan struct{})
	w.scheduler.Start(w.interval, w.Tick)
}

// advanceLocked moves to the next queued string. Reports whether the writer went idle.
func (w *Writer) advanceLocked() bool {
	if len(w.queue) > 0 {
		w.current = w.queue[0]
		w.queue = w.queue[1:]
		w.cursor = 0
		return false
	}
	w.scheduler.Stop()
	w.current = ""
	w.cursor = 0
	w.setIdleLocked()
	return true
}

func (w *Writer) setIdleLocked() {
	w.running = false
	close(w.idle)
}

func (w *Writer) notifyFinished() {
	for _, fn := range w.finished {
		fn()
	}
}

// nextClusters returns the prefix of s holding at most n grapheme clusters.
func nextClusters(s string, n int) string {
	end := 0
	rest := s
	state := -1
	for i := 0; i < n && rest != ""; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		end += len(cluster)
	}
	return s[:end]
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
