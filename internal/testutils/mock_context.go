package testutils

import (
	"strings"
	"sync"

	"kaya/pkg/kayatypes"
)

// MockContext implements kayatypes.Context for testing. Logged text is recorded.
type MockContext struct {
	mu        sync.RWMutex
	logs      []string
	sessionID string
	testMode  bool
}

// NewMockContext creates a mock context in test mode.
func NewMockContext() *MockContext {
	return &MockContext{
		sessionID: "00000001-0000-4000-8000-000000000001",
		testMode:  true,
	}
}

// Log implements Context.Log
func (m *MockContext) Log(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, text)
}

// SessionID implements Context.SessionID
func (m *MockContext) SessionID() string {
	return m.sessionID
}

// IsTestMode implements Context.IsTestMode
func (m *MockContext) IsTestMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.testMode
}

// SetTestMode toggles test mode.
func (m *MockContext) SetTestMode(testMode bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.testMode = testMode
}

// Logs returns a copy of everything logged.
func (m *MockContext) Logs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.logs))
	copy(out, m.logs)
	return out
}

// RecordingSink collects everything a writer emits.
type RecordingSink struct {
	mu     sync.Mutex
	chunks []string
}

// NewRecordingSink creates an empty sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// Insert records one emitted chunk.
func (s *RecordingSink) Insert(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, text)
}

// String returns the visible output so far.
func (s *RecordingSink) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.chunks, "")
}

// Chunks returns each insert separately.
func (s *RecordingSink) Chunks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// RecordingApplier records applied accents.
type RecordingApplier struct {
	mu      sync.Mutex
	applied []string
}

// NewRecordingApplier creates an empty applier.
func NewRecordingApplier() *RecordingApplier {
	return &RecordingApplier{}
}

// ApplyAccent implements kayatypes.AccentApplier.
func (a *RecordingApplier) ApplyAccent(accent kayatypes.Accent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.applied = append(a.applied, accent.Name)
}

// Applied returns the applied accent names in order.
func (a *RecordingApplier) Applied() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.applied))
	copy(out, a.applied)
	return out
}

// Last returns the most recently applied accent name, or "".
func (a *RecordingApplier) Last() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.applied) == 0 {
		return ""
	}
	return a.applied[len(a.applied)-1]
}

// RecordingOpener records opened project directories and can be made to fail.
type RecordingOpener struct {
	mu     sync.Mutex
	opened []string
	Err    error
}

// OpenProject implements kayatypes.ProjectOpener.
func (o *RecordingOpener) OpenProject(dir string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.opened = append(o.opened, dir)
	return nil
}

// Opened returns the opened directories.
func (o *RecordingOpener) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.opened))
	copy(out, o.opened)
	return out
}
