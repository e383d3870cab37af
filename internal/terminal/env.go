// Package terminal hosts the Kaya command pipeline behind a single input line:
// it echoes submissions, dispatches them, and queues every result on the
// animated writer in order.
package terminal

import (
	"strings"

	"kaya/internal/testutils"
	"kaya/internal/typewriter"
)

// Env is the handler environment bound into the command registry. Handlers
// write to the session's animated output through it.
type Env struct {
	writer    *typewriter.Writer
	sessionID string
	testMode  bool
}

// NewEnv creates an environment writing to w. The session ID is random, or
// sequential in test mode.
func NewEnv(w *typewriter.Writer, testMode bool) *Env {
	return &Env{
		writer:    w,
		sessionID: testutils.GenerateUUID(testMode),
		testMode:  testMode,
	}
}

// Log queues text followed by a newline if it has none.
func (e *Env) Log(text string) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	e.writer.Enqueue(text)
}

// Write queues text verbatim.
func (e *Env) Write(text string) {
	e.writer.Enqueue(text)
}

// SessionID identifies the session in logs.
func (e *Env) SessionID() string {
	return e.sessionID
}

// IsTestMode reports deterministic test mode.
func (e *Env) IsTestMode() bool {
	return e.testMode
}

// Writer returns the animated writer behind the environment.
func (e *Env) Writer() *typewriter.Writer {
	return e.writer
}
