package tui

import (
	"strings"
	"sync"
)

// OutputBuffer is the writer's sink: the text revealed so far.
type OutputBuffer struct {
	mu      sync.Mutex
	b       strings.Builder
	version int
}

// NewOutputBuffer creates an empty buffer.
func NewOutputBuffer() *OutputBuffer {
	return &OutputBuffer{}
}

// Insert appends revealed text.
func (o *OutputBuffer) Insert(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.b.WriteString(text)
	o.version++
}

// String returns everything revealed so far.
func (o *OutputBuffer) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.b.String()
}

// Version increases on every insert.
func (o *OutputBuffer) Version() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.version
}
