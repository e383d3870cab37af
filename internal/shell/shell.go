// Package shell is the line-mode Kaya host built on ishell. Each line is handed
// to the session, and the prompt returns once its animated output has finished.
package shell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/abiosoft/ishell/v2"

	"kaya/internal/logger"
	"kaya/internal/terminal"
	"kaya/internal/typewriter"
)

// Sink writes revealed text to w.
func Sink(w io.Writer) typewriter.Sink {
	var mu sync.Mutex
	return typewriter.SinkFunc(func(text string) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = io.WriteString(w, text)
	})
}

// Shell routes ishell input into a session.
type Shell struct {
	session *terminal.Session
	writer  *typewriter.Writer
	host    *Host
}

// New creates a shell for session, whose output is animated by writer.
func New(session *terminal.Session, writer *typewriter.Writer, host *Host) *Shell {
	return &Shell{session: session, writer: writer, host: host}
}

// Process submits one line and blocks until its output is fully shown.
// Cancelling ctx reveals the remaining output at once.
func (s *Shell) Process(ctx context.Context, rawArgs []string) {
	line := strings.TrimSpace(strings.Join(rawArgs, " "))
	if line == "" {
		return
	}
	s.session.Submit(line)
	s.Wait(ctx)
}

// Wait blocks until the writer is idle, skipping the animation if ctx ends first.
func (s *Shell) Wait(ctx context.Context) {
	select {
	case <-s.writer.Idle():
	case <-ctx.Done():
		s.writer.Skip()
	}
}

// Interrupt handles Ctrl+C at the prompt. A running animation is skipped;
// otherwise it reports false and the shell should stop.
func (s *Shell) Interrupt() bool {
	if s.writer.State() == typewriter.Running {
		s.writer.Skip()
		return true
	}
	return false
}

// Run starts the interactive loop and blocks until the user exits.
func (s *Shell) Run() {
	sh := ishell.New()
	s.host.OnPromptChange(sh.SetPrompt)

	// Kaya has its own help; ishell's would shadow it
	sh.DeleteCmd("help")
	sh.DeleteCmd("exit")
	sh.AddCmd(&ishell.Cmd{
		Name:    "exit",
		Aliases: []string{"quit"},
		Help:    "leave Kaya",
		Func: func(c *ishell.Context) {
			logger.Debug("Exit requested")
			c.Stop()
		},
	})

	sh.NotFound(func(c *ishell.Context) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		s.Process(ctx, c.RawArgs)
	})
	sh.Interrupt(func(c *ishell.Context, _ int, _ string) {
		if !s.Interrupt() {
			c.Stop()
		}
	})
	sh.EOF(func(c *ishell.Context) {
		c.Stop()
	})

	// boot output queued before the loop started
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	s.Wait(ctx)
	stop()

	sh.Run()
}
