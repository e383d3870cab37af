package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"kaya/internal/commands"
	"kaya/internal/logger"
	"kaya/internal/parser"
	"kaya/pkg/kayatypes"
)

// DefaultAugmentedCommands receive every encoding of their remainder.
// A trailing ".*" matches the dotted family.
var DefaultAugmentedCommands = []string{"theme", "theme.*"}

// Dispatcher runs a parsed command. *commands.Registry implements it.
type Dispatcher interface {
	Dispatch(name string, params kayatypes.Params) (string, error)
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithAugmentedCommands replaces the command names whose parameters are
// augmented with args/argv/tokens/rest views of the remainder.
func WithAugmentedCommands(names ...string) SessionOption {
	return func(s *Session) {
		s.augmented = append([]string(nil), names...)
	}
}

// WithClearInput registers the host callback that empties its input field.
func WithClearInput(fn func()) SessionOption {
	return func(s *Session) {
		s.clearInput = fn
	}
}

// Session turns submitted lines into queued output. At most one submission is
// processed at a time; lines arriving meanwhile are dropped, not queued.
type Session struct {
	env        *Env
	bus        Dispatcher
	augmented  []string
	clearInput func()
	log        *log.Logger

	busy     atomic.Bool
	needsGap bool // guarded by busy
}

// NewSession creates a session dispatching to bus and writing through env.
func NewSession(env *Env, bus Dispatcher, opts ...SessionOption) *Session {
	s := &Session{
		env:       env,
		bus:       bus,
		augmented: DefaultAugmentedCommands,
		log:       logger.NewStyledLogger("Session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Env returns the session's handler environment.
func (s *Session) Env() *Env {
	return s.env
}

// Log queues text on the animated output with a trailing newline.
func (s *Session) Log(text string) {
	s.env.Log(text)
}

// Busy reports whether a submission is being processed.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Submit processes one input line and reports whether it was accepted.
// Blank lines and lines arriving while another is in progress are ignored.
// Failures are rendered as "Error: <message>" and never escape.
func (s *Session) Submit(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !s.busy.CompareAndSwap(false, true) {
		s.log.Debug("Dropping submission while busy", "session", s.env.SessionID(), "line", line)
		return false
	}
	defer func() {
		if s.clearInput != nil {
			s.clearInput()
		}
		s.needsGap = true
		s.busy.Store(false)
	}()

	if s.needsGap {
		s.env.Write("\n")
		s.needsGap = false
	}
	s.env.Log("> " + line)

	name, params := parser.Parse(line)
	if s.isAugmented(name) {
		params = augment(line, params)
	}

	result, err := s.dispatch(name, params)
	if err != nil {
		msg := err.Error()
		var unknown *commands.UnknownCommandError
		if errors.As(err, &unknown) {
			s.log.Debug("Unknown command", "session", s.env.SessionID(), "command", unknown.Name)
			msg = "Unknown command: " + unknown.Name
		} else {
			s.log.Warn("Command failed", "session", s.env.SessionID(), "command", name, "error", err)
		}
		s.env.Log("Error: " + msg)
		return true
	}
	if result != "" {
		s.env.Log(result)
	}
	return true
}

// RunScript submits each line of r, skipping blank lines and "#" comments.
// after runs once per submitted line; batch hosts pass a writer flush.
func (s *Session) RunScript(r io.Reader, after func()) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.log.Debug("Script line", "session", s.env.SessionID(), "line", lineNo)
		s.Submit(line)
		if after != nil {
			after()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script at line %d: %w", lineNo+1, err)
	}
	return nil
}

func (s *Session) dispatch(name string, params kayatypes.Params) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Command panicked", "session", s.env.SessionID(), "command", name, "error", r)
			err = fmt.Errorf("%v", r)
		}
	}()
	return s.bus.Dispatch(name, params)
}

func (s *Session) isAugmented(name string) bool {
	for _, pattern := range s.augmented {
		if family, ok := strings.CutSuffix(pattern, ".*"); ok {
			if strings.HasPrefix(name, family+".") {
				return true
			}
			continue
		}
		if name == pattern {
			return true
		}
	}
	return false
}

// augment fills every remainder encoding the normalizer probes, keeping any
// the parser already produced. Single-token lines are left alone.
func augment(line string, params kayatypes.Params) kayatypes.Params {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return params
	}
	rest := parts[1:]
	return params.WithDefaults(map[string]any{
		"args":   append([]string(nil), rest...),
		"argv":   append([]string(nil), rest...),
		"tokens": append([]string(nil), rest...),
		"rest":   strings.Join(rest, " "),
	})
}
