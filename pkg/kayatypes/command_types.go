// Package kayatypes defines command system types for Kaya.
// This file contains the handler contract, the injected handler environment,
// and structured help information.
package kayatypes

// Context is the environment bound into the registry at construction and passed
// to every handler invocation. Handlers reach shared state only through it.
type Context interface {
	// Log queues text on the animated output, after anything already queued.
	Log(text string)
	// SessionID identifies the terminal session for log correlation.
	SessionID() string
	// IsTestMode reports deterministic test mode.
	IsTestMode() bool
}

// HandlerFunc maps parameters to a text result for one command name.
// An empty result means "no output".
type HandlerFunc func(ctx Context, params Params) (string, error)

// Command is a named, self-describing handler.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Execute(ctx Context, params Params) (string, error)
}

// HelpInfo is the structured help for a command.
type HelpInfo struct {
	Command     string   `json:"command"`
	Description string   `json:"description"`
	Usage       string   `json:"usage"`
	Examples    []string `json:"examples,omitempty"`
}

// HelpProvider is implemented by commands that carry examples beyond their usage line.
type HelpProvider interface {
	HelpInfo() HelpInfo
}
