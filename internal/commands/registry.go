// Package commands provides command registration and dispatch for Kaya.
// It maps command names to handlers and invokes them with the handler
// environment bound at construction.
package commands

import (
	"fmt"
	"sort"
	"sync"

	"kaya/internal/logger"
	"kaya/pkg/kayatypes"
)

// UnknownCommandError is returned by Dispatch when no handler is registered
// under the requested name.
type UnknownCommandError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Name)
}

// Registry manages command registration and lookup.
// It provides thread-safe registration and retrieval of commands by name.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]kayatypes.Command
	ctx      kayatypes.Context
}

// NewRegistry creates an empty registry whose handlers will receive ctx.
func NewRegistry(ctx kayatypes.Context) *Registry {
	return &Registry{
		commands: make(map[string]kayatypes.Command),
		ctx:      ctx,
	}
}

// Register adds a command to the registry. Returns an error if the command
// name is empty or if a command with the same name is already registered.
// Names are matched exactly; callers register lower-case names because the
// parser folds input to lower case.
func (r *Registry) Register(cmd kayatypes.Command) error {
	if cmd == nil {
		return fmt.Errorf("command cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cmd.Name() == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	if _, exists := r.commands[cmd.Name()]; exists {
		return fmt.Errorf("command %s already registered", cmd.Name())
	}

	r.commands[cmd.Name()] = cmd
	return nil
}

// RegisterFunc registers a plain handler function under name.
func (r *Registry) RegisterFunc(name, description string, fn kayatypes.HandlerFunc) error {
	if fn == nil {
		return fmt.Errorf("handler for %s cannot be nil", name)
	}
	return r.Register(&funcCommand{name: name, description: description, fn: fn})
}

// Get retrieves a command by name. Returns the command and true if found,
// or nil and false if the command is not registered.
func (r *Registry) Get(name string) (kayatypes.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// All returns the registered commands sorted by name.
// The returned slice is a copy and can be safely modified.
func (r *Registry) All() []kayatypes.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]kayatypes.Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	cmds := r.All()
	names := make([]string, len(cmds))
	for i, cmd := range cmds {
		names[i] = cmd.Name()
	}
	return names
}

// IsValidCommand checks if a command exists in the registry.
func (r *Registry) IsValidCommand(name string) bool {
	_, exists := r.Get(name)
	return exists
}

// Dispatch runs the command registered under name with params and returns its
// text result. An unregistered name yields *UnknownCommandError; handler errors
// are returned unchanged.
func (r *Registry) Dispatch(name string, params kayatypes.Params) (string, error) {
	cmd, exists := r.Get(name)
	if !exists {
		return "", &UnknownCommandError{Name: name}
	}
	logger.CommandExecution(name, params)
	return cmd.Execute(r.ctx, params)
}

type funcCommand struct {
	name        string
	description string
	fn          kayatypes.HandlerFunc
}

func (c *funcCommand) Name() string        { return c.name }
func (c *funcCommand) Description() string { return c.description }
func (c *funcCommand) Usage() string       { return c.name }

func (c *funcCommand) Execute(ctx kayatypes.Context, params kayatypes.Params) (string, error) {
	return c.fn(ctx, params)
}
