package builtin

import (
	"kaya/pkg/kayatypes"
)

// EchoCommand returns its remainder unchanged.
type EchoCommand struct{}

// Name returns the command name "echo" for registration and lookup.
func (c *EchoCommand) Name() string {
	return "echo"
}

// Description returns a brief description of what the echo command does.
func (c *EchoCommand) Description() string {
	return "Print text"
}

// Usage returns the syntax of the echo command.
func (c *EchoCommand) Usage() string {
	return "echo <text>"
}

// Execute returns the raw remainder. Quotes and key=value pairs are not
// interpreted; what was typed is what is printed.
func (c *EchoCommand) Execute(_ kayatypes.Context, params kayatypes.Params) (string, error) {
	if params.IsAbsent() {
		return "Usage: " + c.Usage(), nil
	}
	return params.Raw(), nil
}
