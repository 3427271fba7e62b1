package builtin

import (
	"context"
	"strings"

	"lineshell/pkg/shelltypes"
)

// EchoCommand implements the echo command, which prints its arguments.
type EchoCommand struct {
	out shelltypes.Logger
}

// NewEchoCommand creates an echo command writing to out.
func NewEchoCommand(out shelltypes.Logger) *EchoCommand {
	return &EchoCommand{out: out}
}

// Name returns the command name "echo" for registration and lookup.
func (c *EchoCommand) Name() string {
	return "echo"
}

// Description returns a brief description of what the echo command does.
func (c *EchoCommand) Description() string {
	return "Print the arguments separated by spaces"
}

// Usage returns the syntax of the echo command.
func (c *EchoCommand) Usage() string {
	return "Usage: echo <text>..."
}

// Execute prints args joined by single spaces. Echo without arguments fails.
func (c *EchoCommand) Execute(_ context.Context, args []string) bool {
	if len(args) == 0 {
		return false
	}
	return c.out.Logf(shelltypes.LevelInfo, "%s", strings.Join(args, " ")) == nil
}
