package commands

import (
	"context"

	"lineshell/pkg/shelltypes"
)

// Command is an immutable named unit of behavior. It is shared by pointer between
// the registry and the dispatch call site, so it must never be mutated after New.
type Command struct {
	name        string
	description string
	usage       string
	executor    shelltypes.Executor
}

// New creates a command. Description and usage are optional; pass "" to omit them.
// The name must be non-empty; that is the caller's responsibility.
func New(name, description, usage string, executor shelltypes.Executor) *Command {
	return &Command{
		name:        name,
		description: description,
		usage:       usage,
		executor:    executor,
	}
}

// Definition is implemented by command types that carry their own metadata.
type Definition interface {
	shelltypes.Executor
	Name() string
	Description() string
	Usage() string
}

// From creates a command from a Definition.
func From(def Definition) *Command {
	return New(def.Name(), def.Description(), def.Usage(), def)
}

// NewFunc creates a command backed by a plain function.
func NewFunc(name, description, usage string, fn func(ctx context.Context, args []string) bool) *Command {
	return New(name, description, usage, shelltypes.ExecutorFunc(fn))
}

// Name returns the command name.
func (c *Command) Name() string {
	return c.name
}

// Description returns the optional one-line description.
func (c *Command) Description() string {
	return c.description
}

// Usage returns the optional usage text reported when execution fails.
func (c *Command) Usage() string {
	return c.usage
}

// Execute runs the executor synchronously and returns its success flag.
// A command without an executor always fails.
func (c *Command) Execute(ctx context.Context, args []string) bool {
	if c.executor == nil {
		return false
	}
	return c.executor.Execute(ctx, args)
}
