package shell

import (
	"context"
	"fmt"
	"strings"

	"lineshell/internal/commands"
	"lineshell/internal/logger"
	"lineshell/pkg/shelltypes"
)

// Dispatcher turns a submitted line into a command invocation.
type Dispatcher struct {
	state    *State
	renderer *Renderer
	newID    func() string
}

// NewDispatcher creates a dispatcher. newID supplies invocation ids for the
// diagnostic log.
func NewDispatcher(state *State, renderer *Renderer, newID func() string) *Dispatcher {
	return &Dispatcher{
		state:    state,
		renderer: renderer,
		newID:    newID,
	}
}

// Dispatch splits line on whitespace, looks up the command named by the first
// field and runs it with the remaining fields. It must be called without holding
// the state lock; the command runs with no lock held.
// Only renderer failures are returned.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]

	var (
		cmd        *commands.Command
		suggestion string
		suggested  bool
	)
	_ = d.state.WithRead(func(v ReadView) error {
		cmd = v.Lookup(name)
		if cmd == nil {
			suggestion, suggested = v.Suggest(name)
		}
		return nil
	})

	if cmd == nil {
		msg := "Command not found: " + name
		if suggested {
			msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
		}
		return d.renderer.Render(shelltypes.LevelWarn, msg)
	}

	invocation := d.newID()
	logger.CommandExecution(name, args, invocation)

	if d.execute(ctx, cmd, args, invocation) {
		return nil
	}

	logger.Debug("Command failed", "command", name, "invocation", invocation)
	if cmd.Usage() == "" {
		return nil
	}
	return d.renderer.Render(shelltypes.LevelWarn, cmd.Usage())
}

// execute runs cmd and reports a panic as failure.
func (d *Dispatcher) execute(ctx context.Context, cmd *commands.Command, args []string, invocation string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Command panicked", "command", cmd.Name(), "panic", r, "invocation", invocation)
			ok = false
		}
	}()
	return cmd.Execute(ctx, args)
}
