// Package shelltypes defines the shared types for lineshell.
// This file contains the interfaces that connect the core to its collaborators.
package shelltypes

import "context"

// Executor is the behavior behind a command. It runs synchronously on the
// goroutine that dispatched it, with no shell lock held, and reports success.
// The context is cancelled when the shell shuts down; long-running executors
// should check it.
type Executor interface {
	Execute(ctx context.Context, args []string) bool
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, args []string) bool

// Execute calls f(ctx, args).
func (f ExecutorFunc) Execute(ctx context.Context, args []string) bool {
	return f(ctx, args)
}

// EventSource supplies raw key events. ReadEvent blocks until an event is
// available and returns io.EOF once the source is exhausted.
type EventSource interface {
	ReadEvent(ctx context.Context) (KeyEvent, error)
}

// Logger is the logging call surface handed to commands. Messages are rendered
// above the prompt; a non-nil error means the terminal could not be written.
type Logger interface {
	Logf(level Level, format string, args ...interface{}) error
}
