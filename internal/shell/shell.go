// Package shell provides the interactive line shell: a raw-keystroke event loop
// that keeps the prompt and the line being typed intact while other goroutines
// log messages, and dispatches submitted lines to registered commands.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/muesli/termenv"

	"lineshell/internal/commands"
	"lineshell/internal/logger"
	"lineshell/internal/terminal"
	"lineshell/pkg/shelltypes"
)

// DefaultPrompt is drawn in front of the input line when Options.Prompt is empty.
const DefaultPrompt = "> "

// InterruptExitCode is the process status after Ctrl+C.
const InterruptExitCode = 130

// Options configures Initialize. The zero value runs on the process terminal.
type Options struct {
	// Level is the minimum level of rendered messages.
	Level shelltypes.Level
	// Prompt defaults to DefaultPrompt.
	Prompt string
	// Color enables red errors and yellow warnings.
	Color bool

	// Input is put into raw mode and decoded when Source is nil. Defaults to os.Stdin.
	Input *os.File
	// Output defaults to os.Stdout.
	Output io.Writer
	// Source replaces the terminal input, mainly for tests and embedding.
	Source shelltypes.EventSource

	// Exit ends the process after Ctrl+C. Defaults to os.Exit.
	Exit func(code int)
	// NewID generates session and invocation ids. Defaults to uuid.NewString.
	NewID func() string
}

// Shell is a running shell. It is created by Initialize and safe for concurrent use.
type Shell struct {
	id string

	state    *State
	renderer *Renderer
	loop     *EventLoop
	console  *terminal.Console

	cancel     context.CancelFunc
	restoreLog func()
	exit       func(int)

	done chan struct{}
	err  error

	closeOnce sync.Once
	closeErr  error
}

// Initialize prepares the terminal, draws the prompt and starts the event loop in
// its own goroutine. ctx bounds the loop and is passed on to every command.
func Initialize(ctx context.Context, opts Options) (*Shell, error) {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Exit == nil {
		opts.Exit = os.Exit
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	s := &Shell{
		id:         opts.NewID(),
		exit:       opts.Exit,
		restoreLog: func() {},
		done:       make(chan struct{}),
	}

	device := terminal.NewDevice(opts.Output)
	s.state = NewState(opts.Level, commands.NewRegistry())
	s.renderer = NewRenderer(s.state, device, opts.Prompt, opts.Color)

	source := opts.Source
	if source == nil {
		console, err := terminal.OpenConsole(opts.Input)
		if err != nil {
			return nil, err
		}
		s.console = console
		source = terminal.NewDecoder(console.Reader())
	}

	profile := termenv.Ascii
	if opts.Color {
		profile = termenv.ANSI256
	}
	s.restoreLog = sync.OnceFunc(logger.Redirect(s.renderer.Writer(), profile))

	if err := s.renderer.Prompt(); err != nil {
		_ = s.restoreTerminal()
		return nil, err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	dispatcher := NewDispatcher(s.state, s.renderer, opts.NewID)
	s.loop = NewEventLoop(s.state, s.renderer, dispatcher, device, source, opts.Prompt, s.interrupt)

	logger.Debug("Shell initialized", "session", s.id, "raw", s.console != nil && s.console.IsRaw())

	go func() {
		defer close(s.done)
		s.err = s.loop.Run(loopCtx)
	}()

	return s, nil
}

// ID returns the session id.
func (s *Shell) ID() string {
	return s.id
}

// Registry returns the command registry.
func (s *Shell) Registry() *commands.Registry {
	return s.state.registry
}

// Register adds a command, replacing any command with the same name.
func (s *Shell) Register(name, description, usage string, executor shelltypes.Executor) {
	s.RegisterCommand(commands.New(name, description, usage, executor))
}

// RegisterCommand adds cmd, replacing any command with the same name.
func (s *Shell) RegisterCommand(cmd *commands.Command) {
	_ = s.state.WithWrite(func(v *WriteView) error {
		v.Register(cmd)
		return nil
	})
	logger.Debug("Registered command", "command", cmd.Name())
}

// SetLevel changes the minimum level of rendered messages.
func (s *Shell) SetLevel(level shelltypes.Level) {
	_ = s.state.WithWrite(func(v *WriteView) error {
		v.SetLevel(level)
		return nil
	})
}

// Renderer returns the renderer.
func (s *Shell) Renderer() *Renderer {
	return s.renderer
}

// Logf renders a message above the prompt.
func (s *Shell) Logf(level shelltypes.Level, format string, args ...interface{}) error {
	return s.renderer.Logf(level, format, args...)
}

// Tracef renders at trace level.
func (s *Shell) Tracef(format string, args ...interface{}) error {
	return s.renderer.Tracef(format, args...)
}

// Debugf renders at debug level.
func (s *Shell) Debugf(format string, args ...interface{}) error {
	return s.renderer.Debugf(format, args...)
}

// Infof renders at info level.
func (s *Shell) Infof(format string, args ...interface{}) error {
	return s.renderer.Infof(format, args...)
}

// Warnf renders at warn level.
func (s *Shell) Warnf(format string, args ...interface{}) error {
	return s.renderer.Warnf(format, args...)
}

// Errorf renders at error level.
func (s *Shell) Errorf(format string, args ...interface{}) error {
	return s.renderer.Errorf(format, args...)
}

// Wait blocks until the event loop ends and returns the error that ended it.
func (s *Shell) Wait() error {
	<-s.done
	return s.err
}

// Done is closed when the event loop has ended.
func (s *Shell) Done() <-chan struct{} {
	return s.done
}

// Close cancels the command context, stops reading input and restores the
// terminal and the diagnostic logger. It does not wait for a running command.
func (s *Shell) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.closeErr = s.restoreTerminal()
		logger.Debug("Shell closed", "session", s.id)
	})
	return s.closeErr
}

func (s *Shell) restoreTerminal() error {
	s.restoreLog()
	if s.console == nil {
		return nil
	}
	if err := s.console.Close(); err != nil && !errors.Is(err, terminal.ErrClosed) {
		return err
	}
	return nil
}

func (s *Shell) interrupt() {
	logger.Debug("Interrupted", "session", s.id)
	if s.console != nil {
		_ = s.console.Restore()
	}
	s.restoreLog()
	s.exit(InterruptExitCode)
}
