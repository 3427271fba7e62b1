package shell

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"lineshell/internal/logger"
	"lineshell/internal/terminal"
	"lineshell/pkg/shelltypes"
)

// EventLoop reads key events, edits the input line and hands submitted lines to
// the dispatcher.
type EventLoop struct {
	state      *State
	renderer   *Renderer
	dispatcher *Dispatcher
	device     *terminal.Device
	source     shelltypes.EventSource
	prompt     string
	interrupt  func()
}

// NewEventLoop wires a loop. interrupt is called on Ctrl+C; it is expected to
// restore the terminal and end the process.
func NewEventLoop(state *State, renderer *Renderer, dispatcher *Dispatcher, device *terminal.Device,
	source shelltypes.EventSource, prompt string, interrupt func()) *EventLoop {
	return &EventLoop{
		state:      state,
		renderer:   renderer,
		dispatcher: dispatcher,
		device:     device,
		source:     source,
		prompt:     prompt,
		interrupt:  interrupt,
	}
}

// Run processes events until the source is exhausted or ctx is cancelled, which
// both return nil. Read errors are rendered and skipped. A terminal write failure
// stops the loop and is returned.
func (l *EventLoop) Run(ctx context.Context) error {
	for {
		ev, err := l.source.ReadEvent(ctx)
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			logger.Debug("Event loop finished")
			return nil
		}
		if err != nil {
			if rerr := l.renderer.Render(shelltypes.LevelError, "event source: "+err.Error()); rerr != nil {
				return rerr
			}
			continue
		}

		if err := l.Handle(ctx, ev); err != nil {
			logger.Error("Event loop stopped", "error", err)
			return err
		}
	}
}

// Handle applies a single key event.
func (l *EventLoop) Handle(ctx context.Context, ev shelltypes.KeyEvent) error {
	if ev.Kind != shelltypes.KeyPress {
		return nil
	}

	switch {
	case ev.IsInterrupt():
		l.interrupt()
		return nil
	case ev.Code == shelltypes.KeyBackspace:
		return l.backspace()
	case ev.Code == shelltypes.KeyEnter:
		return l.submit(ctx)
	case ev.IsPrintable():
		return l.insert(ev.Rune)
	default:
		return nil
	}
}

func (l *EventLoop) insert(r rune) error {
	return l.state.WithWrite(func(v *WriteView) error {
		if err := new(terminal.Frame).Text(string(r)).Flush(l.device); err != nil {
			return err
		}
		v.Append(r)
		return nil
	})
}

func (l *EventLoop) backspace() error {
	return l.state.WithWrite(func(v *WriteView) error {
		r, ok := v.Pop()
		if !ok {
			return nil
		}
		return new(terminal.Frame).
			Left(max(ansi.StringWidth(string(r)), 1)).
			ClearRight().
			Flush(l.device)
	})
}

func (l *EventLoop) submit(ctx context.Context) error {
	var line string
	err := l.state.WithWrite(func(v *WriteView) error {
		if err := new(terminal.Frame).Newline().Column0().Text(l.prompt).Flush(l.device); err != nil {
			return err
		}
		line = v.Drain()
		return nil
	})
	if err != nil {
		return err
	}

	if strings.TrimSpace(line) == "" {
		return nil
	}
	return l.dispatcher.Dispatch(ctx, line)
}
