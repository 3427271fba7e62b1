package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"lineshell/internal/terminal"
	"lineshell/pkg/shelltypes"
)

var (
	errorStyle = ansi.Style{}.ForegroundColor(ansi.Red)
	warnStyle  = ansi.Style{}.ForegroundColor(ansi.Yellow)
)

// Renderer writes log lines above the prompt and redraws the prompt with the
// line being typed, so output never clobbers user input.
type Renderer struct {
	state  *State
	device *terminal.Device
	prompt string
	color  bool
}

// NewRenderer creates a renderer drawing on device. When color is false no SGR
// sequences are written.
func NewRenderer(state *State, device *terminal.Device, prompt string, color bool) *Renderer {
	return &Renderer{
		state:  state,
		device: device,
		prompt: prompt,
		color:  color,
	}
}

// Render prints "[LEVEL] message" on the current line and redraws the prompt
// below it. Messages below the configured level are dropped. The frame is written
// while the input is read-locked, so it always shows a whole keystroke's state.
func (r *Renderer) Render(level shelltypes.Level, message string) error {
	return r.state.WithRead(func(v ReadView) error {
		if !v.Level().Enabled(level) {
			return nil
		}

		frame := new(terminal.Frame).
			Column0().
			ClearLine().
			Styled(r.style(level), fmt.Sprintf("[%s] %s", level, message))
		return r.redraw(frame, v).Flush(r.device)
	})
}

// Logf formats a message and renders it at level.
func (r *Renderer) Logf(level shelltypes.Level, format string, args ...interface{}) error {
	return r.Render(level, fmt.Sprintf(format, args...))
}

// Tracef renders at trace level.
func (r *Renderer) Tracef(format string, args ...interface{}) error {
	return r.Logf(shelltypes.LevelTrace, format, args...)
}

// Debugf renders at debug level.
func (r *Renderer) Debugf(format string, args ...interface{}) error {
	return r.Logf(shelltypes.LevelDebug, format, args...)
}

// Infof renders at info level.
func (r *Renderer) Infof(format string, args ...interface{}) error {
	return r.Logf(shelltypes.LevelInfo, format, args...)
}

// Warnf renders at warn level.
func (r *Renderer) Warnf(format string, args ...interface{}) error {
	return r.Logf(shelltypes.LevelWarn, format, args...)
}

// Errorf renders at error level.
func (r *Renderer) Errorf(format string, args ...interface{}) error {
	return r.Logf(shelltypes.LevelError, format, args...)
}

// Prompt draws the prompt and the current input on a cleared line.
func (r *Renderer) Prompt() error {
	return r.state.WithRead(func(v ReadView) error {
		return new(terminal.Frame).
			Column0().
			ClearLine().
			Text(r.prompt).
			Text(v.Input()).
			Flush(r.device)
	})
}

// Writer returns an io.Writer whose writes are printed above the prompt as they
// are, without a level prefix or level filtering.
func (r *Renderer) Writer() io.Writer {
	return rendererWriter{r}
}

func (r *Renderer) redraw(frame *terminal.Frame, v ReadView) *terminal.Frame {
	return frame.
		Newline().
		Column0().
		Text(r.prompt).
		Text(v.Input())
}

func (r *Renderer) style(level shelltypes.Level) ansi.Style {
	if !r.color {
		return nil
	}
	switch level {
	case shelltypes.LevelError:
		return errorStyle
	case shelltypes.LevelWarn:
		return warnStyle
	default:
		return nil
	}
}

type rendererWriter struct {
	r *Renderer
}

func (w rendererWriter) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	err := w.r.state.WithRead(func(v ReadView) error {
		frame := new(terminal.Frame).Column0().ClearLine().Text(text)
		return w.r.redraw(frame, v).Flush(w.r.device)
	})
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
