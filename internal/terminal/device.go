// Package terminal provides the terminal collaborators of the shell core: the
// output device, the raw-mode console and the byte-to-key decoder.
package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Device is the character sink the shell draws on. Each write is atomic with
// respect to other writes on the same Device.
type Device struct {
	mu sync.Mutex
	w  io.Writer
}

// NewDevice wraps w as a terminal device.
func NewDevice(w io.Writer) *Device {
	return &Device{w: w}
}

// WriteString writes s in a single call. A short write is reported as
// io.ErrShortWrite; the device is not retried.
func (d *Device) WriteString(s string) error {
	if s == "" {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := io.WriteString(d.w, s)
	if err != nil {
		return fmt.Errorf("terminal write: %w", err)
	}
	if n != len(s) {
		return fmt.Errorf("terminal write: %w", io.ErrShortWrite)
	}
	return nil
}

// Frame accumulates control sequences and text so that a whole redraw reaches the
// device in one write.
type Frame struct {
	buf []byte
}

// Column0 moves the cursor to the first column.
func (f *Frame) Column0() *Frame {
	f.buf = append(f.buf, ansi.CursorHorizontalAbsolute(1)...)
	return f
}

// ClearLine erases the whole current line without moving the cursor.
func (f *Frame) ClearLine() *Frame {
	f.buf = append(f.buf, ansi.EraseEntireLine...)
	return f
}

// ClearRight erases from the cursor to the end of the line.
func (f *Frame) ClearRight() *Frame {
	f.buf = append(f.buf, ansi.EraseLineRight...)
	return f
}

// Left moves the cursor n cells left.
func (f *Frame) Left(n int) *Frame {
	if n > 0 {
		f.buf = append(f.buf, ansi.CursorBackward(n)...)
	}
	return f
}

// Newline emits a line feed.
func (f *Frame) Newline() *Frame {
	f.buf = append(f.buf, '\n')
	return f
}

// Text appends plain text.
func (f *Frame) Text(s string) *Frame {
	f.buf = append(f.buf, s...)
	return f
}

// Styled appends s wrapped in style and a reset. An empty style writes s plainly.
func (f *Frame) Styled(style ansi.Style, s string) *Frame {
	if len(style) == 0 {
		return f.Text(s)
	}
	f.buf = append(f.buf, style.Styled(s)...)
	return f
}

// String returns the accumulated bytes.
func (f *Frame) String() string {
	return string(f.buf)
}

// Flush writes the frame to d in one call.
func (f *Frame) Flush(d *Device) error {
	return d.WriteString(f.String())
}
