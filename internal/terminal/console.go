package terminal

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/chzyer/readline"
)

// ErrClosed is returned by operations on a closed console.
var ErrClosed = errors.New("console closed")

// Console owns the input side of the terminal: raw mode and a cancelable reader.
type Console struct {
	fd    int
	raw   bool
	state *readline.State
	stdin *readline.CancelableStdin

	mu     sync.Mutex
	closed bool
}

// OpenConsole puts in into raw mode when it is a terminal (no line buffering, no
// echo, no signal generation) and wraps it in a reader that Close can unblock.
// Non-terminal inputs such as pipes are read as-is.
func OpenConsole(in *os.File) (*Console, error) {
	c := &Console{fd: int(in.Fd())}

	if readline.IsTerminal(c.fd) {
		state, err := readline.MakeRaw(c.fd)
		if err != nil {
			return nil, err
		}
		c.state = state
		c.raw = true
	}

	c.stdin = readline.NewCancelableStdin(in)
	return c, nil
}

// Reader returns the cancelable input stream.
func (c *Console) Reader() io.Reader {
	return c.stdin
}

// IsRaw reports whether the console switched the terminal into raw mode.
func (c *Console) IsRaw() bool {
	return c.raw
}

// Restore returns the terminal to the mode it had before OpenConsole.
// It is safe to call more than once.
func (c *Console) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restoreLocked()
}

func (c *Console) restoreLocked() error {
	if c.state == nil {
		return nil
	}
	err := readline.Restore(c.fd, c.state)
	c.state = nil
	return err
}

// Close unblocks pending reads, which then report io.EOF, and restores the terminal.
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.closed = true

	_ = c.stdin.Close()
	return c.restoreLocked()
}
