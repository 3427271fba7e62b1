package terminal

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineshell/internal/testutils"
)

func TestDevice_WriteString(t *testing.T) {
	buf := testutils.NewCaptureBuffer()
	dev := NewDevice(buf)

	require.NoError(t, dev.WriteString("hello"))
	require.NoError(t, dev.WriteString(""))
	assert.Equal(t, "hello", buf.String())
}

func TestDevice_WriteError(t *testing.T) {
	boom := errors.New("device gone")
	dev := NewDevice(testutils.FailingWriter{Err: boom})

	err := dev.WriteString("x")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "terminal write")
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

func TestDevice_ShortWrite(t *testing.T) {
	err := NewDevice(shortWriter{}).WriteString("abc")
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestDevice_ConcurrentWritesDoNotInterleave(t *testing.T) {
	buf := testutils.NewCaptureBuffer()
	dev := NewDevice(buf)

	chunks := []string{"aaaa|", "bbbb|", "cccc|", "dddd|"}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, c := range chunks {
			wg.Add(1)
			go func(s string) {
				defer wg.Done()
				assert.NoError(t, dev.WriteString(s))
			}(c)
		}
	}
	wg.Wait()

	for _, part := range strings.Split(strings.TrimSuffix(buf.String(), "|"), "|") {
		assert.Contains(t, []string{"aaaa", "bbbb", "cccc", "dddd"}, part)
	}
}

func TestFrame_Build(t *testing.T) {
	red := ansi.Style{}.ForegroundColor(ansi.Red)

	f := new(Frame).
		Column0().
		ClearLine().
		Styled(red, "[ERROR] x").
		Newline().
		Left(2).
		Left(0).
		ClearRight().
		Styled(nil, "plain").
		Text("> ")

	want := "\x1b[1G" + "\x1b[2K" + red.Styled("[ERROR] x") + "\n" + "\x1b[2D" + "\x1b[K" + "plain" + "> "
	assert.Equal(t, want, f.String())
	assert.True(t, strings.HasSuffix(red.Styled("x"), ansi.ResetStyle))
}

func TestFrame_Flush(t *testing.T) {
	buf := testutils.NewCaptureBuffer()
	require.NoError(t, new(Frame).Text("abc").Flush(NewDevice(buf)))
	assert.Equal(t, "abc", buf.String())
}

func TestOpenConsole_NonTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer w.Close()

	console, err := OpenConsole(r)
	require.NoError(t, err)
	assert.False(t, console.IsRaw(), "a pipe is never switched to raw mode")

	_, err = w.Write([]byte("hi"))
	require.NoError(t, err)

	buf := make([]byte, 2)
	n, err := io.ReadFull(console.Reader(), buf)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(buf[:n]))

	require.NoError(t, console.Restore())
	require.NoError(t, console.Close())
	assert.ErrorIs(t, console.Close(), ErrClosed)

	_, err = console.Reader().Read(buf)
	assert.ErrorIs(t, err, io.EOF, "reads after Close report end of stream")
}
