package terminal

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineshell/pkg/shelltypes"
)

func readAll(t *testing.T, input string) []shelltypes.KeyEvent {
	t.Helper()

	dec := NewDecoder(strings.NewReader(input))
	var events []shelltypes.KeyEvent
	for {
		ev, err := dec.ReadEvent(context.Background())
		if errors.Is(err, io.EOF) {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestDecoder_Characters(t *testing.T) {
	events := readAll(t, "ab é")

	require.Len(t, events, 4)
	assert.Equal(t, shelltypes.CharEvent('a'), events[0])
	assert.Equal(t, shelltypes.CharEvent('b'), events[1])
	assert.Equal(t, shelltypes.CharEvent(' '), events[2])
	assert.Equal(t, shelltypes.CharEvent('é'), events[3])
	for _, ev := range events {
		assert.Equal(t, shelltypes.KeyPress, ev.Kind)
	}
}

func TestDecoder_ControlKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  shelltypes.KeyEvent
	}{
		{"carriage return", "\r", shelltypes.SpecialEvent(shelltypes.KeyEnter)},
		{"line feed", "\n", shelltypes.SpecialEvent(shelltypes.KeyEnter)},
		{"delete byte", "\x7f", shelltypes.SpecialEvent(shelltypes.KeyBackspace)},
		{"ctrl h", "\x08", shelltypes.SpecialEvent(shelltypes.KeyBackspace)},
		{"tab", "\t", shelltypes.SpecialEvent(shelltypes.KeyTab)},
		{"ctrl c", "\x03", shelltypes.CtrlEvent('c')},
		{"ctrl d", "\x04", shelltypes.CtrlEvent('d')},
		{"lone escape", "\x1b", shelltypes.SpecialEvent(shelltypes.KeyEscape)},
		{"invalid utf8", "\xff", shelltypes.SpecialEvent(shelltypes.KeyUnknown)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := readAll(t, tt.input)
			require.Len(t, events, 1)
			assert.Equal(t, tt.want, events[0])
		})
	}
}

func TestDecoder_CRLFIsOneEnter(t *testing.T) {
	events := readAll(t, "x\r\ny")

	require.Len(t, events, 3)
	assert.Equal(t, shelltypes.KeyEnter, events[1].Code)
	assert.Equal(t, shelltypes.CharEvent('y'), events[2])
}

func TestDecoder_EscapeSequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  shelltypes.KeyCode
	}{
		{"up", "\x1b[A", shelltypes.KeyUp},
		{"down", "\x1b[B", shelltypes.KeyDown},
		{"right", "\x1b[C", shelltypes.KeyRight},
		{"left", "\x1b[D", shelltypes.KeyLeft},
		{"home", "\x1b[H", shelltypes.KeyHome},
		{"end ss3", "\x1bOF", shelltypes.KeyEnd},
		{"delete", "\x1b[3~", shelltypes.KeyDelete},
		{"home tilde", "\x1b[1~", shelltypes.KeyHome},
		{"end tilde", "\x1b[4~", shelltypes.KeyEnd},
		{"modified arrow", "\x1b[1;5C", shelltypes.KeyRight},
		{"unknown final", "\x1b[Z", shelltypes.KeyUnknown},
		{"truncated", "\x1b[1;", shelltypes.KeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := readAll(t, tt.input)
			require.Len(t, events, 1, "the whole sequence must decode to a single event")
			assert.Equal(t, tt.want, events[0].Code)
		})
	}
}

func TestDecoder_SequenceFollowedByText(t *testing.T) {
	events := readAll(t, "\x1b[Aok")

	require.Len(t, events, 3)
	assert.Equal(t, shelltypes.KeyUp, events[0].Code)
	assert.Equal(t, shelltypes.CharEvent('o'), events[1])
	assert.Equal(t, shelltypes.CharEvent('k'), events[2])
}

func TestDecoder_AltCharacter(t *testing.T) {
	events := readAll(t, "\x1bx")

	require.Len(t, events, 1)
	assert.Equal(t, shelltypes.KeyChar, events[0].Code)
	assert.Equal(t, 'x', events[0].Rune)
	assert.True(t, events[0].Modifiers.Has(shelltypes.ModAlt))
	assert.False(t, events[0].IsPrintable())
}

func TestDecoder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDecoder(strings.NewReader("abc")).ReadEvent(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

type errReader struct{ err error }

func (r errReader) Read(_ []byte) (int, error) { return 0, r.err }

func TestDecoder_PropagatesReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewDecoder(errReader{boom}).ReadEvent(context.Background())
	assert.ErrorIs(t, err, boom)
}
