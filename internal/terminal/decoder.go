package terminal

import (
	"bufio"
	"context"
	"io"
	"unicode/utf8"

	"github.com/chzyer/readline"

	"lineshell/pkg/shelltypes"
)

// Decoder turns a raw terminal byte stream into key events. Terminals in raw mode
// only report presses, so every event has Kind KeyPress.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// ReadEvent blocks for the next key. It returns io.EOF when the stream ends or
// ctx is already done.
func (d *Decoder) ReadEvent(ctx context.Context) (shelltypes.KeyEvent, error) {
	if ctx.Err() != nil {
		return shelltypes.KeyEvent{}, io.EOF
	}

	r, size, err := d.r.ReadRune()
	if err != nil {
		return shelltypes.KeyEvent{}, err
	}
	if r == utf8.RuneError && size == 1 {
		return shelltypes.SpecialEvent(shelltypes.KeyUnknown), nil
	}
	return d.decode(r), nil
}

func (d *Decoder) decode(r rune) shelltypes.KeyEvent {
	switch r {
	case readline.CharEnter:
		// Swallow the LF of a CRLF pair so it does not count as a second Enter.
		if next, err := d.peekByte(); err == nil && next == readline.CharCtrlJ {
			_, _ = d.r.ReadByte()
		}
		return shelltypes.SpecialEvent(shelltypes.KeyEnter)
	case readline.CharCtrlJ:
		return shelltypes.SpecialEvent(shelltypes.KeyEnter)
	case readline.CharBackspace, readline.CharCtrlH:
		return shelltypes.SpecialEvent(shelltypes.KeyBackspace)
	case readline.CharTab:
		return shelltypes.SpecialEvent(shelltypes.KeyTab)
	case readline.CharEsc:
		return d.escape()
	}

	if r < ' ' {
		return shelltypes.CtrlEvent('a' + r - 1)
	}
	return shelltypes.CharEvent(r)
}

// peekByte looks at the next byte only if it is already buffered, so decoding
// never blocks waiting for a sequence that may not come.
func (d *Decoder) peekByte() (byte, error) {
	if d.r.Buffered() == 0 {
		return 0, io.EOF
	}
	b, err := d.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) escape() shelltypes.KeyEvent {
	next, err := d.peekByte()
	if err != nil {
		return shelltypes.SpecialEvent(shelltypes.KeyEscape)
	}

	if next == readline.CharEscapeEx || next == readline.CharO {
		_, _ = d.r.ReadByte()
		return d.csi()
	}

	r, _, err := d.r.ReadRune()
	if err != nil {
		return shelltypes.SpecialEvent(shelltypes.KeyEscape)
	}
	return shelltypes.KeyEvent{Code: shelltypes.KeyChar, Rune: r, Kind: shelltypes.KeyPress, Modifiers: shelltypes.ModAlt}
}

// csi consumes the rest of a control sequence (parameters, intermediates and the
// final byte) and maps the common cursor keys.
func (d *Decoder) csi() shelltypes.KeyEvent {
	var params []byte
	for {
		b, err := d.peekByte()
		if err != nil {
			return shelltypes.SpecialEvent(shelltypes.KeyUnknown)
		}
		_, _ = d.r.ReadByte()

		switch {
		case b >= 0x20 && b <= 0x3f:
			params = append(params, b)
		case b >= 0x40 && b <= 0x7e:
			return csiKey(b, string(params))
		default:
			return shelltypes.SpecialEvent(shelltypes.KeyUnknown)
		}
	}
}

func csiKey(final byte, params string) shelltypes.KeyEvent {
	code := shelltypes.KeyUnknown
	switch final {
	case 'A':
		code = shelltypes.KeyUp
	case 'B':
		code = shelltypes.KeyDown
	case 'C':
		code = shelltypes.KeyRight
	case 'D':
		code = shelltypes.KeyLeft
	case 'H':
		code = shelltypes.KeyHome
	case 'F':
		code = shelltypes.KeyEnd
	case '~':
		switch params {
		case "1", "7":
			code = shelltypes.KeyHome
		case "3":
			code = shelltypes.KeyDelete
		case "4", "8":
			code = shelltypes.KeyEnd
		}
	}
	return shelltypes.SpecialEvent(code)
}
