// Package shelltypes defines the shared types for lineshell.
// This file contains the key event model consumed by the event loop.
package shelltypes

import (
	"strings"
	"unicode"
)

// KeyCode identifies the key of a KeyEvent.
type KeyCode int

const (
	// KeyUnknown is any key the decoder could not classify
	KeyUnknown KeyCode = iota
	// KeyChar is a character key; the character is in KeyEvent.Rune
	KeyChar
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyDelete
)

var keyNames = map[KeyCode]string{
	KeyUnknown:   "Unknown",
	KeyChar:      "Char",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeyEscape:    "Esc",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyDelete:    "Delete",
}

// String returns the key name.
func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KeyKind distinguishes presses from repeats and releases. Plain terminals only
// report presses; richer sources may report the others.
type KeyKind int

const (
	// KeyPress is the only kind the event loop acts on
	KeyPress KeyKind = iota
	KeyRepeat
	KeyRelease
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

// ModNone means no modifier.
const ModNone Modifier = 0

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// Has reports whether all bits of m2 are set in m.
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

// KeyEvent is a single raw key event.
type KeyEvent struct {
	Code      KeyCode
	Rune      rune
	Kind      KeyKind
	Modifiers Modifier
}

// CharEvent builds a press event for a character.
func CharEvent(r rune) KeyEvent {
	return KeyEvent{Code: KeyChar, Rune: r, Kind: KeyPress}
}

// CtrlEvent builds a press event for Ctrl plus a character.
func CtrlEvent(r rune) KeyEvent {
	return KeyEvent{Code: KeyChar, Rune: r, Kind: KeyPress, Modifiers: ModCtrl}
}

// SpecialEvent builds a press event for a non-character key.
func SpecialEvent(code KeyCode) KeyEvent {
	return KeyEvent{Code: code, Kind: KeyPress}
}

// IsInterrupt reports whether the event is the Ctrl+C kill combination.
func (e KeyEvent) IsInterrupt() bool {
	return e.Code == KeyChar && e.Modifiers.Has(ModCtrl) && unicode.ToLower(e.Rune) == 'c'
}

// IsPrintable reports whether the event should be echoed and appended to the line.
func (e KeyEvent) IsPrintable() bool {
	if e.Code != KeyChar || e.Modifiers.Has(ModCtrl) || e.Modifiers.Has(ModAlt) {
		return false
	}
	return unicode.IsPrint(e.Rune)
}

// String returns a readable form such as "a", "C-c" or "Enter".
func (e KeyEvent) String() string {
	var parts []string
	if e.Modifiers.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Modifiers.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Modifiers.Has(ModShift) && e.Code != KeyChar {
		parts = append(parts, "S")
	}
	if e.Code == KeyChar {
		parts = append(parts, string(e.Rune))
	} else {
		parts = append(parts, e.Code.String())
	}
	return strings.Join(parts, "-")
}
