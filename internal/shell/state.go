package shell

import (
	"sync"

	"lineshell/internal/commands"
	"lineshell/pkg/shelltypes"
)

// State is the data shared by the event loop, the renderer and the dispatcher:
// the line being typed, the minimum render level and the command registry.
// It is only reachable through WithRead and WithWrite.
type State struct {
	mu       sync.RWMutex
	input    []rune
	level    shelltypes.Level
	registry *commands.Registry
}

// NewState creates an empty state that renders messages at or above level.
func NewState(level shelltypes.Level, registry *commands.Registry) *State {
	if registry == nil {
		registry = commands.NewRegistry()
	}
	return &State{
		level:    level,
		registry: registry,
	}
}

// WithRead runs fn with shared access. Any number of readers may run at once.
func (s *State) WithRead(fn func(v ReadView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(ReadView{s: s})
}

// WithWrite runs fn with exclusive access.
func (s *State) WithWrite(fn func(v *WriteView) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&WriteView{ReadView{s: s}})
}

// ReadView is the read-only face of State inside WithRead.
type ReadView struct {
	s *State
}

// Input returns the current line.
func (v ReadView) Input() string {
	return string(v.s.input)
}

// Len returns the number of runes in the current line.
func (v ReadView) Len() int {
	return len(v.s.input)
}

// Level returns the minimum render level.
func (v ReadView) Level() shelltypes.Level {
	return v.s.level
}

// Lookup returns the command registered under name, or nil.
func (v ReadView) Lookup(name string) *commands.Command {
	cmd, ok := v.s.registry.Get(name)
	if !ok {
		return nil
	}
	return cmd
}

// Suggest returns the registered name closest to name, if any is close enough.
func (v ReadView) Suggest(name string) (string, bool) {
	return v.s.registry.Suggest(name)
}

// Registry returns the command registry.
func (v ReadView) Registry() *commands.Registry {
	return v.s.registry
}

// WriteView is the mutable face of State inside WithWrite.
type WriteView struct {
	ReadView
}

// Append adds r to the end of the line.
func (v *WriteView) Append(r rune) {
	v.s.input = append(v.s.input, r)
}

// Pop removes and returns the last rune of the line.
func (v *WriteView) Pop() (rune, bool) {
	n := len(v.s.input)
	if n == 0 {
		return 0, false
	}
	r := v.s.input[n-1]
	v.s.input = v.s.input[:n-1]
	return r, true
}

// Drain returns the line and leaves it empty.
func (v *WriteView) Drain() string {
	line := string(v.s.input)
	v.s.input = v.s.input[:0]
	return line
}

// Clear empties the line.
func (v *WriteView) Clear() {
	v.s.input = v.s.input[:0]
}

// SetLevel changes the minimum render level.
func (v *WriteView) SetLevel(level shelltypes.Level) {
	v.s.level = level
}

// Register adds cmd to the registry, replacing any command with the same name.
func (v *WriteView) Register(cmd *commands.Command) {
	v.s.registry.Add(cmd)
}
