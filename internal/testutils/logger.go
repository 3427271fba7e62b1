package testutils

import (
	"fmt"
	"sync"

	"lineshell/pkg/shelltypes"
)

// LogEntry is one message captured by LogRecorder.
type LogEntry struct {
	Level   shelltypes.Level
	Message string
}

// LogRecorder is a shelltypes.Logger that keeps every message in memory.
// Setting Err makes Logf fail without recording.
type LogRecorder struct {
	mu      sync.Mutex
	entries []LogEntry
	Err     error
}

// Logf implements shelltypes.Logger.
func (l *LogRecorder) Logf(level shelltypes.Level, format string, args ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	l.entries = append(l.entries, LogEntry{Level: level, Message: fmt.Sprintf(format, args...)})
	return nil
}

// Entries returns a copy of the recorded messages.
func (l *LogRecorder) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// Last returns the most recent message, or the zero entry.
func (l *LogRecorder) Last() LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return LogEntry{}
	}
	return l.entries[len(l.entries)-1]
}
