// Package shelltypes defines the shared types for lineshell.
// This file contains the severity levels used to filter and color rendered messages.
package shelltypes

import (
	"fmt"
	"strings"
)

// Level is the severity of a rendered message. Levels are ordered so that
// comparisons decide whether a message passes the configured minimum.
type Level int

const (
	// LevelTrace is the most verbose level
	LevelTrace Level = iota
	// LevelDebug is for diagnostic detail
	LevelDebug
	// LevelInfo is the default level
	LevelInfo
	// LevelWarn marks user-level problems such as unknown commands
	LevelWarn
	// LevelError marks failures
	LevelError
)

// Levels lists every level in ascending order.
var Levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// String returns the upper-case label printed inside the "[LEVEL]" prefix.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Enabled reports whether a message at level msg passes minimum l.
func (l Level) Enabled(msg Level) bool {
	return msg >= l
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive and
// accepts "warning" as an alias for "warn".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid level %q (expected trace|debug|info|warn|error)", s)
	}
}
