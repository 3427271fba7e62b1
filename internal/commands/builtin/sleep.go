package builtin

import (
	"context"
	"strconv"
	"time"

	"lineshell/pkg/shelltypes"
)

// SleepCommand implements the sleep command. It blocks the event loop for the
// given duration, which makes it useful for watching concurrent log output while
// a command runs. Shutting the shell down cuts the sleep short.
type SleepCommand struct {
	out shelltypes.Logger
}

// NewSleepCommand creates a sleep command writing to out.
func NewSleepCommand(out shelltypes.Logger) *SleepCommand {
	return &SleepCommand{out: out}
}

// Name returns the command name "sleep" for registration and lookup.
func (c *SleepCommand) Name() string {
	return "sleep"
}

// Description returns a brief description of what the sleep command does.
func (c *SleepCommand) Description() string {
	return "Wait for a duration such as 500ms, 2s or 3"
}

// Usage returns the syntax of the sleep command.
func (c *SleepCommand) Usage() string {
	return "Usage: sleep <duration>"
}

// Execute waits for the duration in args[0]. A bare number is read as seconds.
func (c *SleepCommand) Execute(ctx context.Context, args []string) bool {
	if len(args) != 1 {
		return false
	}
	d, err := parseDuration(args[0])
	if err != nil || d < 0 {
		return false
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return c.out.Logf(shelltypes.LevelInfo, "Slept %s", d) == nil
	case <-ctx.Done():
		_ = c.out.Logf(shelltypes.LevelWarn, "Sleep cancelled")
		return true
	}
}

func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}
