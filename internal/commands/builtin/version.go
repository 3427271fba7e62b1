package builtin

import (
	"context"

	"lineshell/internal/version"
	"lineshell/pkg/shelltypes"
)

// VersionCommand implements the version command for displaying build information.
type VersionCommand struct {
	out shelltypes.Logger
}

// NewVersionCommand creates a version command writing to out.
func NewVersionCommand(out shelltypes.Logger) *VersionCommand {
	return &VersionCommand{out: out}
}

// Name returns the command name "version" for registration and lookup.
func (c *VersionCommand) Name() string {
	return "version"
}

// Description returns a brief description of what the version command does.
func (c *VersionCommand) Description() string {
	return "Show lineshell version information"
}

// Usage returns the syntax of the version command.
func (c *VersionCommand) Usage() string {
	return "Usage: version [--detailed]"
}

// Execute prints the one-line version, or every build detail with --detailed.
func (c *VersionCommand) Execute(_ context.Context, args []string) bool {
	text := version.String()
	switch {
	case len(args) == 0:
	case len(args) == 1 && (args[0] == "--detailed" || args[0] == "-d"):
		text = version.Detailed()
	default:
		return false
	}
	return c.out.Logf(shelltypes.LevelInfo, "%s", text) == nil
}
