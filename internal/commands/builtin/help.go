// Package builtin provides the commands lineshell registers on its own: help,
// version and the echo and sleep demonstration commands.
package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lineshell/internal/commands"
	"lineshell/pkg/shelltypes"
)

// HelpCommand implements the help command for listing registered commands.
// With an argument it shows the description and usage of that one command.
type HelpCommand struct {
	registry *commands.Registry
	out      shelltypes.Logger
}

// NewHelpCommand creates a help command that reads registry and writes to out.
func NewHelpCommand(registry *commands.Registry, out shelltypes.Logger) *HelpCommand {
	return &HelpCommand{registry: registry, out: out}
}

// Name returns the command name "help" for registration and lookup.
func (c *HelpCommand) Name() string {
	return "help"
}

// Description returns a brief description of what the help command does.
func (c *HelpCommand) Description() string {
	return "Show available commands"
}

// Usage returns the syntax of the help command.
func (c *HelpCommand) Usage() string {
	return "Usage: help [command]"
}

// Execute lists every command, or describes the command named by the only argument.
func (c *HelpCommand) Execute(_ context.Context, args []string) bool {
	switch len(args) {
	case 0:
		return c.showAllCommands() == nil
	case 1:
		return c.showCommandHelp(args[0]) == nil
	default:
		return false
	}
}

// showAllCommands prints "name - description" for every command, names padded
// to a common width.
func (c *HelpCommand) showAllCommands() error {
	all := c.registry.List()
	if len(all) == 0 {
		return c.out.Logf(shelltypes.LevelInfo, "No commands registered")
	}

	width := 0
	for _, cmd := range all {
		width = max(width, lipgloss.Width(cmd.Name()))
	}
	nameStyle := lipgloss.NewStyle().Width(width)

	lines := []string{"Available commands:"}
	for _, cmd := range all {
		if cmd.Description() == "" {
			lines = append(lines, "  "+cmd.Name())
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s - %s", nameStyle.Render(cmd.Name()), cmd.Description()))
	}
	return c.out.Logf(shelltypes.LevelInfo, "%s", strings.Join(lines, "\n"))
}

// showCommandHelp prints the metadata of a single command.
func (c *HelpCommand) showCommandHelp(name string) error {
	cmd, ok := c.registry.Get(name)
	if !ok {
		return c.out.Logf(shelltypes.LevelWarn, "Command not found: %s", name)
	}

	lines := []string{cmd.Name()}
	if cmd.Description() != "" {
		lines[0] += " - " + cmd.Description()
	}
	if cmd.Usage() != "" {
		lines = append(lines, cmd.Usage())
	}
	return c.out.Logf(shelltypes.LevelInfo, "%s", strings.Join(lines, "\n"))
}
