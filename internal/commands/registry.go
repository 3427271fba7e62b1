// Package commands provides the command model and the name-keyed registry for lineshell.
// It handles registration, lookup and enumeration of commands.
package commands

import (
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"
)

// suggestDistance is the largest edit distance still offered as a suggestion.
const suggestDistance = 2

// Registry manages command registration and lookup.
// It is safe for concurrent use, so executors may enumerate it while running.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command
}

// NewRegistry creates a new command registry with an empty command map.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
	}
}

// Add inserts a command, replacing any command already registered under the same name.
func (r *Registry) Add(cmd *Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name. The returned handle does not depend on the
// registry, so callers can release their locks before executing it.
func (r *Registry) Get(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// List returns a snapshot of all registered commands sorted by name.
func (r *Registry) List() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	list := r.List()
	names := make([]string, len(list))
	for i, cmd := range list {
		names[i] = cmd.Name()
	}
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Suggest returns the registered name closest to name, if one is within a small
// edit distance. Ties go to the alphabetically first name.
func (r *Registry) Suggest(name string) (string, bool) {
	best, bestDist := "", suggestDistance+1
	for _, candidate := range r.Names() {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
