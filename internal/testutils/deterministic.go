// Package testutils provides deterministic generators and test doubles for lineshell testing.
// These utilities keep test output stable while matching production formats.
package testutils

import (
	"fmt"
	"sync"
)

// IDGenerator hands out deterministic UUID-shaped identifiers.
// Returns UUIDs like: 00000001-0000-4000-8000-000000000001, 00000002-0000-4000-8000-000000000002
type IDGenerator struct {
	mu      sync.Mutex
	counter uint64
}

// NewIDGenerator creates a generator starting at 1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next identifier.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++

	// Format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx
	return fmt.Sprintf("%08x-0000-4000-8000-%012x", g.counter, g.counter)
}
