// Package shared holds small capabilities that every canvas layer depends on:
// identifier generation and the acting identity.
package shared

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces fresh identifiers for nodes, edges, comments and
// notifications. Implementations must never return the same id twice.
type IDGenerator interface {
	NewID(prefix string) string
}

// SequentialIDGenerator yields "<prefix>-<n>" with a monotonically increasing n.
// It is deterministic and intended for tests and replay scripts.
type SequentialIDGenerator struct {
	mu   sync.Mutex
	next uint64
}

// NewSequentialIDGenerator creates a generator whose first id uses start.
func NewSequentialIDGenerator(start uint64) *SequentialIDGenerator {
	return &SequentialIDGenerator{next: start}
}

func (g *SequentialIDGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.next
	g.next++
	return fmt.Sprintf("%s-%d", prefix, n)
}

// UUIDGenerator yields "<prefix>-<uuid>".
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
