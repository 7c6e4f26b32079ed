package nav

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Entry is one addressable position in a back stack. It wraps an opaque
// destination with a stable unique id and an optional transition
// descriptor.
//
// Ids are assigned at creation, never change, and are never reused.
// Two entries wrapping the same destination are distinct entries with
// distinct ids. The transition descriptor is stored and returned
// verbatim; the core never interprets it.
type Entry[D comparable] struct {
	id          string
	destination D
	transition  any
}

// ID returns the entry's stable unique id.
func (e Entry[D]) ID() string { return e.id }

// Destination returns the opaque destination this entry wraps.
func (e Entry[D]) Destination() D { return e.destination }

// Transition returns the opaque transition descriptor, or nil if none
// was supplied at creation.
func (e Entry[D]) Transition() any { return e.transition }

// IDGenerator produces entry ids.
//
// Production stacks use UUIDv7Generator. Tests use FixedIDGenerator for
// deterministic ids and golden trace comparison.
type IDGenerator interface {
	// Generate returns a new unique id. Ids must never repeat within
	// the lifetime of the process.
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 entry ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, making ids
// sortable by creation time. This is helpful for debugging and trace
// visualization.
//
// Uses github.com/google/uuid package for RFC 4122 compliant UUIDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Format: "550e8400-e29b-41d4-a716-446655440000" (36 characters)
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedIDGenerator returns predetermined entry ids for testing.
//
// This enables deterministic test execution and golden trace comparison.
// Tests can provide a known sequence of ids and verify exact output.
//
// Thread-safety: FixedIDGenerator is safe for concurrent use via
// internal mutex.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
//
// Example:
//
//	gen := NewFixedIDGenerator("entry-1", "entry-2", "entry-3")
//	gen.Generate() // "entry-1"
//	gen.Generate() // "entry-2"
//	gen.Generate() // "entry-3"
//	gen.Generate() // panic: all ids exhausted
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{
		ids: ids,
		idx: 0,
	}
}

// Generate returns the next predetermined id.
// Thread-safe: uses mutex to protect index access.
//
// Panics if all ids have been consumed. This is a fail-fast approach to
// catch test misconfiguration (test pushed more entries than expected).
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedIDGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// PrefixedIDGenerator returns "prefix-1", "prefix-2", ... without a
// predetermined bound. Useful for tests that need unbounded but still
// deterministic ids.
type PrefixedIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewPrefixedIDGenerator creates a generator with the given prefix.
func NewPrefixedIDGenerator(prefix string) *PrefixedIDGenerator {
	return &PrefixedIDGenerator{prefix: prefix}
}

// Generate returns the next sequential id.
// Thread-safe: uses mutex to protect counter access.
func (g *PrefixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.prefix + "-" + strconv.Itoa(g.n)
}
