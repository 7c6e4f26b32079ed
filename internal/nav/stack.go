package nav

import "sync"

// BackStack is the exclusive owner of an ordered sequence of entries.
//
// Every mutation is synchronous and atomic: readers never observe a
// partially-applied change. Mutations must be serialized by the caller
// (single-writer contract); projections may be read from any number of
// concurrent goroutines.
//
// Current, Previous and CanGoBack are always recomputed from the entry
// sequence - they are never independently settable.
//
// The zero value is not usable; construct with NewBackStack.
type BackStack[D comparable] struct {
	mu            sync.RWMutex
	entries       []Entry[D]
	idGen         IDGenerator
	allowEmptyPop bool
}

// StackOption configures a BackStack at construction.
type StackOption func(*stackConfig)

type stackConfig struct {
	idGen         IDGenerator
	allowEmptyPop bool
}

// WithIDGenerator sets the id generator used for new entries.
// Defaults to UUIDv7Generator.
func WithIDGenerator(gen IDGenerator) StackOption {
	return func(c *stackConfig) { c.idGen = gen }
}

// WithAllowEmptyPop permits Pop to remove the final entry, draining the
// stack to empty. By default Pop refuses when only one entry remains.
//
// Tab stacks never enable this: a tab's stack must always retain its
// root entry.
func WithAllowEmptyPop() StackOption {
	return func(c *stackConfig) { c.allowEmptyPop = true }
}

// NewBackStack creates an empty back stack.
func NewBackStack[D comparable](opts ...StackOption) *BackStack[D] {
	cfg := stackConfig{idGen: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &BackStack[D]{
		entries:       make([]Entry[D], 0, 8),
		idGen:         cfg.idGen,
		allowEmptyPop: cfg.allowEmptyPop,
	}
}

// Push appends a fresh entry wrapping destination and returns it.
// The transition descriptor is stored verbatim; pass nil if none.
// Push always succeeds.
func (s *BackStack[D]) Push(destination D, transition any) Entry[D] {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := Entry[D]{
		id:          s.idGen.Generate(),
		destination: destination,
		transition:  transition,
	}
	s.entries = append(s.entries, e)
	return e
}

// Pop removes and returns the top entry.
//
// When only one entry remains Pop refuses and returns false, unless the
// stack was constructed with WithAllowEmptyPop. Pop on an empty stack
// always returns false.
func (s *BackStack[D]) Pop() (Entry[D], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	min := 1
	if s.allowEmptyPop {
		min = 0
	}
	if len(s.entries) <= min {
		var zero Entry[D]
		return zero, false
	}
	return s.removeAtLocked(len(s.entries) - 1), true
}

// Insert inserts a fresh entry at index, which must be in [0, Len()].
// Index Len() is equivalent to Push. Out-of-range indices reject the
// operation with an INDEX_OUT_OF_RANGE error and leave state unchanged.
func (s *BackStack[D]) Insert(index int, destination D, transition any) (Entry[D], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index > len(s.entries) {
		var zero Entry[D]
		return zero, NewOutOfRangeError("insert", index, len(s.entries))
	}

	e := Entry[D]{
		id:          s.idGen.Generate(),
		destination: destination,
		transition:  transition,
	}
	s.entries = append(s.entries, Entry[D]{})
	copy(s.entries[index+1:], s.entries[index:])
	s.entries[index] = e
	return e, nil
}

// RemoveAt removes and returns the entry at index, which need not be the
// top. Out-of-range indices reject the operation with an
// INDEX_OUT_OF_RANGE error and leave state unchanged.
func (s *BackStack[D]) RemoveAt(index int) (Entry[D], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		var zero Entry[D]
		return zero, NewOutOfRangeError("removeAt", index, len(s.entries)-1)
	}
	return s.removeAtLocked(index), nil
}

// RemoveByID removes and returns the entry with the given id. Unknown
// ids reject the operation with a NOT_FOUND error and leave state
// unchanged.
func (s *BackStack[D]) RemoveByID(id string) (Entry[D], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.id == id {
			return s.removeAtLocked(i), nil
		}
	}
	var zero Entry[D]
	return zero, NewNotFoundError("removeByID", id)
}

// Swap exchanges the entries at i and j without changing membership.
// Current and Previous re-derive from the new order. Out-of-range
// indices reject the operation and leave state unchanged; i == j is a
// valid no-op.
func (s *BackStack[D]) Swap(i, j int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.entries) {
		return NewOutOfRangeError("swap", i, len(s.entries)-1)
	}
	if j < 0 || j >= len(s.entries) {
		return NewOutOfRangeError("swap", j, len(s.entries)-1)
	}
	s.entries[i], s.entries[j] = s.entries[j], s.entries[i]
	return nil
}

// Move relocates the entry at from to position to, shifting the entries
// between them. Membership is unchanged; Current and Previous re-derive
// from the new order. Out-of-range indices reject the operation and
// leave state unchanged.
func (s *BackStack[D]) Move(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from < 0 || from >= len(s.entries) {
		return NewOutOfRangeError("move", from, len(s.entries)-1)
	}
	if to < 0 || to >= len(s.entries) {
		return NewOutOfRangeError("move", to, len(s.entries)-1)
	}
	if from == to {
		return nil
	}

	e := s.entries[from]
	if from < to {
		copy(s.entries[from:], s.entries[from+1:to+1])
	} else {
		copy(s.entries[to+1:], s.entries[to:from])
	}
	s.entries[to] = e
	return nil
}

// Replace replaces the top entry with a fresh entry, preserving depth.
// On an empty stack Replace behaves as Push.
func (s *BackStack[D]) Replace(destination D, transition any) Entry[D] {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := Entry[D]{
		id:          s.idGen.Generate(),
		destination: destination,
		transition:  transition,
	}
	if len(s.entries) == 0 {
		s.entries = append(s.entries, e)
	} else {
		s.entries[len(s.entries)-1] = e
	}
	return e
}

// ReplaceAll resets the stack to fresh entries wrapping the given
// destinations, in order.
func (s *BackStack[D]) ReplaceAll(destinations ...D) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.entries[:0]
	for _, d := range destinations {
		s.entries = append(s.entries, Entry[D]{
			id:          s.idGen.Generate(),
			destination: d,
		})
	}
}

// ReplaceAllWithEntries resets the stack to the given entries verbatim,
// preserving their ids. This is the restore half of the snapshot
// round-trip: snapshotting Entries() and restoring through this method
// reproduces an observably identical sequence.
//
// Entries with blank or duplicate ids reject the operation with an
// INVARIANT_VIOLATION error and leave state unchanged.
func (s *BackStack[D]) ReplaceAllWithEntries(entries []Entry[D]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.id == "" {
			return NewInvariantError("replaceAllWithEntries", "entry with blank id")
		}
		if seen[e.id] {
			return NewInvariantError("replaceAllWithEntries", "duplicate entry id "+e.id)
		}
		seen[e.id] = true
	}

	s.entries = append(s.entries[:0], entries...)
	return nil
}

// Clear removes all entries.
func (s *BackStack[D]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Zero the slots so the backing array does not retain destinations.
	for i := range s.entries {
		s.entries[i] = Entry[D]{}
	}
	s.entries = s.entries[:0]
}

// PopUntil pops repeatedly until predicate(current destination) holds or
// the stack is exhausted. Returns whether the target was found; when it
// returns false the stack has been popped down to its last poppable
// entry.
func (s *BackStack[D]) PopUntil(predicate func(D) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	min := 1
	if s.allowEmptyPop {
		min = 0
	}
	for len(s.entries) > 0 {
		if predicate(s.entries[len(s.entries)-1].destination) {
			return true
		}
		if len(s.entries) <= min {
			return false
		}
		s.removeAtLocked(len(s.entries) - 1)
	}
	return false
}

// PopToRoot pops down to exactly one entry. Calls after the first are
// no-ops; an empty stack stays empty.
func (s *BackStack[D]) PopToRoot() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.entries) > 1 {
		s.removeAtLocked(len(s.entries) - 1)
	}
}

// Current returns the last entry, or false if the stack is empty.
func (s *BackStack[D]) Current() (Entry[D], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		var zero Entry[D]
		return zero, false
	}
	return s.entries[len(s.entries)-1], true
}

// Previous returns the second-to-last entry, or false if the stack has
// fewer than two entries.
func (s *BackStack[D]) Previous() (Entry[D], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) < 2 {
		var zero Entry[D]
		return zero, false
	}
	return s.entries[len(s.entries)-2], true
}

// CanGoBack reports whether the stack holds more than one entry.
func (s *BackStack[D]) CanGoBack() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries) > 1
}

// Len returns the number of entries.
func (s *BackStack[D]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a copy of the entry sequence, bottom first.
func (s *BackStack[D]) Entries() []Entry[D] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry[D], len(s.entries))
	copy(out, s.entries)
	return out
}

// Destinations returns a copy of the destination sequence, bottom first.
// Convenience projection for snapshotting.
func (s *BackStack[D]) Destinations() []D {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]D, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.destination
	}
	return out
}

// removeAtLocked removes and returns the entry at index i.
// Caller must hold the write lock; i must be in range.
func (s *BackStack[D]) removeAtLocked(i int) Entry[D] {
	e := s.entries[i]
	copy(s.entries[i:], s.entries[i+1:])

	// Zero the vacated slot so the backing array does not retain the
	// removed entry's destination.
	s.entries[len(s.entries)-1] = Entry[D]{}
	s.entries = s.entries[:len(s.entries)-1]
	return e
}
