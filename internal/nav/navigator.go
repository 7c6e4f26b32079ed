package nav

import "sync"

// StackChange is the derived projection published after every mutation
// that goes through a Navigator. All fields reflect the fully-applied
// state of the owned stack.
type StackChange[D comparable] struct {
	// Current is the top entry, or nil when the stack is empty.
	Current *Entry[D]

	// Previous is the second-to-last entry, or nil when the stack has
	// fewer than two entries.
	Previous *Entry[D]

	// CanGoBack mirrors the stack projection: Len > 1.
	CanGoBack bool

	// Transition is the current entry's transition descriptor, verbatim.
	Transition any
}

// Navigator owns one BackStack and implements the back-press delegation
// protocol.
//
// OnBack resolution: delegate to the active child if one is attached;
// otherwise pop if CanGoBack, returning true; otherwise return false.
//
// A Navigator is created once per navigation scope and destroyed with
// that scope. The activeChild edge is a relation, not ownership - see
// ParentNavigator.
type Navigator[D comparable] struct {
	stack *BackStack[D]

	childMu     sync.RWMutex
	activeChild BackPressHandler

	events *Signal[StackChange[D]]
}

var _ ParentNavigator = (*Navigator[string])(nil)

// NewNavigator creates a Navigator owning a fresh BackStack.
func NewNavigator[D comparable](opts ...StackOption) *Navigator[D] {
	return &Navigator[D]{
		stack:  NewBackStack[D](opts...),
		events: NewSignal[StackChange[D]](),
	}
}

// Navigate pushes a fresh entry and publishes the resulting projection.
// Pass nil for transition if none.
func (n *Navigator[D]) Navigate(destination D, transition any) Entry[D] {
	e := n.stack.Push(destination, transition)
	n.publish()
	return e
}

// NavigateBack pops the top entry. Returns whether a removal occurred.
func (n *Navigator[D]) NavigateBack() bool {
	_, ok := n.stack.Pop()
	if ok {
		n.publish()
	}
	return ok
}

// Replace swaps the top entry for a fresh one, preserving depth.
func (n *Navigator[D]) Replace(destination D, transition any) Entry[D] {
	e := n.stack.Replace(destination, transition)
	n.publish()
	return e
}

// ReplaceAll resets the stack to the given destinations, in order.
func (n *Navigator[D]) ReplaceAll(destinations ...D) {
	n.stack.ReplaceAll(destinations...)
	n.publish()
}

// PopUntil pops until predicate(current destination) holds or the stack
// is exhausted. Returns whether the target was found.
func (n *Navigator[D]) PopUntil(predicate func(D) bool) bool {
	found := n.stack.PopUntil(predicate)
	n.publish()
	return found
}

// PopToRoot pops down to exactly one entry.
func (n *Navigator[D]) PopToRoot() {
	n.stack.PopToRoot()
	n.publish()
}

// OnBack implements BackPressHandler.
//
// Resolution order:
//  1. Delegate to the active child, if attached. A consumed result
//     propagates no further.
//  2. Pop the owned stack if CanGoBack.
//  3. Otherwise report not consumed so the event bubbles outward.
func (n *Navigator[D]) OnBack() bool {
	n.childMu.RLock()
	child := n.activeChild
	n.childMu.RUnlock()

	if child != nil && child.OnBack() {
		return true
	}
	return n.NavigateBack()
}

// SetActiveChild sets the delegation edge only - it never constructs or
// destroys the child. Passing nil clears the edge.
func (n *Navigator[D]) SetActiveChild(child BackPressHandler) {
	n.childMu.Lock()
	defer n.childMu.Unlock()
	n.activeChild = child
}

// ClearActiveChild removes the delegation edge without touching the
// child.
func (n *Navigator[D]) ClearActiveChild() {
	n.SetActiveChild(nil)
}

// ActiveChild returns the currently attached child handler, or nil.
func (n *Navigator[D]) ActiveChild() BackPressHandler {
	n.childMu.RLock()
	defer n.childMu.RUnlock()
	return n.activeChild
}

// Events returns the signal publishing a StackChange after every
// mutation made through this Navigator.
func (n *Navigator[D]) Events() *Signal[StackChange[D]] {
	return n.events
}

// Current returns the top entry, or false if the stack is empty.
func (n *Navigator[D]) Current() (Entry[D], bool) {
	return n.stack.Current()
}

// Previous returns the second-to-last entry, or false if absent.
func (n *Navigator[D]) Previous() (Entry[D], bool) {
	return n.stack.Previous()
}

// CanGoBack reports whether the owned stack holds more than one entry.
func (n *Navigator[D]) CanGoBack() bool {
	return n.stack.CanGoBack()
}

// Transition returns the current entry's transition descriptor, or nil
// when the stack is empty or the entry carries none.
func (n *Navigator[D]) Transition() any {
	if e, ok := n.stack.Current(); ok {
		return e.Transition()
	}
	return nil
}

// Stack returns the owned BackStack for positional operations (Insert,
// RemoveAt, Swap, Move, ...).
// Use with caution - mutations through the raw stack bypass change
// notification; call Publish afterwards to notify subscribers.
func (n *Navigator[D]) Stack() *BackStack[D] {
	return n.stack
}

// Publish re-derives the projection and notifies subscribers. Needed
// only after mutating through the raw Stack().
func (n *Navigator[D]) Publish() {
	n.publish()
}

func (n *Navigator[D]) publish() {
	change := StackChange[D]{CanGoBack: n.stack.CanGoBack()}
	if cur, ok := n.stack.Current(); ok {
		change.Current = &cur
		change.Transition = cur.Transition()
	}
	if prev, ok := n.stack.Previous(); ok {
		change.Previous = &prev
	}
	n.events.Publish(change)
}
