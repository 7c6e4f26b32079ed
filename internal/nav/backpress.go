package nav

// BackPressHandler is the one-method delegation capability for back
// navigation.
//
// OnBack handles one discrete back event and reports whether it was
// consumed. A consumed event must not propagate further; a
// non-consumed event bubbles outward to the next handler up the tree.
//
// Each call is synchronous: exactly one discrete event triggers exactly
// one resolution pass. Intermediate gesture progress must not call
// OnBack and must not mutate state.
type BackPressHandler interface {
	OnBack() bool
}

// HandlerFunc adapts a plain function to a BackPressHandler.
type HandlerFunc func() bool

// OnBack implements BackPressHandler.
func (f HandlerFunc) OnBack() bool { return f() }

// ParentNavigator composes BackPressHandlers into a tree.
//
// A parent holds at most one active child. Its OnBack first delegates to
// the active child; only when no child is attached, or the child returns
// false, does the parent evaluate its own logic. Resolution is therefore
// depth-first and innermost-first, with O(depth) cost per event.
//
// The activeChild edge is a relation, never ownership: whoever attaches
// a child manages its lifetime, and clearing the relation never destroys
// the child.
type ParentNavigator interface {
	BackPressHandler

	// SetActiveChild sets the delegation edge. Passing nil clears it.
	SetActiveChild(child BackPressHandler)

	// ClearActiveChild removes the delegation edge without touching the
	// child.
	ClearActiveChild()
}
