package tabnav

import "github.com/roach88/backtrack/internal/nav"

// Snapshot is the persistence seam: the selected tab id plus each tab's
// ordered destination list. The wire format is the caller's concern;
// this package only provides the capture and restore primitives.
//
// Entry ids and transition descriptors are intentionally excluded -
// restore mints fresh entries, and an external codec has no business
// with either.
type Snapshot[D comparable] struct {
	SelectedTabID string         `json:"selected_tab" yaml:"selected_tab"`
	Stacks        map[string][]D `json:"stacks" yaml:"stacks"`
}

// Snapshot captures the current selection and every tab's destination
// sequence, bottom first.
func (s *State[D]) Snapshot() Snapshot[D] {
	snap := Snapshot[D]{
		SelectedTabID: s.SelectedTab().ID,
		Stacks:        make(map[string][]D, s.config.Len()),
	}
	for _, tab := range s.config.Tabs() {
		snap.Stacks[tab.ID] = s.stacks[tab.ID].Destinations()
	}
	return snap
}

// Restore rebuilds selection and per-tab stacks from a snapshot.
//
// Validation happens up front and the whole restore is rejected before
// any stack is touched:
//   - the selected tab and every snapshot key must name a known tab
//     (NOT_FOUND otherwise)
//   - every snapshot stack must be non-empty, since a restored tab may
//     never be left without its root (INVARIANT_VIOLATION otherwise)
//
// Tabs absent from the snapshot are reset to their root destination.
func (s *State[D]) Restore(snap Snapshot[D]) error {
	if _, ok := s.config.TabByID(snap.SelectedTabID); !ok {
		return nav.NewNotFoundError("restore", snap.SelectedTabID)
	}

	// Snapshot keys may arrive in any id form an external codec produced;
	// canonicalize once so validation and apply agree on the same map.
	stacks := make(map[string][]D, len(snap.Stacks))
	for id, destinations := range snap.Stacks {
		canonical := CanonicalID(id)
		if _, ok := s.config.TabByID(canonical); !ok {
			return nav.NewNotFoundError("restore", id)
		}
		if _, dup := stacks[canonical]; dup {
			return nav.NewInvariantError("restore", "snapshot keys collapse to the same tab "+canonical)
		}
		if len(destinations) == 0 {
			return nav.NewInvariantError("restore", "snapshot would empty tab "+id)
		}
		stacks[canonical] = destinations
	}

	for _, tab := range s.config.Tabs() {
		destinations, ok := stacks[tab.ID]
		if !ok {
			destinations = []D{tab.Root}
		}
		s.stacks[tab.ID].ReplaceAll(destinations...)
		s.publishStack(tab)
	}

	// Selection last, so subscribers observing the selected tab see its
	// restored stack.
	if _, err := s.SelectTab(snap.SelectedTabID); err != nil {
		return err
	}
	return nil
}
