package tabnav

import (
	"sync"

	"github.com/roach88/backtrack/internal/nav"
)

// TabStackChange is published after every mutation of one tab's stack.
// All fields reflect the fully-applied state.
type TabStackChange[D comparable] struct {
	// Tab identifies the mutated tab's stack.
	Tab TabDefinition[D]

	// Entries is the tab's entry sequence, bottom first.
	Entries []nav.Entry[D]

	// CanGoBack reports whether the tab's stack is deeper than its root.
	CanGoBack bool
}

// State owns N independent back stacks keyed by tab identity plus the
// shared tab selection.
//
// Every tab's stack holds at least its root entry at all times, from
// construction onward; switching tabs never discards any stack. The
// per-tab stacks live for the State's full lifetime and are destroyed
// only when the whole State is torn down.
//
// State implements nav.BackPressHandler with the three-tier resolution
// policy documented on OnBack. Mutations must be serialized by the
// caller (single-writer contract); projections and signals may be read
// concurrently.
type State[D comparable] struct {
	config Config[D]

	mu       sync.RWMutex
	selected string

	// stacks is keyed by canonical tab id. The map itself is immutable
	// after construction; each stack guards its own entries.
	stacks map[string]*nav.BackStack[D]

	selectedSig *nav.Signal[TabDefinition[D]]
	stackSig    *nav.Signal[TabStackChange[D]]
}

var _ nav.BackPressHandler = (*State[string])(nil)

// StateOption configures a State at construction.
type StateOption func(*stateConfig)

type stateConfig struct {
	idGen nav.IDGenerator
}

// WithIDGenerator sets the id generator shared by all tab stacks.
// Defaults to nav.UUIDv7Generator.
func WithIDGenerator(gen nav.IDGenerator) StateOption {
	return func(c *stateConfig) { c.idGen = gen }
}

// NewState creates a State from a validated Config.
//
// Each tab's stack is seeded with the tab's root destination; the
// initial tab is selected. Passing a zero Config (one not obtained from
// NewConfig) is rejected with an INVALID_CONFIG error.
func NewState[D comparable](config Config[D], opts ...StateOption) (*State[D], error) {
	if !config.valid() {
		return nil, &nav.NavError{
			Code:    nav.ErrCodeInvalidConfig,
			Message: "state requires a Config obtained from NewConfig",
		}
	}

	cfg := stateConfig{idGen: nav.UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	stacks := make(map[string]*nav.BackStack[D], config.Len())
	for _, tab := range config.Tabs() {
		stack := nav.NewBackStack[D](nav.WithIDGenerator(cfg.idGen))
		stack.Push(tab.Root, nil)
		stacks[tab.ID] = stack
	}

	return &State[D]{
		config:      config,
		selected:    config.InitialTab().ID,
		stacks:      stacks,
		selectedSig: nav.NewSignal[TabDefinition[D]](),
		stackSig:    nav.NewSignal[TabStackChange[D]](),
	}, nil
}

// Config returns the immutable tab set description.
func (s *State[D]) Config() Config[D] { return s.config }

// SelectTab switches the shared selection to the given tab without
// mutating any stack.
//
// Returns (false, NOT_FOUND error) for an unknown tab id, (false, nil)
// when the tab is already selected, and (true, nil) when the selection
// changed.
func (s *State[D]) SelectTab(id string) (bool, error) {
	tab, ok := s.config.TabByID(id)
	if !ok {
		return false, nav.NewNotFoundError("selectTab", id)
	}

	s.mu.Lock()
	if s.selected == tab.ID {
		s.mu.Unlock()
		return false, nil
	}
	s.selected = tab.ID
	s.mu.Unlock()

	s.selectedSig.Publish(tab)
	return true, nil
}

// NavigateInTab appends a fresh entry to the currently selected tab's
// stack. Other tabs are untouched. Pass nil for transition if none.
func (s *State[D]) NavigateInTab(destination D, transition any) nav.Entry[D] {
	tab := s.SelectedTab()
	stack := s.stacks[tab.ID]

	e := stack.Push(destination, transition)
	s.publishStack(tab)
	return e
}

// NavigateBackInTab pops the selected tab's stack. Returns false at the
// tab's root; the root entry is never removed.
func (s *State[D]) NavigateBackInTab() bool {
	tab := s.SelectedTab()
	stack := s.stacks[tab.ID]

	if _, ok := stack.Pop(); !ok {
		return false
	}
	s.publishStack(tab)
	return true
}

// ClearTabToRoot pops the given tab's stack down to its root entry.
// An empty id targets the selected tab. Other tabs are untouched.
func (s *State[D]) ClearTabToRoot(id string) error {
	tab, err := s.resolveTab("clearTabToRoot", id)
	if err != nil {
		return err
	}

	s.stacks[tab.ID].PopToRoot()
	s.publishStack(tab)
	return nil
}

// ResetTabTo resets exactly one tab's stack to a single fresh entry
// wrapping destination. An empty id targets the selected tab. This is
// the restore primitive for external persistence codecs.
func (s *State[D]) ResetTabTo(id string, destination D) error {
	tab, err := s.resolveTab("resetTabTo", id)
	if err != nil {
		return err
	}

	s.stacks[tab.ID].ReplaceAll(destination)
	s.publishStack(tab)
	return nil
}

// OnBack implements nav.BackPressHandler.
//
// Resolution is three ordered tiers; the first match wins and tiers are
// never combined in one call:
//
//  1. The selected tab's stack is deeper than its root: pop within the
//     tab and consume.
//  2. The selected tab is not the primary tab: select the primary tab
//     and consume. This event never also pops.
//  3. Otherwise: not consumed; the event propagates outward.
func (s *State[D]) OnBack() bool {
	// Tier 1: pop within the selected tab.
	if s.NavigateBackInTab() {
		return true
	}

	// Tier 2: fall home to the primary tab.
	primary := s.config.PrimaryTab()
	if changed, _ := s.SelectTab(primary.ID); changed {
		return true
	}

	// Tier 3: propagate outward.
	return false
}

// SelectedTab returns the currently selected tab.
func (s *State[D]) SelectedTab() TabDefinition[D] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tab, _ := s.config.TabByID(s.selected)
	return tab
}

// StackOf returns a copy of the given tab's entry sequence, bottom
// first. An empty id targets the selected tab.
func (s *State[D]) StackOf(id string) ([]nav.Entry[D], error) {
	tab, err := s.resolveTab("stackOf", id)
	if err != nil {
		return nil, err
	}
	return s.stacks[tab.ID].Entries(), nil
}

// Depth returns the given tab's stack depth. An empty id targets the
// selected tab. Depth is always at least 1.
func (s *State[D]) Depth(id string) (int, error) {
	tab, err := s.resolveTab("depth", id)
	if err != nil {
		return 0, err
	}
	return s.stacks[tab.ID].Len(), nil
}

// CanGoBackInTab reports whether the selected tab's stack is deeper
// than its root.
func (s *State[D]) CanGoBackInTab() bool {
	return s.stacks[s.SelectedTab().ID].CanGoBack()
}

// CurrentInTab returns the selected tab's top entry. Always present:
// every tab's stack holds at least its root.
func (s *State[D]) CurrentInTab() nav.Entry[D] {
	e, _ := s.stacks[s.SelectedTab().ID].Current()
	return e
}

// SelectedTabChanges returns the signal publishing the newly selected
// tab after every selection change.
func (s *State[D]) SelectedTabChanges() *nav.Signal[TabDefinition[D]] {
	return s.selectedSig
}

// StackChanges returns the signal publishing a TabStackChange after
// every per-tab stack mutation.
func (s *State[D]) StackChanges() *nav.Signal[TabStackChange[D]] {
	return s.stackSig
}

// resolveTab maps an id (or "", meaning the selected tab) to its
// definition.
func (s *State[D]) resolveTab(op, id string) (TabDefinition[D], error) {
	if id == "" {
		return s.SelectedTab(), nil
	}
	tab, ok := s.config.TabByID(id)
	if !ok {
		return TabDefinition[D]{}, nav.NewNotFoundError(op, id)
	}
	return tab, nil
}

func (s *State[D]) publishStack(tab TabDefinition[D]) {
	stack := s.stacks[tab.ID]
	s.stackSig.Publish(TabStackChange[D]{
		Tab:       tab,
		Entries:   stack.Entries(),
		CanGoBack: stack.CanGoBack(),
	})
}
