package journal

import (
	"context"
	"fmt"

	"github.com/roach88/backtrack/internal/nav"
	"github.com/roach88/backtrack/internal/tabnav"
)

// Recorder applies navigation operations to a tab state and records
// each applied operation in the journal.
//
// Only applied operations are journaled: a refused back event or a
// no-op tab selection produces no row, so replaying the log re-applies
// exactly the transitions that happened. Recorder follows the
// single-writer contract of the state it wraps.
type Recorder struct {
	journal *Journal
	state   *tabnav.State[string]
}

// NewRecorder wraps a state so that every applied mutation is journaled.
// The recorder does not take ownership of either collaborator.
func NewRecorder(j *Journal, state *tabnav.State[string]) *Recorder {
	return &Recorder{journal: j, state: state}
}

// State returns the wrapped state for read-only projections.
func (r *Recorder) State() *tabnav.State[string] { return r.state }

// Navigate appends a route to the selected tab's stack and records it.
func (r *Recorder) Navigate(ctx context.Context, route string) (nav.Entry[string], error) {
	e := r.state.NavigateInTab(route, nil)
	if _, err := r.journal.Append(ctx, KindNavigate, r.state.SelectedTab().ID, route); err != nil {
		return e, err
	}
	return e, nil
}

// Back resolves one discrete back event through the state's three-tier
// policy and records it when consumed.
func (r *Recorder) Back(ctx context.Context) (bool, error) {
	consumed := r.state.OnBack()
	if !consumed {
		return false, nil
	}
	if _, err := r.journal.Append(ctx, KindBack, "", ""); err != nil {
		return true, err
	}
	return true, nil
}

// SelectTab switches tabs and records the change. No-op selections are
// not journaled.
func (r *Recorder) SelectTab(ctx context.Context, tabID string) (bool, error) {
	changed, err := r.state.SelectTab(tabID)
	if err != nil || !changed {
		return changed, err
	}
	if _, err := r.journal.Append(ctx, KindSelectTab, r.state.SelectedTab().ID, ""); err != nil {
		return true, err
	}
	return true, nil
}

// ResetTab resets one tab to a single route and records it.
func (r *Recorder) ResetTab(ctx context.Context, tabID, route string) error {
	if err := r.state.ResetTabTo(tabID, route); err != nil {
		return err
	}
	tab, _ := r.state.Config().TabByID(tabID)
	_, err := r.journal.Append(ctx, KindResetTab, tab.ID, route)
	return err
}

// ClearTab pops one tab to its root and records it.
func (r *Recorder) ClearTab(ctx context.Context, tabID string) error {
	if err := r.state.ClearTabToRoot(tabID); err != nil {
		return err
	}
	tab := r.state.SelectedTab()
	if tabID != "" {
		tab, _ = r.state.Config().TabByID(tabID)
	}
	_, err := r.journal.Append(ctx, KindClearTab, tab.ID, "")
	return err
}

// Replay reconstructs the navigation state a journal produced by
// re-applying every event, in seq order, against a fresh state built
// from config.
//
// Replay is deterministic: the same journal and config always produce
// an observably identical state. An event that fails to apply (unknown
// tab, refused back) indicates the journal and config have diverged,
// and replay fails with the offending seq.
func (j *Journal) Replay(ctx context.Context, config tabnav.Config[string], opts ...tabnav.StateOption) (*tabnav.State[string], error) {
	state, err := tabnav.NewState(config, opts...)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	events, err := j.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	for _, e := range events {
		if err := applyEvent(state, e); err != nil {
			return nil, fmt.Errorf("replay seq %d: %w", e.Seq, err)
		}
	}
	return state, nil
}

func applyEvent(state *tabnav.State[string], e Event) error {
	switch e.Kind {
	case KindNavigate:
		// The journal records the tab that was selected when the route
		// was pushed; re-select it so divergence is caught, not hidden.
		if state.SelectedTab().ID != e.TabID {
			return fmt.Errorf("navigate targeted tab %q but %q is selected", e.TabID, state.SelectedTab().ID)
		}
		state.NavigateInTab(e.Route, nil)
		return nil
	case KindBack:
		if !state.OnBack() {
			return fmt.Errorf("recorded back event was not consumed")
		}
		return nil
	case KindSelectTab:
		changed, err := state.SelectTab(e.TabID)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("recorded tab selection %q was a no-op", e.TabID)
		}
		return nil
	case KindResetTab:
		return state.ResetTabTo(e.TabID, e.Route)
	case KindClearTab:
		return state.ClearTabToRoot(e.TabID)
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
}
