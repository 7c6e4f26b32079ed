package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/backtrack/internal/nav"
	"github.com/roach88/backtrack/internal/tabnav"
	"github.com/roach88/backtrack/internal/testutil"
)

// TraceEvent records one executed flow step and the fully-applied state
// it produced. Field order matters: golden files serialize events in
// this exact order.
type TraceEvent struct {
	// Seq is the step's position in the flow, from the deterministic
	// clock.
	Seq int64 `json:"seq"`

	// Op is the step operation.
	Op string `json:"op"`

	// Tab is the step's targeted tab, when the op carries one.
	Tab string `json:"tab,omitempty"`

	// Route is the step's route, when the op carries one.
	Route string `json:"route,omitempty"`

	// Consumed reports back-event consumption; only set for "back".
	Consumed *bool `json:"consumed,omitempty"`

	// Selected is the selected tab id after the step.
	Selected string `json:"selected"`

	// Depth is the selected tab's stack depth after the step.
	Depth int `json:"depth"`
}

// Result holds the outcome of running a scenario.
type Result struct {
	// ScenarioName echoes the scenario.
	ScenarioName string

	// Passed is true when every expectation and assertion held.
	Passed bool

	// Trace lists one event per executed flow step.
	Trace []TraceEvent

	// Failures lists every expectation or assertion that did not hold.
	Failures []string

	// FinalSnapshot captures the state after the flow completed.
	FinalSnapshot tabnav.Snapshot[string]
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh state for isolation; deterministic
// helpers ensure reproducible traces.
//
// Execution flow:
//  1. Build and validate the tab configuration
//  2. Construct a fresh state with deterministic ids
//  3. Execute setup steps (must succeed, not traced)
//  4. Execute flow steps, tracing each and checking expect clauses
//  5. Evaluate final assertions
//
// Run returns an error only for scenario/config problems; expectation
// failures are reported in Result.Failures with Passed=false.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with a caller-supplied logger for step-level
// diagnostics.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	tabs := make([]tabnav.TabDefinition[string], len(scenario.Tabs))
	for i, spec := range scenario.Tabs {
		tabs[i] = tabnav.TabDefinition[string]{ID: spec.ID, Root: spec.Root, Label: spec.Label}
	}
	config, err := tabnav.NewConfig(tabs, scenario.InitialTab, scenario.PrimaryTab)
	if err != nil {
		return nil, fmt.Errorf("scenario tab set: %w", err)
	}

	state, err := tabnav.NewState(config, tabnav.WithIDGenerator(nav.NewPrefixedIDGenerator("trace")))
	if err != nil {
		return nil, err
	}

	clock := testutil.NewDeterministicClock()
	result := &Result{ScenarioName: scenario.Name, Passed: true}

	for i, step := range scenario.Setup {
		if _, err := applyStep(state, step); err != nil {
			return nil, fmt.Errorf("setup[%d] %s: %w", i, step.Op, err)
		}
	}

	for i, step := range scenario.Flow {
		outcome, err := applyStep(state, step)
		if err != nil {
			return nil, fmt.Errorf("flow[%d] %s: %w", i, step.Op, err)
		}

		event := TraceEvent{
			Seq:      clock.Next(),
			Op:       step.Op,
			Tab:      step.Tab,
			Route:    step.Route,
			Selected: state.SelectedTab().ID,
		}
		event.Depth, _ = state.Depth("")
		if step.Op == OpBack {
			consumed := outcome
			event.Consumed = &consumed
		}
		result.Trace = append(result.Trace, event)

		logger.Debug("flow step executed",
			"scenario", scenario.Name,
			"seq", event.Seq,
			"op", event.Op,
			"selected", event.Selected,
			"depth", event.Depth,
		)

		checkExpect(result, i, step, outcome, state)
	}

	for _, assertion := range scenario.Assertions {
		if err := evaluateAssertion(state, assertion, result.Trace); err != nil {
			result.Passed = false
			result.Failures = append(result.Failures, err.Error())
		}
	}

	result.FinalSnapshot = state.Snapshot()
	return result, nil
}

// applyStep executes one step. The boolean outcome is meaningful for
// "back" (consumed) and "select_tab" (changed); other ops report true.
func applyStep(state *tabnav.State[string], step Step) (bool, error) {
	switch step.Op {
	case OpNavigate:
		state.NavigateInTab(step.Route, nil)
		return true, nil
	case OpBack:
		return state.OnBack(), nil
	case OpSelectTab:
		return state.SelectTab(step.Tab)
	case OpResetTab:
		return true, state.ResetTabTo(step.Tab, step.Route)
	case OpClearTab:
		return true, state.ClearTabToRoot(step.Tab)
	default:
		return false, fmt.Errorf("unknown op %q", step.Op)
	}
}

func checkExpect(result *Result, i int, step Step, outcome bool, state *tabnav.State[string]) {
	if step.Expect == nil {
		return
	}

	fail := func(format string, args ...any) {
		result.Passed = false
		result.Failures = append(result.Failures,
			fmt.Sprintf("flow[%d] %s: ", i, step.Op)+fmt.Sprintf(format, args...))
	}

	if step.Expect.Consumed != nil && outcome != *step.Expect.Consumed {
		fail("expected consumed=%v, got %v", *step.Expect.Consumed, outcome)
	}
	if step.Expect.Selected != "" && state.SelectedTab().ID != tabnav.CanonicalID(step.Expect.Selected) {
		fail("expected selected=%s, got %s", step.Expect.Selected, state.SelectedTab().ID)
	}
	if step.Expect.Depth != nil {
		depth, _ := state.Depth("")
		if depth != *step.Expect.Depth {
			fail("expected depth=%d, got %d", *step.Expect.Depth, depth)
		}
	}
}
