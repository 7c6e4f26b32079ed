package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/backtrack/internal/tabnav"
)

// AssertionError is returned when a final-state assertion fails.
// It includes the executed trace so the failing transition is visible
// without re-running the scenario.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		if event.Consumed != nil {
			fmt.Fprintf(&buf, "  [%d] %s -> selected=%s depth=%d consumed=%v\n",
				event.Seq, event.Op, event.Selected, event.Depth, *event.Consumed)
			continue
		}
		fmt.Fprintf(&buf, "  [%d] %s -> selected=%s depth=%d\n",
			event.Seq, event.Op, event.Selected, event.Depth)
	}

	return buf.String()
}

// evaluateAssertion dispatches one assertion against the final state.
func evaluateAssertion(state *tabnav.State[string], assertion Assertion, trace []TraceEvent) error {
	switch assertion.Type {
	case AssertSelectedTab:
		return assertSelectedTab(state, assertion, trace)
	case AssertStackDepth:
		return assertStackDepth(state, assertion, trace)
	case AssertStackRoutes:
		return assertStackRoutes(state, assertion, trace)
	case AssertCanGoBack:
		return assertCanGoBack(state, assertion, trace)
	default:
		return fmt.Errorf("unknown assertion type %q", assertion.Type)
	}
}

func assertSelectedTab(state *tabnav.State[string], assertion Assertion, trace []TraceEvent) error {
	got := state.SelectedTab().ID
	if got == tabnav.CanonicalID(assertion.Tab) {
		return nil
	}
	return &AssertionError{
		Type:     AssertSelectedTab,
		Expected: fmt.Sprintf("selected tab %s", assertion.Tab),
		Actual:   fmt.Sprintf("selected tab %s", got),
		Trace:    trace,
	}
}

func assertStackDepth(state *tabnav.State[string], assertion Assertion, trace []TraceEvent) error {
	depth, err := state.Depth(assertion.Tab)
	if err != nil {
		return &AssertionError{
			Type:     AssertStackDepth,
			Expected: fmt.Sprintf("tab %s with depth %d", assertion.Tab, assertion.Depth),
			Actual:   err.Error(),
			Trace:    trace,
		}
	}
	if depth == assertion.Depth {
		return nil
	}
	return &AssertionError{
		Type:     AssertStackDepth,
		Expected: fmt.Sprintf("tab %s depth %d", assertion.Tab, assertion.Depth),
		Actual:   fmt.Sprintf("tab %s depth %d", assertion.Tab, depth),
		Trace:    trace,
	}
}

func assertStackRoutes(state *tabnav.State[string], assertion Assertion, trace []TraceEvent) error {
	entries, err := state.StackOf(assertion.Tab)
	if err != nil {
		return &AssertionError{
			Type:     AssertStackRoutes,
			Expected: fmt.Sprintf("tab %s with routes %v", assertion.Tab, assertion.Routes),
			Actual:   err.Error(),
			Trace:    trace,
		}
	}

	routes := make([]string, len(entries))
	for i, e := range entries {
		routes[i] = e.Destination()
	}

	if equalRoutes(routes, assertion.Routes) {
		return nil
	}
	return &AssertionError{
		Type:     AssertStackRoutes,
		Expected: fmt.Sprintf("tab %s routes %v", assertion.Tab, assertion.Routes),
		Actual:   fmt.Sprintf("tab %s routes %v", assertion.Tab, routes),
		Trace:    trace,
	}
}

func assertCanGoBack(state *tabnav.State[string], assertion Assertion, trace []TraceEvent) error {
	got := state.CanGoBackInTab()
	if got == assertion.Value {
		return nil
	}
	return &AssertionError{
		Type:     AssertCanGoBack,
		Expected: fmt.Sprintf("can_go_back=%v", assertion.Value),
		Actual:   fmt.Sprintf("can_go_back=%v", got),
		Trace:    trace,
	}
}

func equalRoutes(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
