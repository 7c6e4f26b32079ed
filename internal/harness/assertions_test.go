package harness

import (
	"testing"

	"github.com/roach88/backtrack/internal/tabnav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertionState(t *testing.T) *tabnav.State[string] {
	t.Helper()
	config, err := tabnav.NewConfig([]tabnav.TabDefinition[string]{
		{ID: "home", Root: "HomeRoot"},
		{ID: "search", Root: "SearchRoot"},
	}, "home", "home")
	require.NoError(t, err)

	state, err := tabnav.NewState(config)
	require.NoError(t, err)
	state.NavigateInTab("Detail", nil)
	return state
}

func TestEvaluateAssertion_SelectedTab(t *testing.T) {
	state := assertionState(t)

	assert.NoError(t, evaluateAssertion(state, Assertion{Type: AssertSelectedTab, Tab: "home"}, nil))

	err := evaluateAssertion(state, Assertion{Type: AssertSelectedTab, Tab: "search"}, nil)
	require.Error(t, err)
	var assertErr *AssertionError
	require.ErrorAs(t, err, &assertErr)
	assert.Equal(t, AssertSelectedTab, assertErr.Type)
	assert.Equal(t, "selected tab search", assertErr.Expected)
	assert.Equal(t, "selected tab home", assertErr.Actual)
}

func TestEvaluateAssertion_StackDepth(t *testing.T) {
	state := assertionState(t)

	assert.NoError(t, evaluateAssertion(state, Assertion{Type: AssertStackDepth, Tab: "home", Depth: 2}, nil))
	assert.Error(t, evaluateAssertion(state, Assertion{Type: AssertStackDepth, Tab: "home", Depth: 1}, nil))

	// Unknown tabs surface the lookup error as the actual outcome.
	err := evaluateAssertion(state, Assertion{Type: AssertStackDepth, Tab: "profile", Depth: 1}, nil)
	require.Error(t, err)
	var assertErr *AssertionError
	require.ErrorAs(t, err, &assertErr)
	assert.Contains(t, assertErr.Actual, "profile")
}

func TestEvaluateAssertion_StackRoutes(t *testing.T) {
	state := assertionState(t)

	assert.NoError(t, evaluateAssertion(state, Assertion{
		Type: AssertStackRoutes, Tab: "home", Routes: []string{"HomeRoot", "Detail"},
	}, nil))

	// Order matters.
	assert.Error(t, evaluateAssertion(state, Assertion{
		Type: AssertStackRoutes, Tab: "home", Routes: []string{"Detail", "HomeRoot"},
	}, nil))
	assert.Error(t, evaluateAssertion(state, Assertion{
		Type: AssertStackRoutes, Tab: "home", Routes: []string{"HomeRoot"},
	}, nil))
}

func TestEvaluateAssertion_CanGoBack(t *testing.T) {
	state := assertionState(t)

	assert.NoError(t, evaluateAssertion(state, Assertion{Type: AssertCanGoBack, Value: true}, nil))
	assert.Error(t, evaluateAssertion(state, Assertion{Type: AssertCanGoBack, Value: false}, nil))
}

func TestEvaluateAssertion_UnknownType(t *testing.T) {
	state := assertionState(t)

	err := evaluateAssertion(state, Assertion{Type: "stack_color"}, nil)
	require.Error(t, err)
	assert.NotErrorAs(t, err, new(*AssertionError))
}

func TestAssertionError_IncludesTrace(t *testing.T) {
	consumed := true
	err := &AssertionError{
		Type:     AssertSelectedTab,
		Expected: "selected tab home",
		Actual:   "selected tab search",
		Trace: []TraceEvent{
			{Seq: 1, Op: OpNavigate, Route: "Detail", Selected: "search", Depth: 2},
			{Seq: 2, Op: OpBack, Consumed: &consumed, Selected: "search", Depth: 1},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: selected_tab")
	assert.Contains(t, msg, "Expected: selected tab home")
	assert.Contains(t, msg, "Actual: selected tab search")
	assert.Contains(t, msg, "[1] navigate -> selected=search depth=2")
	assert.Contains(t, msg, "[2] back -> selected=search depth=1 consumed=true")
}
