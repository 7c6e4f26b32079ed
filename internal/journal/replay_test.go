package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/backtrack/internal/nav"
	"github.com/roach88/backtrack/internal/tabnav"
)

func testConfig(t *testing.T) tabnav.Config[string] {
	t.Helper()

	cfg, err := tabnav.NewConfig([]tabnav.TabDefinition[string]{
		{ID: "home", Root: "HomeRoot"},
		{ID: "search", Root: "SearchRoot"},
	}, "home", "home")
	require.NoError(t, err)
	return cfg
}

func newRecorder(t *testing.T) (*Recorder, *Journal, tabnav.Config[string]) {
	t.Helper()

	cfg := testConfig(t)
	state, err := tabnav.NewState(cfg, tabnav.WithIDGenerator(nav.NewPrefixedIDGenerator("rec")))
	require.NoError(t, err)

	j := openTestJournal(t)
	return NewRecorder(j, state), j, cfg
}

func TestRecorder_JournalsAppliedOperations(t *testing.T) {
	rec, j, _ := newRecorder(t)
	ctx := context.Background()

	_, err := rec.Navigate(ctx, "HomeDetail")
	require.NoError(t, err)

	changed, err := rec.SelectTab(ctx, "search")
	require.NoError(t, err)
	assert.True(t, changed)

	consumed, err := rec.Back(ctx) // tier 2: back to home
	require.NoError(t, err)
	assert.True(t, consumed)

	events, err := j.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, KindNavigate, events[0].Kind)
	assert.Equal(t, KindSelectTab, events[1].Kind)
	assert.Equal(t, KindBack, events[2].Kind)
}

func TestRecorder_SkipsRefusedAndNoOpEvents(t *testing.T) {
	rec, j, _ := newRecorder(t)
	ctx := context.Background()

	// At primary root: back is not consumed, nothing journaled.
	consumed, err := rec.Back(ctx)
	require.NoError(t, err)
	assert.False(t, consumed)

	// Selecting the selected tab: no-op, nothing journaled.
	changed, err := rec.SelectTab(ctx, "home")
	require.NoError(t, err)
	assert.False(t, changed)

	// Unknown tab: rejected, nothing journaled.
	_, err = rec.SelectTab(ctx, "profile")
	assert.True(t, nav.IsNotFound(err))

	n, err := j.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestReplay_ReconstructsRecordedState(t *testing.T) {
	rec, j, cfg := newRecorder(t)
	ctx := context.Background()

	_, err := rec.Navigate(ctx, "HomeDetail")
	require.NoError(t, err)
	_, err = rec.SelectTab(ctx, "search")
	require.NoError(t, err)
	_, err = rec.Navigate(ctx, "SearchResults")
	require.NoError(t, err)
	_, err = rec.Back(ctx) // tier 1: pop SearchResults
	require.NoError(t, err)
	require.NoError(t, rec.ResetTab(ctx, "home", "FreshHome"))

	replayed, err := j.Replay(ctx, cfg)
	require.NoError(t, err)

	assert.Equal(t, rec.State().Snapshot(), replayed.Snapshot())
}

func TestReplay_Deterministic(t *testing.T) {
	rec, j, cfg := newRecorder(t)
	ctx := context.Background()

	_, err := rec.Navigate(ctx, "A")
	require.NoError(t, err)
	_, err = rec.Navigate(ctx, "B")
	require.NoError(t, err)
	_, err = rec.Back(ctx)
	require.NoError(t, err)

	first, err := j.Replay(ctx, cfg)
	require.NoError(t, err)
	second, err := j.Replay(ctx, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Snapshot(), second.Snapshot())
}

func TestReplay_EmptyJournal(t *testing.T) {
	j := openTestJournal(t)
	cfg := testConfig(t)

	state, err := j.Replay(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "home", state.SelectedTab().ID)
	snap := state.Snapshot()
	assert.Equal(t, []string{"HomeRoot"}, snap.Stacks["home"])
	assert.Equal(t, []string{"SearchRoot"}, snap.Stacks["search"])
}

func TestReplay_FailsOnDivergentConfig(t *testing.T) {
	rec, j, _ := newRecorder(t)
	ctx := context.Background()

	_, err := rec.SelectTab(ctx, "search")
	require.NoError(t, err)

	// A config without the recorded tab cannot host the journal.
	divergent, err := tabnav.NewConfig([]tabnav.TabDefinition[string]{
		{ID: "home", Root: "HomeRoot"},
	}, "home", "home")
	require.NoError(t, err)

	_, err = j.Replay(ctx, divergent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replay seq 1")
}

func TestReplay_FailsOnUnconsumedBack(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	// A hand-written journal with a back event no fresh state consumes.
	_, err := j.Append(ctx, KindBack, "", "")
	require.NoError(t, err)

	_, err = j.Replay(ctx, testConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not consumed")
}
