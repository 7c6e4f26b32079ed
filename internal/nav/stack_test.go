package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStack(ids ...string) *BackStack[string] {
	if len(ids) == 0 {
		return NewBackStack[string](WithIDGenerator(NewPrefixedIDGenerator("e")))
	}
	return NewBackStack[string](WithIDGenerator(NewFixedIDGenerator(ids...)))
}

func destinations(s *BackStack[string]) []string {
	return s.Destinations()
}

func TestBackStack_PushDerivesProjections(t *testing.T) {
	s := newTestStack()

	s.Push("Home", nil)
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Home", cur.Destination())
	assert.False(t, s.CanGoBack(), "single entry must not allow back")

	s.Push("Detail", nil)
	assert.Equal(t, []string{"Home", "Detail"}, destinations(s))
	assert.True(t, s.CanGoBack())

	cur, ok = s.Current()
	require.True(t, ok)
	assert.Equal(t, "Detail", cur.Destination())

	prev, ok := s.Previous()
	require.True(t, ok)
	assert.Equal(t, "Home", prev.Destination())
}

func TestBackStack_PushAssignsDistinctIDs(t *testing.T) {
	s := NewBackStack[string]()

	// Same destination twice: distinct entries, distinct ids.
	a := s.Push("Home", nil)
	b := s.Push("Home", nil)

	assert.NotEmpty(t, a.ID())
	assert.NotEmpty(t, b.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestBackStack_PopOrdering(t *testing.T) {
	s := newTestStack()

	s.Push("A", nil)
	s.Push("B", nil)

	popped, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "B", popped.Destination())

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "A", cur.Destination(), "push(A); push(B); pop() leaves current == A")
}

func TestBackStack_PopRefusesLastEntry(t *testing.T) {
	s := newTestStack()
	s.Push("Root", nil)

	_, ok := s.Pop()
	assert.False(t, ok, "pop must refuse when one entry remains")
	assert.Equal(t, 1, s.Len())
}

func TestBackStack_PopOnEmpty(t *testing.T) {
	s := newTestStack()

	_, ok := s.Pop()
	assert.False(t, ok)
}

func TestBackStack_AllowEmptyPop(t *testing.T) {
	s := NewBackStack[string](WithAllowEmptyPop(), WithIDGenerator(NewPrefixedIDGenerator("e")))
	s.Push("Root", nil)

	popped, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "Root", popped.Destination())
	assert.Equal(t, 0, s.Len())

	_, ok = s.Pop()
	assert.False(t, ok, "pop on empty still refuses")
}

func TestBackStack_CanGoBackInvariant(t *testing.T) {
	s := newTestStack()

	// canGoBack <=> size > 1, through a mixed mutation sequence.
	assert.Equal(t, s.Len() > 1, s.CanGoBack())

	s.Push("A", nil)
	assert.Equal(t, s.Len() > 1, s.CanGoBack())

	s.Push("B", nil)
	assert.Equal(t, s.Len() > 1, s.CanGoBack())

	s.Pop()
	assert.Equal(t, s.Len() > 1, s.CanGoBack())

	s.Replace("C", nil)
	assert.Equal(t, s.Len() > 1, s.CanGoBack())

	s.Clear()
	assert.Equal(t, s.Len() > 1, s.CanGoBack())
}

func TestBackStack_Insert(t *testing.T) {
	s := newTestStack()
	s.Push("A", nil)
	s.Push("C", nil)

	_, err := s.Insert(1, "B", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, destinations(s))

	// Index == Len is equivalent to push.
	_, err = s.Insert(3, "D", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, destinations(s))

	// Index 0 inserts at the bottom.
	_, err = s.Insert(0, "Z", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Z", "A", "B", "C", "D"}, destinations(s))
}

func TestBackStack_Insert_OutOfRange(t *testing.T) {
	s := newTestStack()
	s.Push("A", nil)

	_, err := s.Insert(-1, "X", nil)
	assert.True(t, IsOutOfRange(err))

	_, err = s.Insert(2, "X", nil)
	assert.True(t, IsOutOfRange(err))

	// State untouched on rejection.
	assert.Equal(t, []string{"A"}, destinations(s))
}

func TestBackStack_RemoveAt(t *testing.T) {
	s := newTestStack()
	s.Push("A", nil)
	s.Push("B", nil)
	s.Push("C", nil)

	// Not necessarily the top.
	removed, err := s.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, "B", removed.Destination())
	assert.Equal(t, []string{"A", "C"}, destinations(s))

	_, err = s.RemoveAt(5)
	assert.True(t, IsOutOfRange(err))
	assert.Equal(t, []string{"A", "C"}, destinations(s))
}

func TestBackStack_RemoveByID(t *testing.T) {
	s := newTestStack("e-1", "e-2", "e-3")
	s.Push("A", nil)
	s.Push("B", nil)
	s.Push("C", nil)

	removed, err := s.RemoveByID("e-2")
	require.NoError(t, err)
	assert.Equal(t, "B", removed.Destination())
	assert.Equal(t, []string{"A", "C"}, destinations(s))

	_, err = s.RemoveByID("e-2")
	assert.True(t, IsNotFound(err), "removed id is never reused")
	assert.Equal(t, []string{"A", "C"}, destinations(s))
}

func TestBackStack_Swap(t *testing.T) {
	s := newTestStack()
	s.Push("A", nil)
	s.Push("B", nil)
	s.Push("C", nil)

	require.NoError(t, s.Swap(0, 2))
	assert.Equal(t, []string{"C", "B", "A"}, destinations(s))

	// Current recomputed as the new last element.
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "A", cur.Destination())

	assert.True(t, IsOutOfRange(s.Swap(0, 3)))
	assert.True(t, IsOutOfRange(s.Swap(-1, 0)))
	assert.Equal(t, []string{"C", "B", "A"}, destinations(s))

	// Swapping an index with itself is a valid no-op.
	require.NoError(t, s.Swap(1, 1))
	assert.Equal(t, []string{"C", "B", "A"}, destinations(s))
}

func TestBackStack_Move(t *testing.T) {
	s := newTestStack()
	s.Push("A", nil)
	s.Push("B", nil)
	s.Push("C", nil)
	s.Push("D", nil)

	require.NoError(t, s.Move(0, 2))
	assert.Equal(t, []string{"B", "C", "A", "D"}, destinations(s))

	require.NoError(t, s.Move(3, 0))
	assert.Equal(t, []string{"D", "B", "C", "A"}, destinations(s))

	require.NoError(t, s.Move(1, 1))
	assert.Equal(t, []string{"D", "B", "C", "A"}, destinations(s))

	assert.True(t, IsOutOfRange(s.Move(4, 0)))
	assert.True(t, IsOutOfRange(s.Move(0, -1)))
}

func TestBackStack_Replace(t *testing.T) {
	s := newTestStack()
	s.Push("A", nil)
	s.Push("B", nil)

	s.Replace("C", nil)
	assert.Equal(t, []string{"A", "C"}, destinations(s), "replace preserves depth")

	// On an empty stack replace behaves as push.
	empty := newTestStack()
	empty.Replace("Solo", nil)
	assert.Equal(t, []string{"Solo"}, destinations(empty))
}

func TestBackStack_ReplaceAll(t *testing.T) {
	s := newTestStack()
	s.Push("Old", nil)

	s.ReplaceAll("A", "B", "C")
	assert.Equal(t, []string{"A", "B", "C"}, destinations(s))

	s.ReplaceAll()
	assert.Equal(t, 0, s.Len())
}

func TestBackStack_ReplaceAllWithEntries_RoundTrip(t *testing.T) {
	s := newTestStack("e-1", "e-2", "e-3")
	s.Push("A", nil)
	s.Push("B", "slide")
	s.Push("C", nil)

	snapshot := s.Entries()

	restored := newTestStack()
	require.NoError(t, restored.ReplaceAllWithEntries(snapshot))

	// Observably identical sequence: ids, destinations, transitions.
	got := restored.Entries()
	require.Len(t, got, len(snapshot))
	for i := range snapshot {
		assert.Equal(t, snapshot[i].ID(), got[i].ID())
		assert.Equal(t, snapshot[i].Destination(), got[i].Destination())
		assert.Equal(t, snapshot[i].Transition(), got[i].Transition())
	}
}

func TestBackStack_ReplaceAllWithEntries_RejectsDuplicateIDs(t *testing.T) {
	src := newTestStack("dup", "dup")
	e1 := src.Push("A", nil)
	e2 := src.Push("B", nil)

	s := newTestStack()
	s.Push("Keep", nil)

	err := s.ReplaceAllWithEntries([]Entry[string]{e1, e2})
	assert.True(t, IsInvariantViolation(err))
	assert.Equal(t, []string{"Keep"}, destinations(s), "state untouched on rejection")
}

func TestBackStack_ReplaceAllWithEntries_RejectsBlankID(t *testing.T) {
	s := newTestStack()

	err := s.ReplaceAllWithEntries([]Entry[string]{{}})
	assert.True(t, IsInvariantViolation(err))
}

func TestBackStack_PopUntil(t *testing.T) {
	s := newTestStack()
	s.Push("A", nil)
	s.Push("B", nil)
	s.Push("C", nil)
	s.Push("D", nil)

	found := s.PopUntil(func(d string) bool { return d == "B" })
	assert.True(t, found)
	assert.Equal(t, []string{"A", "B"}, destinations(s))
}

func TestBackStack_PopUntil_NotFound(t *testing.T) {
	s := newTestStack()
	s.Push("A", nil)
	s.Push("B", nil)
	s.Push("C", nil)

	found := s.PopUntil(func(d string) bool { return d == "X" })
	assert.False(t, found)
	// Exhausted down to the last poppable entry.
	assert.Equal(t, []string{"A"}, destinations(s))
}

func TestBackStack_PopToRoot_Idempotent(t *testing.T) {
	s := newTestStack()
	s.Push("A", nil)
	s.Push("B", nil)
	s.Push("C", nil)

	s.PopToRoot()
	assert.Equal(t, []string{"A"}, destinations(s))

	// Repeated calls after the first are no-ops.
	s.PopToRoot()
	s.PopToRoot()
	assert.Equal(t, []string{"A"}, destinations(s))
}

func TestBackStack_Clear(t *testing.T) {
	s := newTestStack()
	s.Push("A", nil)
	s.Push("B", nil)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestBackStack_EntriesReturnsCopy(t *testing.T) {
	s := newTestStack()
	s.Push("A", nil)

	entries := s.Entries()
	entries[0] = Entry[string]{}

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "A", cur.Destination())
}

func TestBackStack_TransitionStoredVerbatim(t *testing.T) {
	type customHint struct{ Name string }

	s := newTestStack()
	hint := customHint{Name: "fade"}
	e := s.Push("A", hint)

	assert.Equal(t, hint, e.Transition())

	cur, _ := s.Current()
	assert.Equal(t, hint, cur.Transition())
}
