package doctree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoRootDoc builds a document whose two top-level entries each flatten to
// 24 nodes (48 total): the root, ten scalar fields, a nested class of eight
// scalars, and an array of three elements.
func twoRootDoc() map[string]any {
	makeRoot := func() map[string]any {
		root := map[string]any{}
		for i := 0; i < 10; i++ {
			root[fmt.Sprintf("f%02d", i)] = float64(i)
		}
		sub := map[string]any{}
		for i := 0; i < 8; i++ {
			sub[fmt.Sprintf("s%d", i)] = fmt.Sprintf("value-%d", i)
		}
		root["sub"] = sub
		root["arr"] = []any{1.0, 2.0, 3.0}
		return root
	}
	return map[string]any{"alpha": makeRoot(), "beta": makeRoot()}
}

func newTestStore(t *testing.T, allCollapsed bool) *Store {
	t.Helper()
	s := NewStore()
	s.BuildNodes(twoRootDoc(), allCollapsed)
	return s
}

func TestBuildNodesInstallsFullDisplayList(t *testing.T) {
	s := newTestStore(t, false)
	assert.Len(t, s.DisplayNodes(), 48)
	assert.Len(t, s.Roots(), 2)
}

func TestCollapseAndExpandSpliceDisplayList(t *testing.T) {
	s := newTestStore(t, false)

	alpha := s.DisplayNodes()[0]
	require.Equal(t, "alpha", alpha.Key())

	s.CollapseNode(alpha)
	assert.Len(t, s.DisplayNodes(), 25)
	assert.True(t, alpha.IsCollapsed())
	// The root itself stays visible at its old index.
	assert.Same(t, alpha, s.DisplayNodes()[0])
	assert.Equal(t, "beta", s.DisplayNodes()[1].Key())

	s.ExpandNode(alpha)
	assert.Len(t, s.DisplayNodes(), 48)
	assert.False(t, alpha.IsCollapsed())
}

func TestCollapseExpandRoundTripRestoresList(t *testing.T) {
	s := newTestStore(t, false)
	before := s.DisplayNodes()

	alpha := before[0]
	s.CollapseNode(alpha)
	s.ExpandNode(alpha)

	after := s.DisplayNodes()
	require.Equal(t, len(before), len(after))
	for i := range before {
		assert.Same(t, before[i], after[i], "display index %d", i)
	}
}

func TestCollapsePreservesDescendantMemory(t *testing.T) {
	s := newTestStore(t, false)

	alpha := s.DisplayNodes()[0]
	var sub *Node
	for _, child := range alpha.Children() {
		if child.Key() == "sub" {
			sub = child
		}
	}
	require.NotNil(t, sub)

	// Collapse the grandchild, then the parent; re-expanding the parent must
	// leave the grandchild collapsed.
	s.CollapseNode(sub)
	s.CollapseNode(alpha)
	s.ExpandNode(alpha)

	assert.True(t, sub.IsCollapsed())
	// 48 minus sub's 8 hidden children.
	assert.Len(t, s.DisplayNodes(), 40)

	s.ExpandNode(sub)
	assert.Len(t, s.DisplayNodes(), 48)
}

func TestAllCollapsedBuildThenExpandAll(t *testing.T) {
	s := newTestStore(t, true)
	assert.Len(t, s.DisplayNodes(), 2)

	s.ExpandAll()
	assert.Len(t, s.DisplayNodes(), 48)

	s.CollapseAll()
	assert.Len(t, s.DisplayNodes(), 2)
}

func TestNoOpMutationsEmitNoNotification(t *testing.T) {
	s := newTestStore(t, false)

	var events []Event
	unsubscribe := s.Subscribe(func(ev Event) { events = append(events, ev) })
	defer unsubscribe()

	display := s.DisplayNodes()
	alpha := display[0]

	// Expand on an expanded root, collapse on a non-root, nil node.
	s.ExpandNode(alpha)
	s.CollapseNode(display[2]) // a scalar field
	s.CollapseNode(nil)
	assert.Empty(t, events)

	// Collapse on an already-collapsed root.
	s.CollapseNode(alpha)
	require.Len(t, events, 1)
	s.CollapseNode(alpha)
	assert.Len(t, events, 1)

	// A node hidden under a collapsed ancestor is silently ignored.
	var sub *Node
	for _, child := range alpha.Children() {
		if child.Key() == "sub" {
			sub = child
		}
	}
	s.CollapseNode(sub)
	assert.Len(t, events, 1)
}

func TestEachMutationNotifiesExactlyOnce(t *testing.T) {
	s := NewStore()

	var events []Event
	s.Subscribe(func(ev Event) { events = append(events, ev) })

	s.BuildNodes(twoRootDoc(), false)
	require.Len(t, events, 1)
	assert.Equal(t, EventRebuilt, events[0].Kind)

	alpha := s.DisplayNodes()[0]
	s.CollapseNode(alpha)
	require.Len(t, events, 2)
	assert.Equal(t, EventNodeCollapsed, events[1].Kind)
	assert.Same(t, alpha, events[1].Node)

	s.ExpandNode(alpha)
	require.Len(t, events, 3)
	assert.Equal(t, EventNodeExpanded, events[2].Kind)

	s.CollapseAll()
	s.ExpandAll()
	require.Len(t, events, 5)
	assert.Equal(t, EventAllCollapsed, events[3].Kind)
	assert.Equal(t, EventAllExpanded, events[4].Kind)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := NewStore()

	count := 0
	unsubscribe := s.Subscribe(func(Event) { count++ })
	s.BuildNodes(twoRootDoc(), false)
	require.Equal(t, 1, count)

	unsubscribe()
	s.CollapseAll()
	assert.Equal(t, 1, count)
}

func TestDisplayNodesSnapshotSurvivesMutation(t *testing.T) {
	s := newTestStore(t, false)

	snapshot := s.DisplayNodes()
	require.Len(t, snapshot, 48)

	s.CollapseNode(snapshot[0])

	// The collaborator-held slice keeps its old contents; only the store's
	// current view shrank.
	assert.Len(t, snapshot, 48)
	assert.Len(t, s.DisplayNodes(), 25)
	assert.Equal(t, "arr", snapshot[1].Key())
}

func TestVisibleDescendantCountMatchesFlatten(t *testing.T) {
	s := newTestStore(t, false)

	alpha := s.DisplayNodes()[0]
	assert.Equal(t, len(FlattenNode(alpha)), VisibleDescendantCount(alpha))

	// Still matches with a nested collapse in effect.
	for _, child := range alpha.Children() {
		if child.Key() == "sub" {
			child.Collapse()
		}
	}
	assert.Equal(t, len(FlattenNode(alpha)), VisibleDescendantCount(alpha))
	assert.Equal(t, 16, VisibleDescendantCount(alpha))
}

func TestFlattenPreOrder(t *testing.T) {
	roots := Build(map[string]any{
		"outer": map[string]any{
			"inner": map[string]any{"leaf": 1.0},
			"z":     2.0,
		},
	}, false)

	flat := Flatten(roots)
	keys := make([]string, len(flat))
	for i, n := range flat {
		keys[i] = n.Key()
	}
	assert.Equal(t, []string{"outer", "inner", "leaf", "z"}, keys)
}

func TestRebuildReplacesTree(t *testing.T) {
	s := newTestStore(t, false)
	old := s.DisplayNodes()[0]

	s.BuildNodes(map[string]any{"only": 1.0}, false)
	require.Len(t, s.DisplayNodes(), 1)
	assert.NotSame(t, old, s.DisplayNodes()[0])
}
