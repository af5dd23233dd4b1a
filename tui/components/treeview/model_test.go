package treeview

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/lens/doctree"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	store := doctree.NewStore()
	store.BuildNodes(map[string]any{
		"server": map[string]any{
			"host": "localhost",
			"port": 8080.0,
		},
		"verbose": true,
	}, false)

	m := New(store, "test.json", doctree.SearchOptions{})
	m.SetSize(80, 24)
	return m
}

func TestCursorNavigation(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, 0, m.cursor)

	m = press(t, m, "j", "j")
	assert.Equal(t, 2, m.cursor)

	m = press(t, m, "k")
	assert.Equal(t, 1, m.cursor)

	// Cursor clamps at the top.
	m = press(t, m, "k", "k", "k")
	assert.Equal(t, 0, m.cursor)

	// G jumps to the last entry.
	m = press(t, m, "G")
	assert.Equal(t, len(m.store.DisplayNodes())-1, m.cursor)
}

func TestGotoTopSequence(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "G")
	require.NotEqual(t, 0, m.cursor)

	m = press(t, m, "g", "g")
	assert.Equal(t, 0, m.cursor)
}

func TestToggleCollapsesAndExpands(t *testing.T) {
	m := newTestModel(t)
	require.Len(t, m.store.DisplayNodes(), 4)

	// Cursor on "server" (a class root): toggle collapses it.
	m = press(t, m, "l")
	assert.Len(t, m.store.DisplayNodes(), 2)
	assert.True(t, m.store.DisplayNodes()[0].IsCollapsed())

	m = press(t, m, "l")
	assert.Len(t, m.store.DisplayNodes(), 4)
}

func TestFoldOnLeafCollapsesParent(t *testing.T) {
	m := newTestModel(t)

	// Move onto "host" (child of "server"), then fold outward.
	m = press(t, m, "j", "h")
	assert.True(t, m.store.DisplayNodes()[0].IsCollapsed())
	// Cursor follows the folded parent.
	assert.Equal(t, 0, m.cursor)
}

func TestCollapseAllAndExpandAllSequences(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "z", "M")
	assert.Len(t, m.store.DisplayNodes(), 2)

	m = press(t, m, "z", "R")
	assert.Len(t, m.store.DisplayNodes(), 4)
}

func TestSearchFlow(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "/")
	require.True(t, m.isSearching)

	m = typeText(t, m, "host")
	m = press(t, m, "enter")
	assert.False(t, m.isSearching)

	results := m.store.SearchResults()
	require.Len(t, results, 2)

	// Focus starts on the first match; n advances, N wraps back.
	first, ok := m.store.FocusedSearchResult()
	require.True(t, ok)
	assert.Equal(t, results[0], first)

	m = press(t, m, "n")
	second, _ := m.store.FocusedSearchResult()
	assert.Equal(t, results[1], second)

	m = press(t, m, "N")
	back, _ := m.store.FocusedSearchResult()
	assert.Equal(t, results[0], back)
}

func TestSearchFocusMovesCursor(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "/")
	m = typeText(t, m, "verbose")
	m = press(t, m, "enter")

	require.Len(t, m.store.SearchResults(), 1)
	// "verbose" is the last display entry; focus scrolled the cursor there.
	assert.Equal(t, len(m.store.DisplayNodes())-1, m.cursor)
}

func TestEscClearsSearch(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "/")
	m = typeText(t, m, "host")
	m = press(t, m, "esc")

	assert.False(t, m.isSearching)
	assert.Empty(t, m.store.SearchResults())
	assert.Equal(t, "", m.store.SearchTerm())
}

func TestInvalidPatternSurfacesError(t *testing.T) {
	store := doctree.NewStore()
	store.BuildNodes(map[string]any{"a": 1.0}, false)
	m := New(store, "test.json", doctree.SearchOptions{Regex: true})
	m.SetSize(80, 24)

	m = press(t, m, "/")
	m = typeText(t, m, "(broken")
	m = press(t, m, "enter")

	assert.Error(t, m.searchErr)
	assert.Empty(t, m.store.SearchResults())
}

func TestDocReloadRebuildsStore(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "G")

	next, _ := m.Update(DocReloadedMsg{Doc: map[string]any{"only": 1.0}})
	m = next.(Model)

	assert.Len(t, m.store.DisplayNodes(), 1)
	// Cursor clamps into the smaller document.
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "Document reloaded", m.statusMessage)
}

func TestBackEmitsBackMsg(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(keyMsg("esc"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.IsType(t, BackMsg{}, cmd())
}
