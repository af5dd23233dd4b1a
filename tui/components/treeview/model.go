// Package treeview is the bubbletea widget that renders a doctree.Store as
// an expandable document tree. All tree mutations go through the store; the
// widget owns only presentation state (cursor, viewport, search input).
package treeview

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"

	"github.com/grovetools/lens/doctree"
	"github.com/grovetools/lens/tui/components"
	"github.com/grovetools/lens/tui/theme"
	"github.com/grovetools/lens/tui/utils/scrollbar"
)

// Model is the Bubble Tea model for the document tree viewer.
type Model struct {
	store  *doctree.Store
	keys   KeyMap
	title  string
	width  int
	height int
	ready  bool

	viewport   viewport.Model
	cursor     int
	lastZPress time.Time // For detecting zR/zM sequences
	lastGPress time.Time // For detecting gg sequence

	// Search state
	isSearching bool
	searchInput textinput.Model
	searchOpts  doctree.SearchOptions
	searchErr   error

	// matchesByNode indexes the store's match list per node for rendering.
	matchesByNode map[*doctree.Node][]doctree.Match

	// Status message for yank/reload confirmations
	statusMessage string

	// Watching indicates live-reload is active; shown in the status bar.
	Watching bool
}

// BackMsg is sent when the user wants to exit the viewer.
type BackMsg struct{}

// DocReloadedMsg carries a freshly decoded document (from a file watcher)
// into the viewer; the store is rebuilt in place.
type DocReloadedMsg struct {
	Doc interface{}
	Err error
}

// New creates a viewer over an already-populated store.
func New(store *doctree.Store, title string, searchOpts doctree.SearchOptions) Model {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "/"
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		store:       store,
		keys:        DefaultKeyMap(),
		title:       title,
		searchInput: ti,
		searchOpts:  searchOpts,
	}
}

// Store exposes the underlying view-model, mainly for tests and embedding
// applications.
func (m *Model) Store() *doctree.Store { return m.store }

// SetSize sets the size of the component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	viewHeight := height - 2 // title and status bar
	if viewHeight < 1 {
		viewHeight = 1
	}
	if m.ready {
		m.viewport.Width = width
		m.viewport.Height = viewHeight
	} else {
		m.viewport = viewport.New(width, viewHeight)
		m.ready = true
	}
	m.updateContent()
}

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and user input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle search input mode
	if m.isSearching {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.Type {
			case tea.KeyEnter:
				m.isSearching = false
				m.runSearch(m.searchInput.Value())
				m.updateContent()
				return m, nil
			case tea.KeyEsc:
				m.isSearching = false
				m.searchInput.SetValue("")
				m.runSearch("")
				m.updateContent()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		keyStr := msg.String()

		// Handle zR and zM sequences
		if keyStr == "z" {
			m.lastZPress = time.Now()
			return m, nil
		}
		if time.Since(m.lastZPress) < 500*time.Millisecond {
			switch keyStr {
			case "R", "shift+r":
				m.store.ExpandAll()
				m.clampCursor()
				m.lastZPress = time.Time{}
				m.updateContent()
				return m, nil
			case "M", "shift+m":
				m.store.CollapseAll()
				m.cursor = 0
				m.lastZPress = time.Time{}
				m.updateContent()
				return m, nil
			}
		}

		// Handle gg sequence (go to top)
		if keyStr == "g" {
			if time.Since(m.lastGPress) < 500*time.Millisecond {
				m.cursor = 0
				m.updateContent()
				m.lastGPress = time.Time{}
				return m, nil
			}
			m.lastGPress = time.Now()
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Search):
			m.isSearching = true
			m.searchInput.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.NextResult):
			m.store.SetScrollFunc(func(i int) { m.cursor = i })
			m.store.FocusNextSearchResult()
			m.updateContent()
			return m, nil

		case key.Matches(msg, m.keys.PrevResult):
			m.store.SetScrollFunc(func(i int) { m.cursor = i })
			m.store.FocusPreviousSearchResult()
			m.updateContent()
			return m, nil

		case key.Matches(msg, m.keys.YankValue):
			display := m.store.DisplayNodes()
			if m.cursor < len(display) {
				content := nodeValueString(display[m.cursor])
				if err := clipboard.WriteAll(content); err != nil {
					m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
				} else {
					m.statusMessage = fmt.Sprintf("Copied: %s", truncateString(content, 40))
				}
				m.updateContent()
				return m, m.clearStatusAfter()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.updateContent()
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.store.DisplayNodes())-1 {
				m.cursor++
				m.updateContent()
			}
			return m, nil

		case key.Matches(msg, m.keys.HalfPageUp):
			m.cursor -= m.viewport.Height / 2
			if m.cursor < 0 {
				m.cursor = 0
			}
			m.updateContent()
			return m, nil

		case key.Matches(msg, m.keys.HalfPageDown):
			m.cursor += m.viewport.Height / 2
			m.clampCursor()
			m.updateContent()
			return m, nil

		case key.Matches(msg, m.keys.GotoEnd):
			m.cursor = len(m.store.DisplayNodes()) - 1
			if m.cursor < 0 {
				m.cursor = 0
			}
			m.updateContent()
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			display := m.store.DisplayNodes()
			if m.cursor < len(display) {
				n := display[m.cursor]
				if n.IsCollapsed() {
					m.store.ExpandNode(n)
				} else {
					m.store.CollapseNode(n)
				}
				m.clampCursor()
				m.updateContent()
			}
			return m, nil

		case key.Matches(msg, m.keys.Fold):
			// h folds the current node, or its parent when already folded
			// (vim-style outward fold).
			display := m.store.DisplayNodes()
			if m.cursor < len(display) {
				n := display[m.cursor]
				if n.IsRoot() && !n.IsCollapsed() {
					m.store.CollapseNode(n)
				} else if parent := n.Parent(); parent != nil {
					m.store.CollapseNode(parent)
					if i := m.indexOf(parent); i >= 0 {
						m.cursor = i
					}
				}
				m.clampCursor()
				m.updateContent()
			}
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.runSearch("")
			m.searchInput.SetValue("")
			return m, func() tea.Msg { return BackMsg{} }
		}

	case DocReloadedMsg:
		if msg.Err == nil {
			m.store.BuildNodes(msg.Doc, false)
			m.matchesByNode = nil
			m.searchErr = nil
			m.clampCursor()
			m.statusMessage = "Document reloaded"
			m.updateContent()
			return m, m.clearStatusAfter()
		}
		m.statusMessage = fmt.Sprintf("Reload failed: %v", msg.Err)
		m.updateContent()
		return m, m.clearStatusAfter()

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		m.updateContent()
		return m, nil
	}

	return m, nil
}

// runSearch executes a search against the store and refreshes the per-node
// match index used by the renderer.
func (m *Model) runSearch(term string) {
	m.store.SetScrollFunc(func(i int) { m.cursor = i })
	m.searchErr = m.store.Search(term, m.searchOpts)

	m.matchesByNode = make(map[*doctree.Node][]doctree.Match)
	for _, match := range m.store.SearchResults() {
		m.matchesByNode[match.Node] = append(m.matchesByNode[match.Node], match)
	}
}

func (m *Model) indexOf(n *doctree.Node) int {
	for i, d := range m.store.DisplayNodes() {
		if d == n {
			return i
		}
	}
	return -1
}

func (m *Model) clampCursor() {
	if max := len(m.store.DisplayNodes()) - 1; m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// nodeValueString returns the yankable string form of a node: scalars yield
// their display string, subtrees re-marshal to pretty JSON.
func nodeValueString(n *doctree.Node) string {
	if !n.IsRoot() {
		return n.ValueString()
	}
	data, err := json.MarshalIndent(nodeToValue(n), "", "  ")
	if err != nil {
		return n.Key()
	}
	return string(data)
}

// nodeToValue reconstructs the decoded document value under a node.
func nodeToValue(n *doctree.Node) interface{} {
	switch {
	case n.IsClass():
		obj := make(map[string]interface{}, n.ChildrenCount())
		for _, child := range n.Children() {
			obj[child.Key()] = nodeToValue(child)
		}
		return obj
	case n.IsArray():
		arr := make([]interface{}, 0, n.ChildrenCount())
		for _, child := range n.Children() {
			arr = append(arr, nodeToValue(child))
		}
		return arr
	default:
		return n.Value()
	}
}

// truncateString truncates a string to maxWidth display cells.
func truncateString(s string, maxWidth int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, maxWidth, "...")
}

// clearStatusMsg is sent to clear the status message after a delay.
type clearStatusMsg struct{}

// clearStatusAfter returns a command that clears the status after 2 seconds.
func (m *Model) clearStatusAfter() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// updateContent renders the tree and updates the viewport.
func (m *Model) updateContent() {
	if !m.ready {
		return
	}

	focused, hasFocus := m.store.FocusedSearchResult()

	var lines []string
	for i, n := range m.store.DisplayNodes() {
		var focusedMatch *doctree.Match
		if hasFocus && focused.Node == n {
			focusedMatch = &focused
		}
		lines = append(lines, m.renderNode(n, i == m.cursor, focusedMatch))
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))

	// Auto-scroll to keep cursor visible
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// renderNode renders a single node line.
func (m *Model) renderNode(n *doctree.Node, selected bool, focusedMatch *doctree.Match) string {
	t := theme.DefaultTheme
	indent := strings.Repeat("  ", n.TreeDepth())

	// Fold icon for roots, alignment spaces for leaves.
	var prefix string
	switch {
	case n.IsRoot() && n.IsCollapsed():
		prefix = theme.IconFolderClosed + " "
	case n.IsRoot():
		prefix = theme.IconFolderOpen + " "
	default:
		prefix = "  "
	}

	keyDisplay := m.renderText(n, doctree.LocationKey, n.Key(), t.Key, focusedMatch)

	var valueDisplay string
	switch {
	case n.IsClass():
		if n.IsCollapsed() {
			valueDisplay = t.Container.Render(fmt.Sprintf("{...} (%d fields)", n.ChildrenCount()))
		} else {
			valueDisplay = t.Container.Render("{")
		}
	case n.IsArray():
		if n.IsCollapsed() {
			valueDisplay = t.Container.Render(fmt.Sprintf("[...] (%d items)", n.ChildrenCount()))
		} else {
			valueDisplay = t.Container.Render("[")
		}
	default:
		valueDisplay = m.renderText(n, doctree.LocationValue, n.ValueString(), m.valueStyle(n), focusedMatch)
	}

	var line string
	if n.Key() == "" {
		// A bare top-level array root has no key to show.
		line = fmt.Sprintf("%s%s%s", indent, prefix, valueDisplay)
	} else {
		line = fmt.Sprintf("%s%s%s: %s", indent, prefix, keyDisplay, valueDisplay)
	}

	if selected {
		line = t.Selected.Render(line)
	} else if n.IsHighlighted() {
		line = t.Highlight.Render(line)
	}

	return line
}

// valueStyle picks the theme style for a scalar value.
func (m *Model) valueStyle(n *doctree.Node) lipgloss.Style {
	t := theme.DefaultTheme
	switch n.Value().(type) {
	case string:
		return t.String
	case bool:
		return t.Boolean
	case nil:
		return t.Null
	default:
		return t.Number
	}
}

// renderText renders key or value text with search-match substrings
// highlighted. Match offsets index the raw text, so styling is applied
// segment by segment.
func (m *Model) renderText(n *doctree.Node, loc doctree.MatchLocation, text string, baseStyle lipgloss.Style, focusedMatch *doctree.Match) string {
	matches := m.matchesByNode[n]
	if len(matches) == 0 {
		return baseStyle.Render(text)
	}

	t := theme.DefaultTheme
	var b strings.Builder
	pos := 0
	for _, match := range matches {
		if match.Location != loc || match.Start < pos || match.End > len(text) {
			continue
		}
		b.WriteString(baseStyle.Render(text[pos:match.Start]))
		style := t.MatchHighlight
		if focusedMatch != nil && *focusedMatch == match {
			style = t.FocusedMatch
		}
		b.WriteString(style.Render(text[match.Start:match.End]))
		pos = match.End
	}
	b.WriteString(baseStyle.Render(text[pos:]))
	return b.String()
}

// View renders the document tree with a title and status bar.
func (m Model) View() string {
	if !m.ready {
		return "Initializing viewer..."
	}

	if len(m.store.Roots()) == 0 {
		return theme.DefaultTheme.Muted.Render("No document to display")
	}

	t := theme.DefaultTheme
	var title string
	if m.Watching {
		title = components.RenderHeader(m.title, theme.IconWatch+" watching")
	} else {
		title = components.RenderHeader(m.title)
	}

	var statusBar string
	switch {
	case m.statusMessage != "":
		statusBar = t.Success.Render(m.statusMessage)
	case m.isSearching:
		statusBar = m.searchInput.View()
	case m.searchErr != nil:
		statusBar = t.Error.Render(fmt.Sprintf("%s %v", theme.IconError, m.searchErr))
	case m.store.SearchTerm() != "":
		results := m.store.SearchResults()
		if len(results) > 0 {
			focusedIndex := 0
			if match, ok := m.store.FocusedSearchResult(); ok {
				for i, r := range results {
					if r == match {
						focusedIndex = i
						break
					}
				}
			}
			statusBar = t.Muted.Render(fmt.Sprintf("/%s [%d/%d] (n/N to navigate, / to search again)",
				m.store.SearchTerm(), focusedIndex+1, len(results)))
		} else {
			statusBar = t.Muted.Render(fmt.Sprintf("/%s (no results)", m.store.SearchTerm()))
		}
	default:
		statusBar = components.RenderKeyValue("nodes", fmt.Sprintf("%d", len(m.store.DisplayNodes())))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, scrollbar.Overlay(&m.viewport), statusBar)
}
