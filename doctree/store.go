package doctree

// EventKind identifies which mutation produced a change notification.
type EventKind int

const (
	// EventRebuilt is emitted after BuildNodes installs a new tree.
	EventRebuilt EventKind = iota
	// EventNodeCollapsed and EventNodeExpanded carry the toggled node.
	EventNodeCollapsed
	EventNodeExpanded
	// EventAllCollapsed and EventAllExpanded follow the bulk operations.
	EventAllCollapsed
	EventAllExpanded
	// EventSearchUpdated follows Search; EventSearchFocused follows focus
	// navigation and carries the newly focused match.
	EventSearchUpdated
	EventSearchFocused
)

// Event describes one externally visible change to the store.
type Event struct {
	Kind  EventKind
	Node  *Node  // the collapsed/expanded node, when applicable
	Match *Match // the focused match for EventSearchFocused
}

// Observer receives change notifications. Each public mutating call notifies
// at most once, after all internal sub-steps, so observers never see a
// transient inconsistent state.
type Observer func(Event)

// Store owns the node tree and the authoritative display list: the ordered
// sequence of nodes currently visible given each root's collapse state. All
// mutations run as discrete synchronous steps on the single owner goroutine;
// there is no internal locking because there is no concurrent writer.
//
// Mutations splice into fresh slices rather than editing the slice a
// collaborator may still hold, so DisplayNodes and SearchResults snapshots
// stay stable across later operations.
type Store struct {
	roots   []*Node
	display []*Node

	observers  map[int]Observer
	nextObsID  int
	scrollFunc func(displayIndex int)

	search searchState
}

// NewStore returns an empty store. Call BuildNodes to install a document.
func NewStore() *Store {
	return &Store{
		observers: make(map[int]Observer),
		search:    newSearchState(),
	}
}

// Subscribe registers an observer and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

// SetScrollFunc installs the collaborator-owned "scroll to index" capability.
// It is invoked by search focus navigation and by nothing else.
func (s *Store) SetScrollFunc(fn func(displayIndex int)) { s.scrollFunc = fn }

func (s *Store) notify(ev Event) {
	for _, fn := range s.observers {
		fn(ev)
	}
}

// BuildNodes discards any prior tree, converts the decoded document into a
// fresh node tree, and installs its flattening as the display list. Search
// state from the previous tree is cleared; any in-flight search scan against
// the old tree is superseded. Emits a single EventRebuilt.
func (s *Store) BuildNodes(doc any, allCollapsed bool) {
	s.roots = Build(doc, allCollapsed)
	s.display = Flatten(s.roots)
	s.search.reset()
	s.notify(Event{Kind: EventRebuilt})
}

// Roots returns the top-level nodes of the current tree.
func (s *Store) Roots() []*Node { return s.roots }

// DisplayNodes returns the current display list. The returned slice is a
// momentary read-only snapshot; later mutations produce new slices instead
// of editing this one.
func (s *Store) DisplayNodes() []*Node { return s.display }

// indexOf locates a node in the display list by identity, or -1.
func (s *Store) indexOf(n *Node) int {
	for i, d := range s.display {
		if d == n {
			return i
		}
	}
	return -1
}

// CollapseNode removes node's visible descendants from the display list and
// marks it collapsed. Silent no-op when the node is not an expanded root or
// is not currently visible, keeping the operation total and idempotent.
// Descendants' own collapse flags are left untouched so their state is
// remembered across an ancestor's collapse/expand cycle.
func (s *Store) CollapseNode(n *Node) {
	if n == nil || !n.IsRoot() || n.collapsed {
		return
	}
	i := s.indexOf(n)
	if i < 0 {
		return
	}

	// The node currently contributes visibleSpan entries; drop everything
	// after the node itself in the half-open range [i+1, i+visibleSpan).
	visibleSpan := VisibleDescendantCount(n)
	next := make([]*Node, 0, len(s.display)-(visibleSpan-1))
	next = append(next, s.display[:i+1]...)
	next = append(next, s.display[i+visibleSpan:]...)
	s.display = next

	n.collapsed = true
	s.notify(Event{Kind: EventNodeCollapsed, Node: n})
}

// ExpandNode splices node's subtree flattening back into the display list
// and marks it expanded. Each descendant's own remembered collapse state is
// re-applied, so previously collapsed grandchildren stay collapsed. Silent
// no-op when the node is not a collapsed root or is not currently visible.
func (s *Store) ExpandNode(n *Node) {
	if n == nil || !n.IsRoot() || !n.collapsed {
		return
	}
	i := s.indexOf(n)
	if i < 0 {
		return
	}

	var subtree []*Node
	for _, child := range n.children {
		subtree = flattenInto(subtree, child)
	}

	next := make([]*Node, 0, len(s.display)+len(subtree))
	next = append(next, s.display[:i+1]...)
	next = append(next, subtree...)
	next = append(next, s.display[i+1:]...)
	s.display = next

	n.collapsed = false
	s.notify(Event{Kind: EventNodeExpanded, Node: n})
}

// CollapseAll collapses every root in the tree and rebuilds the display
// list in one pass, leaving only the top-level entries visible.
func (s *Store) CollapseAll() {
	s.walk(func(n *Node) { n.Collapse() })
	s.display = Flatten(s.roots)
	s.notify(Event{Kind: EventAllCollapsed})
}

// ExpandAll expands every root in the tree and rebuilds the display list.
func (s *Store) ExpandAll() {
	s.walk(func(n *Node) { n.Expand() })
	s.display = Flatten(s.roots)
	s.notify(Event{Kind: EventAllExpanded})
}

// walk visits every node of the full tree in pre-order, independent of
// collapse state.
func (s *Store) walk(visit func(*Node)) {
	var rec func(n *Node)
	rec = func(n *Node) {
		visit(n)
		for _, child := range n.children {
			rec(child)
		}
	}
	for _, root := range s.roots {
		rec(root)
	}
}
