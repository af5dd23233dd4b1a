// Package doctree is the view-model behind the lens document explorer. It
// converts a decoded JSON/YAML document into a mutable tree of typed nodes,
// maintains the flat list of currently visible nodes, and runs full-tree
// text search with ordered, cyclically navigable matches. Rendering, input
// handling, and scrolling are owned by collaborators (see tui/components).
package doctree

import (
	"fmt"
	"strconv"
)

// Kind discriminates the node variants. A Property holds a scalar value;
// Class and Array hold ordered children and can be collapsed.
type Kind int

const (
	KindProperty Kind = iota
	KindClass
	KindArray
)

// String returns the lowercase variant name, matching how values are
// described in logs and error details.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindArray:
		return "array"
	default:
		return "property"
	}
}

// Node is one entry of the document tree: a key/value pair of an object or
// one element of an array. The tree is single-owner and acyclic; parent is a
// non-owning back-reference used only for upward queries.
type Node struct {
	key   string
	kind  Kind
	depth int

	parent *Node

	collapsed   bool
	highlighted bool
	focused     bool

	// scalar is set for Property nodes; children for Class and Array nodes.
	// Class children are kept in document (sorted-key) order, Array children
	// in element order.
	scalar   any
	children []*Node
}

// Key returns the node's key. For array elements this is the stringified
// element index.
func (n *Node) Key() string { return n.key }

// Value returns the scalar value for Property nodes and nil for roots.
func (n *Node) Value() any {
	if n.kind != KindProperty {
		return nil
	}
	return n.scalar
}

// TreeDepth returns the node's depth in the original nested document.
// Top-level entries are at depth 0; children of a root are one level deeper.
func (n *Node) TreeDepth() int { return n.depth }

// Parent returns the owning node, or nil for a document root.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether the node can own children (Class or Array).
func (n *Node) IsRoot() bool { return n.kind == KindClass || n.kind == KindArray }

// IsClass reports whether the node is an object entry with keyed children.
func (n *Node) IsClass() bool { return n.kind == KindClass }

// IsArray reports whether the node is a sequence with indexed children.
func (n *Node) IsArray() bool { return n.kind == KindArray }

// IsCollapsed reports the node's own collapse flag. It is only meaningful
// for roots; Property nodes are never collapsed.
func (n *Node) IsCollapsed() bool { return n.collapsed }

// IsHighlighted reports the transient highlight flag.
func (n *Node) IsHighlighted() bool { return n.highlighted }

// IsFocused reports the transient focus flag.
func (n *Node) IsFocused() bool { return n.focused }

// ChildrenCount returns the number of direct children (0 for Property).
func (n *Node) ChildrenCount() int { return len(n.children) }

// Children returns the direct children in display order. Callers must treat
// the returned slice as read-only.
func (n *Node) Children() []*Node { return n.children }

// Collapse sets the node's collapse flag. No-op for Property nodes.
func (n *Node) Collapse() {
	if n.IsRoot() {
		n.collapsed = true
	}
}

// Expand clears the node's collapse flag. No-op for Property nodes.
func (n *Node) Expand() {
	if n.IsRoot() {
		n.collapsed = false
	}
}

// Focus sets the transient focus flag on this node only.
func (n *Node) Focus(focused bool) { n.focused = focused }

// Highlight sets the highlight flag on the node and its entire subtree.
func (n *Node) Highlight(highlighted bool) {
	n.highlighted = highlighted
	for _, child := range n.children {
		child.Highlight(highlighted)
	}
}

// ValueString returns the canonical display string of a Property value.
// This is the text the search engine matches against; roots return the
// empty string. Integral floats are printed without a fractional part so
// JSON numbers like 42 don't show up as "42.000000" or "4.2e+01".
func (n *Node) ValueString() string {
	if n.kind != KindProperty {
		return ""
	}
	return formatScalar(n.scalar)
}

func formatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}
