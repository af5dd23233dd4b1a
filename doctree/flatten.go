package doctree

// Flatten produces the visible pre-order linearization of a root sequence.
// Each node is emitted, then its children's flattening if it is an expanded
// root; a collapsed root contributes only itself. Flatten is a pure function
// of current tree state and is safe to call repeatedly.
func Flatten(roots []*Node) []*Node {
	var out []*Node
	for _, root := range roots {
		out = flattenInto(out, root)
	}
	return out
}

// FlattenNode flattens a single subtree, honoring each descendant's own
// remembered collapse state. Used when a root is re-expanded so previously
// collapsed grandchildren stay collapsed.
func FlattenNode(n *Node) []*Node {
	return flattenInto(nil, n)
}

func flattenInto(out []*Node, n *Node) []*Node {
	out = append(out, n)
	if n.IsRoot() && !n.collapsed {
		for _, child := range n.children {
			out = flattenInto(out, child)
		}
	}
	return out
}

// VisibleDescendantCount returns the number of display-list entries the
// node currently contributes, including itself. It mirrors FlattenNode
// exactly but allocates nothing, so collapse can size its splice without
// re-flattening the subtree.
func VisibleDescendantCount(n *Node) int {
	count := 1
	if n.IsRoot() && !n.collapsed {
		for _, child := range n.children {
			count += VisibleDescendantCount(child)
		}
	}
	return count
}
