package doctree

import (
	"sort"
	"strconv"
)

// Build converts a decoded document into a sequence of root-level nodes.
// Top-level object entries become the roots, each at depth 0. A bare
// top-level array becomes its own single root rather than being wrapped
// under a synthetic key, and a bare scalar becomes a single Property root,
// so the builder is total over anything the decoders produce.
//
// Every constructed Class/Array node starts with its collapse flag set to
// allCollapsed; Property nodes ignore collapse. Map keys are emitted in
// sorted order: Go decodes objects into map[string]any, which does not
// preserve document order, and sorted keys keep traversal deterministic.
func Build(doc any, allCollapsed bool) []*Node {
	switch v := doc.(type) {
	case map[string]any:
		nodes := make([]*Node, 0, len(v))
		for _, key := range sortedKeys(v) {
			nodes = append(nodes, buildNode(key, v[key], 0, nil, allCollapsed))
		}
		return nodes
	case []any:
		return []*Node{buildNode("", v, 0, nil, allCollapsed)}
	case nil:
		return nil
	default:
		return []*Node{buildNode("", v, 0, nil, allCollapsed)}
	}
}

// buildNode constructs the subtree for one document value. Children of a
// Class or Array node sit one depth level below the node itself, matching
// the visual indentation of the nested document.
func buildNode(key string, value any, depth int, parent *Node, allCollapsed bool) *Node {
	n := &Node{key: key, depth: depth, parent: parent}

	switch v := value.(type) {
	case map[string]any:
		n.kind = KindClass
		n.collapsed = allCollapsed
		n.children = make([]*Node, 0, len(v))
		for _, k := range sortedKeys(v) {
			n.children = append(n.children, buildNode(k, v[k], depth+1, n, allCollapsed))
		}
	case []any:
		n.kind = KindArray
		n.collapsed = allCollapsed
		n.children = make([]*Node, 0, len(v))
		for i, item := range v {
			n.children = append(n.children, buildNode(strconv.Itoa(i), item, depth+1, n, allCollapsed))
		}
	default:
		// Scalars, and any type the decoder hands us that we don't
		// recognize, become opaque Property values.
		n.kind = KindProperty
		n.scalar = value
	}

	return n
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
