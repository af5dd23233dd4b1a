package doctree

import (
	"testing"

	"pgregory.net/rapid"
)

// genDocument generates a random decoded-document value, bounded in depth so
// trees stay small enough for exhaustive walks.
func genDocument(depth int) *rapid.Generator[any] {
	return rapid.Custom(func(t *rapid.T) any {
		kind := 0
		if depth > 0 {
			kind = rapid.IntRange(0, 2).Draw(t, "kind")
		}
		switch kind {
		case 1: // object
			n := rapid.IntRange(0, 4).Draw(t, "fields")
			m := make(map[string]any, n)
			for i := 0; i < n; i++ {
				key := rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "key")
				m[key] = genDocument(depth-1).Draw(t, "value")
			}
			return m
		case 2: // array
			n := rapid.IntRange(0, 4).Draw(t, "elems")
			arr := make([]any, 0, n)
			for i := 0; i < n; i++ {
				arr = append(arr, genDocument(depth-1).Draw(t, "elem"))
			}
			return arr
		default: // scalar
			switch rapid.IntRange(0, 3).Draw(t, "scalar") {
			case 0:
				return rapid.String().Draw(t, "str")
			case 1:
				return rapid.Float64().Draw(t, "num")
			case 2:
				return rapid.Bool().Draw(t, "bool")
			default:
				return nil
			}
		}
	})
}

// countNodes walks the full tree regardless of collapse state.
func countNodes(roots []*Node) int {
	total := 0
	var rec func(*Node)
	rec = func(n *Node) {
		total++
		for _, c := range n.Children() {
			rec(c)
		}
	}
	for _, r := range roots {
		rec(r)
	}
	return total
}

func collectRoots(roots []*Node) []*Node {
	var out []*Node
	var rec func(*Node)
	rec = func(n *Node) {
		if n.IsRoot() {
			out = append(out, n)
		}
		for _, c := range n.Children() {
			rec(c)
		}
	}
	for _, r := range roots {
		rec(r)
	}
	return out
}

// Flattening a fully expanded tree yields exactly one entry per node, in
// pre-order.
func TestFlattenRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := genDocument(3).Draw(t, "doc")
		roots := Build(doc, false)

		flat := Flatten(roots)
		if len(flat) != countNodes(roots) {
			t.Fatalf("flatten emitted %d nodes, tree has %d", len(flat), countNodes(roots))
		}
		seen := make(map[*Node]bool, len(flat))
		for _, n := range flat {
			if seen[n] {
				t.Fatalf("node %q emitted twice", n.Key())
			}
			seen[n] = true
		}
	})
}

// visibleDescendantCount must agree with the flattener for every node under
// arbitrary collapse flags.
func TestVisibleCountInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := genDocument(3).Draw(t, "doc")
		roots := Build(doc, false)

		containers := collectRoots(roots)
		for _, c := range containers {
			if rapid.Bool().Draw(t, "collapse") {
				c.Collapse()
			}
		}

		for _, c := range containers {
			if got, want := VisibleDescendantCount(c), len(FlattenNode(c)); got != want {
				t.Fatalf("node %q: visible count %d, flatten length %d", c.Key(), got, want)
			}
		}
	})
}

// Collapsing and re-expanding any visible root restores the display list.
func TestCollapseExpandInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := genDocument(3).Draw(t, "doc")
		s := NewStore()
		s.BuildNodes(doc, false)

		display := s.DisplayNodes()
		var candidates []*Node
		for _, n := range display {
			if n.IsRoot() && !n.IsCollapsed() {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) == 0 {
			t.Skip("no expanded roots in this document")
		}
		target := candidates[rapid.IntRange(0, len(candidates)-1).Draw(t, "target")]

		before := s.DisplayNodes()
		s.CollapseNode(target)
		s.ExpandNode(target)
		after := s.DisplayNodes()

		if len(before) != len(after) {
			t.Fatalf("length changed: %d != %d", len(before), len(after))
		}
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("display list diverged at index %d", i)
			}
		}
	})
}

// The display list always satisfies its defining invariant: a node is
// present iff all of its strict ancestors are expanded.
func TestDisplayListInvariantUnderRandomToggles(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := genDocument(3).Draw(t, "doc")
		s := NewStore()
		s.BuildNodes(doc, false)

		containers := collectRoots(s.Roots())
		ops := rapid.IntRange(0, 12).Draw(t, "ops")
		for i := 0; i < ops && len(containers) > 0; i++ {
			target := containers[rapid.IntRange(0, len(containers)-1).Draw(t, "node")]
			if target.IsCollapsed() {
				s.ExpandNode(target)
			} else {
				s.CollapseNode(target)
			}
		}

		visible := make(map[*Node]bool)
		for _, n := range s.DisplayNodes() {
			visible[n] = true
		}
		var rec func(n *Node, ancestorsExpanded bool)
		rec = func(n *Node, ancestorsExpanded bool) {
			if visible[n] != ancestorsExpanded {
				t.Fatalf("node %q: visible=%v, ancestors expanded=%v", n.Key(), visible[n], ancestorsExpanded)
			}
			for _, c := range n.Children() {
				rec(c, ancestorsExpanded && !n.IsCollapsed())
			}
		}
		for _, r := range s.Roots() {
			rec(r, true)
		}
	})
}
