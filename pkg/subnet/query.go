package subnet

import (
	"slices"

	"github.com/matzehuels/subnetplan/pkg/ipv4"
)

// Leaf is a childless node annotated with its distance from the root.
type Leaf struct {
	*Node
	Depth int
}

// Leaves returns every leaf reachable from rootID, sorted ascending by
// network address regardless of traversal order. The walk uses an explicit
// stack rather than recursion; depth is bounded by the prefix length (at
// most 32 levels) but small default goroutine stacks are not assumed.
func Leaves(t Tree, rootID string) []Leaf {
	root, ok := t[rootID]
	if !ok {
		return nil
	}

	type frame struct {
		node  *Node
		depth int
	}

	var leaves []Leaf
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node.IsLeaf() {
			leaves = append(leaves, Leaf{Node: f.node, Depth: f.depth})
			continue
		}
		for _, childID := range f.node.Children {
			if child, ok := t[childID]; ok {
				stack = append(stack, frame{node: child, depth: f.depth + 1})
			}
		}
	}

	slices.SortFunc(leaves, func(a, b Leaf) int {
		switch {
		case a.Network < b.Network:
			return -1
		case a.Network > b.Network:
			return 1
		default:
			return a.Prefix - b.Prefix
		}
	})
	return leaves
}

// Path returns the chain of nodes from the root down to the given node,
// root first. Returns nil if the id is unknown. The walk follows ParentID
// links and is bounded by the maximum tree depth.
func Path(t Tree, id string) []*Node {
	n, ok := t[id]
	if !ok {
		return nil
	}

	path := make([]*Node, 0, ipv4.MaxPrefix+1)
	for n != nil && len(path) <= ipv4.MaxPrefix {
		path = append(path, n)
		if n.ParentID == "" {
			break
		}
		n = t[n.ParentID]
	}
	slices.Reverse(path)
	return path
}

// LeafCounts aggregates, for every node reachable from rootID, how many
// leaves its subtree contains: a leaf counts 1, an internal node the sum of
// its children. counts[rootID] always equals len(Leaves(t, rootID)).
func LeafCounts(t Tree, rootID string) map[string]int {
	counts := make(map[string]int, len(t))
	for _, leaf := range Leaves(t, rootID) {
		for _, n := range Path(t, leaf.ID) {
			counts[n.ID]++
		}
	}
	return counts
}
