package subnet

import (
	"slices"

	"github.com/matzehuels/subnetplan/pkg/ipv4"
)

// LeafDef identifies a target leaf block by network and prefix, with no
// tree-internal identity attached. It is the unit of exchange with the plan
// codec and with external front ends.
type LeafDef struct {
	Network uint32
	Prefix  int
}

// CIDR returns the definition in CIDR notation.
func (d LeafDef) CIDR() string {
	return ipv4.FormatCIDR(d.Network, d.Prefix)
}

// Build reconstructs the smallest tree whose leaf set includes every
// requested definition: it performs exactly the splits needed to expose each
// target and never pre-splits ranges no target falls into. Definitions are
// sorted by network internally, so the result does not depend on caller
// order. Callers are responsible for supplying pairwise disjoint definitions
// contained in the base block; overlaps are not detected.
//
// Definitions that cannot be placed are returned in skipped, in sorted
// order. A definition is skipped when it lies outside the base block, when
// its prefix is invalid or coarser than an existing block at its position
// (the range is already covered at least as broadly), or when the descent
// leaves its range. Callers that only care about the tree may ignore the
// skipped list; interactive callers can surface it as a warning.
func Build(baseNetwork uint32, basePrefix int, defs []LeafDef) (rootID string, tree Tree, skipped []LeafDef) {
	rootID, tree = New(baseNetwork, basePrefix)

	sorted := slices.Clone(defs)
	slices.SortFunc(sorted, func(a, b LeafDef) int {
		switch {
		case a.Network < b.Network:
			return -1
		case a.Network > b.Network:
			return 1
		default:
			return a.Prefix - b.Prefix
		}
	})

	for _, def := range sorted {
		if !ipv4.ValidPrefix(def.Prefix) {
			skipped = append(skipped, def)
			continue
		}
		placed := false
		id := rootID
		for {
			n := tree[id]
			if n.Network == def.Network && n.Prefix == def.Prefix {
				placed = true
				break
			}
			// Reaching a block at least as coarse as the target without an
			// exact match means the target is already covered here; splitting
			// further could not expose it as a leaf.
			if n.Prefix >= def.Prefix {
				break
			}
			if !n.Contains(def.Network) {
				break
			}
			if n.IsLeaf() {
				tree, _ = tree.Split(id)
				n = tree[id]
			}
			// The right child always begins at the midpoint, so picking the
			// branch is a single comparison.
			midpoint := n.Network + ipv4.BlockSize(n.Prefix+1)
			if def.Network < midpoint {
				id = n.Children[0]
			} else {
				id = n.Children[1]
			}
		}
		if !placed {
			skipped = append(skipped, def)
		}
	}
	return rootID, tree, skipped
}
