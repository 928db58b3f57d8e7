// Package subnet implements the CIDR partition tree behind subnetplan.
//
// A partition starts from a single base block and is refined by splitting
// blocks into halves and joining sibling halves back together. The tree is
// stored as a flat id->node arena rather than a pointer graph: every node is
// addressed by a deterministic path id derived from the root ("root",
// "root-0", "root-0-1", ...), so a given logical sub-block always resolves
// to the same id across split/join cycles. External state keyed by id
// (selection, colors, comments) therefore survives structural changes to
// unrelated parts of the tree.
//
// Trees are immutable snapshots. Mutators never modify the receiver; they
// return a new Tree that shares all untouched nodes with the previous
// snapshot, plus a changed flag. Callers may freely retain earlier snapshots
// for undo/history without synchronization.
package subnet

import (
	"maps"

	"github.com/matzehuels/subnetplan/pkg/ipv4"
)

// RootID is the id of the base block in every tree.
const RootID = "root"

// Node is one block in the partition. Nodes are value-immutable once placed
// in a tree: mutators replace nodes rather than editing them in place.
type Node struct {
	ID       string // Deterministic path id ("root", "root-0", "root-0-1", ...)
	Network  uint32 // Block start, always prefix-aligned
	Prefix   int    // Prefix length in [0,32]
	ParentID string // Owning node id, empty only for the root

	// Children holds the left and right child ids, in address order.
	// It is nil for a leaf and has exactly two entries for a split node.
	Children []string
}

// IsLeaf reports whether the block has not been split.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// CIDR returns the block in "address/prefix" notation.
func (n *Node) CIDR() string { return ipv4.FormatCIDR(n.Network, n.Prefix) }

// Contains reports whether addr falls inside the node's address range.
func (n *Node) Contains(addr uint32) bool {
	return addr >= n.Network && addr <= ipv4.LastAddress(n.Network, n.Prefix)
}

// Tree is a partition snapshot: a flat map from path id to node.
// The zero value is not usable - create trees with [New] or [Build].
type Tree map[string]*Node

// New creates a single-leaf tree covering the given base block and returns
// the root id alongside it. The caller must supply a normalized network
// (no host bits) and a prefix in [0,32]; use [ipv4.ParseCIDR] to validate
// and normalize user input first.
func New(network uint32, prefix int) (string, Tree) {
	root := &Node{ID: RootID, Network: network, Prefix: prefix}
	return RootID, Tree{RootID: root}
}

// Node returns the node with the given id and true, or nil and false.
func (t Tree) Node(id string) (*Node, bool) {
	n, ok := t[id]
	return n, ok
}

// clone returns a shallow copy of the arena. Node pointers are shared;
// mutators replace entries they touch with fresh node values.
func (t Tree) clone() Tree {
	out := make(Tree, len(t)+2)
	maps.Copy(out, t)
	return out
}

// Split halves the identified block and returns the resulting snapshot.
// The left child keeps the parent's network, the right child starts at the
// midpoint, and both have prefix parent+1.
//
// Split is a no-op (the original tree and false are returned) when the node
// does not exist, already has children, or is a /32 that cannot be divided.
// A declined split is normal operation, not an error.
func (t Tree) Split(id string) (Tree, bool) {
	n, ok := t[id]
	if !ok || !n.IsLeaf() || n.Prefix >= ipv4.MaxPrefix {
		return t, false
	}

	childPrefix := n.Prefix + 1
	leftID, rightID := id+"-0", id+"-1"

	out := t.clone()
	parent := *n
	parent.Children = []string{leftID, rightID}
	out[id] = &parent
	out[leftID] = &Node{ID: leftID, Network: n.Network, Prefix: childPrefix, ParentID: id}
	out[rightID] = &Node{
		ID:       rightID,
		Network:  n.Network + ipv4.BlockSize(childPrefix),
		Prefix:   childPrefix,
		ParentID: id,
	}
	return out, true
}

// Join collapses the identified block's two children back into it and
// returns the resulting snapshot. A node is joinable only when both children
// exist and are themselves leaves, so joins propagate one level at a time
// and never collapse multi-level subtrees in a single call.
//
// Join is a no-op (the original tree and false are returned) when the node
// is not joinable.
func (t Tree) Join(id string) (Tree, bool) {
	if !t.Joinable(id) {
		return t, false
	}
	n := t[id]

	out := t.clone()
	delete(out, n.Children[0])
	delete(out, n.Children[1])
	parent := *n
	parent.Children = nil
	out[id] = &parent
	return out, true
}

// Joinable reports whether Join would succeed for the given id: the node
// exists, has children, and both children are leaves. UIs use this to
// enable or disable join controls.
func (t Tree) Joinable(id string) bool {
	n, ok := t[id]
	if !ok || n.IsLeaf() {
		return false
	}
	for _, childID := range n.Children {
		child, ok := t[childID]
		if !ok || !child.IsLeaf() {
			return false
		}
	}
	return true
}
