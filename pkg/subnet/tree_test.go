package subnet

import (
	"testing"

	"github.com/matzehuels/subnetplan/pkg/ipv4"
)

func mustCIDR(t *testing.T, s string) (uint32, int) {
	t.Helper()
	network, prefix, _, err := ipv4.ParseCIDR(s)
	if err != nil {
		t.Fatalf("ParseCIDR(%q): %v", s, err)
	}
	return network, prefix
}

func leafCIDRs(t Tree, rootID string) []string {
	leaves := Leaves(t, rootID)
	out := make([]string, len(leaves))
	for i, leaf := range leaves {
		out[i] = leaf.CIDR()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNew(t *testing.T) {
	network, prefix := mustCIDR(t, "192.168.0.0/16")
	rootID, tree := New(network, prefix)

	if rootID != RootID {
		t.Errorf("rootID = %q, want %q", rootID, RootID)
	}
	if len(tree) != 1 {
		t.Fatalf("tree has %d nodes, want 1", len(tree))
	}
	root, ok := tree.Node(rootID)
	if !ok {
		t.Fatal("root not found")
	}
	if !root.IsLeaf() {
		t.Error("fresh root should be a leaf")
	}
	if root.CIDR() != "192.168.0.0/16" {
		t.Errorf("root = %s, want 192.168.0.0/16", root.CIDR())
	}
}

func TestSplit(t *testing.T) {
	network, prefix := mustCIDR(t, "192.168.0.0/16")
	rootID, tree := New(network, prefix)

	split, changed := tree.Split(rootID)
	if !changed {
		t.Fatal("split of fresh root declined")
	}
	if len(tree) != 1 {
		t.Error("original snapshot was modified")
	}
	if len(split) != 3 {
		t.Fatalf("split tree has %d nodes, want 3", len(split))
	}

	left, ok := split.Node("root-0")
	if !ok {
		t.Fatal("left child missing")
	}
	right, ok := split.Node("root-1")
	if !ok {
		t.Fatal("right child missing")
	}
	if left.CIDR() != "192.168.0.0/17" {
		t.Errorf("left = %s, want 192.168.0.0/17", left.CIDR())
	}
	if right.CIDR() != "192.168.128.0/17" {
		t.Errorf("right = %s, want 192.168.128.0/17", right.CIDR())
	}
	if left.ParentID != rootID || right.ParentID != rootID {
		t.Error("children must reference the parent")
	}

	parent, _ := split.Node(rootID)
	if parent.IsLeaf() {
		t.Error("split parent should no longer be a leaf")
	}
	if original, _ := tree.Node(rootID); !original.IsLeaf() {
		t.Error("root in the original snapshot must remain a leaf")
	}
}

func TestSplitNoOps(t *testing.T) {
	network, _ := mustCIDR(t, "10.0.0.1/32")
	rootID, single := New(network, 32)

	split16Network, _ := mustCIDR(t, "192.168.0.0/16")
	_, base := New(split16Network, 16)
	alreadySplit, _ := base.Split(RootID)

	tests := []struct {
		name string
		tree Tree
		id   string
	}{
		{name: "UnknownID", tree: base, id: "root-7"},
		{name: "AlreadySplit", tree: alreadySplit, id: RootID},
		{name: "MaxPrefix", tree: single, id: rootID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := tt.tree.Split(tt.id)
			if changed {
				t.Error("split should have been declined")
			}
			if len(got) != len(tt.tree) {
				t.Error("declined split must return the unchanged tree")
			}
		})
	}
}

func TestJoin(t *testing.T) {
	network, prefix := mustCIDR(t, "192.168.0.0/16")
	rootID, tree := New(network, prefix)
	tree, _ = tree.Split(rootID)
	tree, _ = tree.Split("root-0")

	// root has a non-leaf child, so it is not joinable yet.
	if tree.Joinable(rootID) {
		t.Error("root should not be joinable while a grandchild exists")
	}
	if _, changed := tree.Join(rootID); changed {
		t.Error("join of root should have been declined")
	}

	// root-0's children are both leaves.
	if !tree.Joinable("root-0") {
		t.Error("root-0 should be joinable")
	}
	joined, changed := tree.Join("root-0")
	if !changed {
		t.Fatal("join of root-0 declined")
	}
	if _, ok := joined.Node("root-0-0"); ok {
		t.Error("joined child still present")
	}
	if n, _ := joined.Node("root-0"); !n.IsLeaf() {
		t.Error("joined node should be a leaf again")
	}

	// One level at a time: after the first join the root becomes joinable.
	if !joined.Joinable(rootID) {
		t.Error("root should be joinable after children collapsed")
	}
}

func TestSplitJoinRestoresLeafSet(t *testing.T) {
	network, prefix := mustCIDR(t, "10.42.0.0/20")
	rootID, tree := New(network, prefix)
	tree, _ = tree.Split(rootID)
	tree, _ = tree.Split("root-1")

	before := leafCIDRs(tree, rootID)

	split, changed := tree.Split("root-0")
	if !changed {
		t.Fatal("split declined")
	}
	restored, changed := split.Join("root-0")
	if !changed {
		t.Fatal("join declined")
	}

	after := leafCIDRs(restored, rootID)
	if !equalStrings(before, after) {
		t.Errorf("leaf set changed: before %v, after %v", before, after)
	}
}

func TestEndToEndPartition(t *testing.T) {
	// 192.168.0.0/16: one leaf, then two /17s, then three leaves, then back.
	network, prefix := mustCIDR(t, "192.168.0.0/16")
	rootID, tree := New(network, prefix)

	if got := leafCIDRs(tree, rootID); !equalStrings(got, []string{"192.168.0.0/16"}) {
		t.Fatalf("initial leaves = %v", got)
	}
	if got := ipv4.AddressCount(16); got != 65536 {
		t.Fatalf("base block holds %d addresses, want 65536", got)
	}

	tree, _ = tree.Split(rootID)
	want := []string{"192.168.0.0/17", "192.168.128.0/17"}
	if got := leafCIDRs(tree, rootID); !equalStrings(got, want) {
		t.Fatalf("after first split: %v, want %v", got, want)
	}

	tree, _ = tree.Split("root-0")
	want = []string{"192.168.0.0/18", "192.168.64.0/18", "192.168.128.0/17"}
	if got := leafCIDRs(tree, rootID); !equalStrings(got, want) {
		t.Fatalf("after second split: %v, want %v", got, want)
	}

	tree, _ = tree.Join("root-0")
	want = []string{"192.168.0.0/17", "192.168.128.0/17"}
	if got := leafCIDRs(tree, rootID); !equalStrings(got, want) {
		t.Fatalf("after join: %v, want %v", got, want)
	}
}

func TestPathIDsAreStable(t *testing.T) {
	// The same logical sub-block resolves to the same id across
	// split/join cycles elsewhere in the tree.
	network, prefix := mustCIDR(t, "172.16.0.0/12")
	rootID, tree := New(network, prefix)
	tree, _ = tree.Split(rootID)
	tree, _ = tree.Split("root-1")

	target, _ := tree.Node("root-1-0")

	tree, _ = tree.Split("root-0")
	tree, _ = tree.Join("root-0")

	again, ok := tree.Node("root-1-0")
	if !ok {
		t.Fatal("root-1-0 vanished after unrelated mutations")
	}
	if again.Network != target.Network || again.Prefix != target.Prefix {
		t.Errorf("root-1-0 = %s, want %s", again.CIDR(), target.CIDR())
	}
}
