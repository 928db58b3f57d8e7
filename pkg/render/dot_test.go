package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/subnetplan/pkg/ipv4"
	"github.com/matzehuels/subnetplan/pkg/subnet"
)

func samplePartition(t *testing.T) (string, subnet.Tree) {
	t.Helper()
	network, prefix, _, err := ipv4.ParseCIDR("192.168.0.0/16")
	if err != nil {
		t.Fatal(err)
	}
	rootID, tree := subnet.New(network, prefix)
	tree, _ = tree.Split(rootID)
	return rootID, tree
}

func TestToDOT(t *testing.T) {
	rootID, tree := samplePartition(t)
	dot := ToDOT(tree, rootID, Options{})

	for _, want := range []string{
		"digraph subnets",
		`"root" ->`,
		"192.168.0.0/17",
		"192.168.128.0/17",
		"dashed", // the split root is rendered as an internal node
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Two edges: root to each child.
	if got := strings.Count(dot, "->"); got != 2 {
		t.Errorf("DOT has %d edges, want 2", got)
	}
}

func TestToDOTColors(t *testing.T) {
	rootID, tree := samplePartition(t)
	dot := ToDOT(tree, rootID, Options{
		Colors: map[string]string{"root-0": "#FF00AA"},
	})
	if !strings.Contains(dot, `fillcolor="#FF00AA"`) {
		t.Errorf("leaf color annotation not applied:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	rootID, tree := samplePartition(t)

	dot := ToDOT(tree, rootID, Options{Detailed: true})
	if !strings.Contains(dot, "32766 hosts") {
		t.Errorf("detailed label missing classic capacity:\n%s", dot)
	}

	dot = ToDOT(tree, rootID, Options{Detailed: true, Azure: true})
	if !strings.Contains(dot, "32763 hosts") {
		t.Errorf("detailed label missing azure capacity:\n%s", dot)
	}
}
