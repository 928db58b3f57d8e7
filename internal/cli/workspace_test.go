package cli

import (
	"errors"
	"testing"

	"github.com/matzehuels/subnetplan/pkg/ipv4"
	"github.com/matzehuels/subnetplan/pkg/plan"
	"github.com/matzehuels/subnetplan/pkg/subnet"
)

func TestLoadWorkspaceWithoutPlan(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, _, err := loadWorkspace(); !errors.Is(err, ErrNoPlan) {
		t.Fatalf("loadWorkspace = %v, want ErrNoPlan", err)
	}
}

func TestWorkspaceRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	base, err := ipv4.ParseAddress("192.168.0.0")
	if err != nil {
		t.Fatal(err)
	}
	ws, err := newWorkspace(base, 16, true)
	if err != nil {
		t.Fatal(err)
	}
	ws.Tree, _ = ws.Tree.Split(ws.RootID)
	ws.Tree, _ = ws.Tree.Split("root-0")
	ws.Colors["root-0-1"] = "#FF0000"
	ws.Comments["root-0-1"] = "dmz"
	if err := ws.save(); err != nil {
		t.Fatal(err)
	}

	loaded, skipped, err := loadWorkspace()
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v", skipped)
	}
	if loaded.baseCIDR() != "192.168.0.0/16" {
		t.Errorf("base = %s", loaded.baseCIDR())
	}
	if !loaded.Azure {
		t.Error("azure flag lost")
	}
	if got := len(subnet.Leaves(loaded.Tree, loaded.RootID)); got != 3 {
		t.Errorf("got %d leaves, want 3", got)
	}
	if loaded.Colors["root-0-1"] != "#FF0000" {
		t.Errorf("color = %q", loaded.Colors["root-0-1"])
	}
	if loaded.Comments["root-0-1"] != "dmz" {
		t.Errorf("comment = %q", loaded.Comments["root-0-1"])
	}
}

func TestWorkspaceTokenRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	base, _ := ipv4.ParseAddress("10.0.0.0")
	ws, err := newWorkspace(base, 8, false)
	if err != nil {
		t.Fatal(err)
	}
	ws.Tree, _ = ws.Tree.Split(ws.RootID)

	token := ws.token()
	if token == "" {
		t.Fatal("empty token")
	}

	path, err := workspacePath()
	if err != nil {
		t.Fatal(err)
	}
	p := plan.Decode(token)
	if p == nil {
		t.Fatal("token does not decode")
	}
	restored, skipped, err := fromPlan(p, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v", skipped)
	}
	if restored.baseCIDR() != "10.0.0.0/8" {
		t.Errorf("base = %s", restored.baseCIDR())
	}
}

func TestPruneAnnotations(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	base, _ := ipv4.ParseAddress("172.16.0.0")
	ws, err := newWorkspace(base, 12, false)
	if err != nil {
		t.Fatal(err)
	}
	ws.Tree, _ = ws.Tree.Split(ws.RootID)
	ws.Colors["root-0"] = "#00FF00"
	ws.Comments["root-1"] = "kept"

	// Joining removes root-0 and root-1 as leaves.
	ws.Tree, _ = ws.Tree.Join(ws.RootID)
	ws.pruneAnnotations()

	if len(ws.Colors) != 0 || len(ws.Comments) != 0 {
		t.Errorf("annotations not pruned: colors=%v comments=%v", ws.Colors, ws.Comments)
	}
}
