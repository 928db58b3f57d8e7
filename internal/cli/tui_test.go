package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/subnetplan/pkg/ipv4"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testModel(t *testing.T) PartitionModel {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	base, _ := ipv4.ParseAddress("192.168.0.0")
	ws, err := newWorkspace(base, 16, false)
	if err != nil {
		t.Fatal(err)
	}
	return NewPartitionModel(ws)
}

func TestPartitionModelSplit(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(keyMsg("s"))
	m = updated.(PartitionModel)

	if !m.Dirty {
		t.Error("split did not mark the model dirty")
	}
	if len(m.leaves) != 2 {
		t.Fatalf("got %d leaves, want 2", len(m.leaves))
	}
	if m.leaves[0].CIDR() != "192.168.0.0/17" {
		t.Errorf("first leaf = %s", m.leaves[0].CIDR())
	}
}

func TestPartitionModelJoin(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(keyMsg("s"))
	m = updated.(PartitionModel)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updated.(PartitionModel)

	if len(m.leaves) != 1 {
		t.Fatalf("got %d leaves after join, want 1", len(m.leaves))
	}
	if m.leaves[0].ID != m.ws.RootID {
		t.Errorf("remaining leaf = %s", m.leaves[0].ID)
	}
}

func TestPartitionModelAzureToggle(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(keyMsg("a"))
	m = updated.(PartitionModel)

	if !m.ws.Azure {
		t.Error("azure policy not enabled")
	}
	if !m.Dirty {
		t.Error("toggle did not mark the model dirty")
	}
}

func TestPartitionModelView(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(keyMsg("s"))
	m = updated.(PartitionModel)

	view := m.View()
	if !strings.Contains(view, "192.168.0.0/17") {
		t.Error("view does not show the first half")
	}
	if !strings.Contains(view, "192.168.128.0/17") {
		t.Error("view does not show the second half")
	}
	if !strings.Contains(view, "[1/2]") {
		t.Error("view does not show the cursor position")
	}
}
