package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/subnetplan/pkg/plan"
	"github.com/matzehuels/subnetplan/pkg/subnet"
)

// ErrNoPlan is returned when a command needs an active plan but none exists.
var ErrNoPlan = errors.New("no active plan (run 'subnetplan new <cidr>' first)")

// workspaceFile is the name of the persisted plan inside the config directory.
const workspaceFile = "plan.json"

// workspace is the materialized working partition backed by the plan file.
// Commands load it, mutate the tree, and save it back; the file on disk is
// always a plain plan document, so it round-trips through share tokens.
type workspace struct {
	Network  uint32
	Prefix   int
	Azure    bool
	RootID   string
	Tree     subnet.Tree
	Colors   map[string]string
	Comments map[string]string

	path string
}

// workspacePath returns the location of the persisted plan file.
func workspacePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, workspaceFile), nil
}

// newWorkspace creates a fresh workspace for the given base block,
// replacing any existing plan on save.
func newWorkspace(network uint32, prefix int, azure bool) (*workspace, error) {
	path, err := workspacePath()
	if err != nil {
		return nil, err
	}
	rootID, tree := subnet.New(network, prefix)
	return &workspace{
		Network:  network,
		Prefix:   prefix,
		Azure:    azure,
		RootID:   rootID,
		Tree:     tree,
		Colors:   map[string]string{},
		Comments: map[string]string{},
		path:     path,
	}, nil
}

// loadWorkspace reads the persisted plan and materializes it.
// Leaf definitions the builder could not place are reported as skipped.
func loadWorkspace() (ws *workspace, skipped []subnet.LeafDef, err error) {
	path, err := workspacePath()
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, ErrNoPlan
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read plan file: %w", err)
	}

	var p plan.Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, nil, fmt.Errorf("decode plan file %s: %w", path, err)
	}
	return fromPlan(&p, path)
}

// fromPlan materializes a plan document into a workspace.
func fromPlan(p *plan.Plan, path string) (*workspace, []subnet.LeafDef, error) {
	rootID, tree, colors, comments, skipped := p.Materialize()
	return &workspace{
		Network:  p.Network,
		Prefix:   p.Prefix,
		Azure:    p.Azure,
		RootID:   rootID,
		Tree:     tree,
		Colors:   colors,
		Comments: comments,
		path:     path,
	}, skipped, nil
}

// plan projects the current workspace state back into a plan document.
func (w *workspace) plan() plan.Plan {
	return plan.Build(w.Network, w.Prefix, w.Azure, subnet.Leaves(w.Tree, w.RootID), w.Colors, w.Comments)
}

// save writes the workspace back to the plan file.
func (w *workspace) save() error {
	data, err := json.MarshalIndent(w.plan(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(w.path, data, 0o644)
}

// token encodes the current state as a share token.
func (w *workspace) token() string {
	return plan.Encode(w.plan())
}

// baseCIDR returns the workspace's base block in CIDR notation.
func (w *workspace) baseCIDR() string {
	root := w.Tree[w.RootID]
	return root.CIDR()
}

// pruneAnnotations drops annotations whose node ids no longer exist as
// leaves, so joins do not leave stale colors behind.
func (w *workspace) pruneAnnotations() {
	for id := range w.Colors {
		if node, ok := w.Tree[id]; !ok || !node.IsLeaf() {
			delete(w.Colors, id)
		}
	}
	for id := range w.Comments {
		if node, ok := w.Tree[id]; !ok || !node.IsLeaf() {
			delete(w.Comments, id)
		}
	}
}

// warnSkipped reports definitions dropped during reconstruction.
func warnSkipped(skipped []subnet.LeafDef) {
	for _, def := range skipped {
		printWarning("Skipped unreachable subnet definition %s", def.CIDR())
	}
}
