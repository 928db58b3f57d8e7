// Package render draws a subnet partition tree as a Graphviz diagram.
//
// The tree is emitted as DOT with one box per block, parent-to-child edges,
// and leaf color annotations as fill colors. DOT strings can be rendered to
// SVG or PNG in-process via Graphviz.
package render

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/subnetplan/pkg/ipv4"
	"github.com/matzehuels/subnetplan/pkg/subnet"
)

// Options configures partition tree rendering.
type Options struct {
	// Detailed includes netmask and host capacity in leaf labels.
	// When false, only the CIDR is shown.
	Detailed bool

	// Azure applies the Azure reservation policy to the capacities shown
	// in detailed labels.
	Azure bool

	// Colors maps node ids to "#RRGGBB" fill colors for leaves.
	Colors map[string]string
}

// ToDOT converts a partition tree to Graphviz DOT format. The resulting
// string can be rendered with [SVG] or [PNG], or fed to any external
// Graphviz toolchain.
//
// Internal (already split) blocks are rendered with dashed outlines and
// grey fill to distinguish them from the leaves that make up the current
// partition.
func ToDOT(tree subnet.Tree, rootID string, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph subnets {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := make([]string, 0, len(tree))
	for id := range tree {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		n := tree[id]
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, attrs(n, opts))
	}

	buf.WriteString("\n")
	for _, id := range ids {
		n := tree[id]
		for _, childID := range n.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ID, childID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func attrs(n *subnet.Node, opts Options) string {
	label := label(n, opts)
	if !n.IsLeaf() {
		return fmt.Sprintf("label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey", label)
	}
	if color, ok := opts.Colors[n.ID]; ok {
		return fmt.Sprintf("label=%q, fillcolor=%q", label, color)
	}
	return fmt.Sprintf("label=%q", label)
}

func label(n *subnet.Node, opts Options) string {
	if !opts.Detailed || !n.IsLeaf() {
		return n.CIDR()
	}
	capacity := ipv4.HostCapacity(n.Prefix)
	if opts.Azure {
		capacity = ipv4.HostCapacityAzure(n.Prefix)
	}
	return fmt.Sprintf("%s\nmask %s\n%d hosts",
		n.CIDR(), ipv4.FormatAddress(ipv4.PrefixMask(n.Prefix)), capacity)
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// PNG renders a DOT graph to PNG using Graphviz.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
