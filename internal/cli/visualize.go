package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/subnetplan/pkg/cache"
	"github.com/matzehuels/subnetplan/pkg/render"
)

// visualizeCommand creates the visualize command for rendering the partition tree.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "visualize",
		Short: "Render the partition tree with Graphviz",
		Long: `Render the partition tree with Graphviz.

The tree is drawn top-down with one box per block. Leaf colors from
annotations become fill colors; internal blocks are dashed. With
--detailed, leaf labels include netmask and host capacity.

Rendered SVG and PNG output is cached locally; use --no-cache to force
a fresh render.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if format == "" && output != "" {
				format = formatFromPath(output)
			}
			if format == "" {
				format = cfg.Render.Format
			}
			if !detailed {
				detailed = cfg.Render.Detailed
			}
			return c.runVisualize(cmd.Context(), format, output, detailed, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: svg (default), png, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (derived from format if empty)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include netmask and host capacity in labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable render caching")

	return cmd
}

// runVisualize renders the active plan to the requested format.
func (c *CLI) runVisualize(ctx context.Context, format, output string, detailed, noCache bool) error {
	ctx = withLogger(ctx, c.Logger)

	ws, skipped, err := loadWorkspace()
	if err != nil {
		return err
	}
	warnSkipped(skipped)

	dot := render.ToDOT(ws.Tree, ws.RootID, render.Options{
		Detailed: detailed,
		Azure:    ws.Azure,
		Colors:   ws.Colors,
	})

	if format == "dot" {
		if output == "" {
			fmt.Print(dot)
			return nil
		}
		if err := os.WriteFile(output, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printFile(output)
		return nil
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unknown format %q (want svg, png, or dot)", format)
	}
	if output == "" {
		output = "subnets." + format
	}

	renderCache, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer renderCache.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
	spinner.Start()

	data, cacheHit, err := renderCached(ctx, renderCache, dot, format)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	prog.done(fmt.Sprintf("Rendered %s", ws.baseCIDR()))
	printFile(output)
	printStats(leafCount(ws), 0, cacheHit)
	return nil
}

// renderCached renders a DOT graph via the cache, falling back to a fresh
// Graphviz run on a miss.
func renderCached(ctx context.Context, c cache.Cache, dot, format string) (data []byte, cacheHit bool, err error) {
	key := cache.RenderKey(dot, format)
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	switch format {
	case "svg":
		data, err = render.SVG(ctx, dot)
	case "png":
		data, err = render.PNG(ctx, dot)
	}
	if err != nil {
		return nil, false, err
	}

	if err := c.Set(ctx, key, data, 0); err != nil {
		// A failed cache write only costs the next render.
		loggerFromContext(ctx).Debugf("cache write failed: %v", err)
	}
	return data, false, nil
}

// leafCount counts the leaf subnets in the workspace tree.
func leafCount(ws *workspace) int {
	count := 0
	for _, n := range ws.Tree {
		if n.IsLeaf() {
			count++
		}
	}
	return count
}

// formatFromPath guesses the render format from a file extension.
func formatFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".png"):
		return "png"
	case strings.HasSuffix(path, ".dot"):
		return "dot"
	default:
		return "svg"
	}
}
