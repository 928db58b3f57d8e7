package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/subnetplan/pkg/subnet"
)

// showCommand creates the show command for printing the current partition.
func (c *CLI) showCommand() *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current partition",
		Long: `Print the current partition as a table of leaf subnets.

With --tree, the full partition tree is printed instead, including the
internal blocks that have been split.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, skipped, err := loadWorkspace()
			if err != nil {
				return err
			}
			warnSkipped(skipped)

			if tree {
				printTree(ws)
				return nil
			}
			printLeafTable(ws)
			return nil
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "print the full tree instead of the leaf table")

	return cmd
}

// printLeafTable renders the leaf subnets as a bordered table.
func printLeafTable(ws *workspace) {
	rows := subnet.Rows(ws.Tree, ws.RootID, subnet.ViewOptions{
		Azure:    ws.Azure,
		Colors:   ws.Colors,
		Comments: ws.Comments,
	})

	policy := "classic"
	if ws.Azure {
		policy = "azure"
	}
	fmt.Println(StyleTitle.Render("Partition "+ws.baseCIDR()) + " " + StyleDim.Render("("+policy+")"))
	printNewline()

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.ID,
			r.CIDR,
			r.Netmask,
			r.UsableRange,
			strconv.FormatUint(r.HostCapacity, 10),
			r.Comment,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Node", "CIDR", "Netmask", "Usable Range", "Hosts", "Comment").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < len(rows) && rows[row].Color != "" {
				if col == 1 {
					return lipgloss.NewStyle().Foreground(lipgloss.Color(rows[row].Color))
				}
			}
			if col == 4 {
				return StyleNumber
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())
	printStats(len(rows), maxDepth(rows), false)
}

// printTree renders the whole partition as an indented tree.
func printTree(ws *workspace) {
	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		node, ok := ws.Tree[id]
		if !ok {
			return
		}
		indent := strings.Repeat("  ", depth)
		label := node.CIDR()
		if node.IsLeaf() {
			line := indent + StyleValue.Render(label)
			if comment := ws.Comments[id]; comment != "" {
				line += "  " + StyleDim.Render(comment)
			}
			fmt.Println(line)
		} else {
			fmt.Println(indent + StyleDim.Render(label))
		}
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}
	walk(ws.RootID, 0)
}

// maxDepth returns the deepest leaf depth in the view rows.
func maxDepth(rows []subnet.Row) int {
	depth := 0
	for _, r := range rows {
		if r.Depth > depth {
			depth = r.Depth
		}
	}
	return depth
}
