package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/subnetplan/pkg/errors"
)

// splitCommand creates the split command for halving a subnet.
func (c *CLI) splitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "split <node-id>",
		Short: "Split a subnet into two halves",
		Long: `Split a leaf subnet into two equal halves.

Node ids follow the tree structure: "root" is the base block, "root-0"
and "root-1" are its halves, and so on. Use 'show' to list ids.

Splitting an already-split subnet or a /32 has no effect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMutation(args[0], "split")
		},
	}
}

// joinCommand creates the join command for merging two halves back.
func (c *CLI) joinCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "join <node-id>",
		Short: "Join a subnet's two halves back together",
		Long: `Join a split subnet's two halves back into one block.

Only subnets whose children are both unsplit leaves can be joined; join
the deeper splits first. Annotations on the removed halves are dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMutation(args[0], "join")
		},
	}
}

// runMutation applies a split or join to the active plan and saves it.
func (c *CLI) runMutation(nodeID, op string) error {
	if err := errors.ValidateNodeID(nodeID); err != nil {
		return err
	}

	ws, skipped, err := loadWorkspace()
	if err != nil {
		return err
	}
	warnSkipped(skipped)

	node, ok := ws.Tree[nodeID]
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %s does not exist", nodeID)
	}

	var changed bool
	switch op {
	case "split":
		ws.Tree, changed = ws.Tree.Split(nodeID)
	case "join":
		ws.Tree, changed = ws.Tree.Join(nodeID)
	}

	if !changed {
		printInfo("No change: %s cannot be %s", node.CIDR(), pastTense(op))
		return nil
	}

	ws.pruneAnnotations()
	if err := ws.save(); err != nil {
		return err
	}

	node = ws.Tree[nodeID]
	if op == "split" {
		printSuccess("Split %s into %s and %s",
			node.CIDR(), ws.Tree[node.Children[0]].CIDR(), ws.Tree[node.Children[1]].CIDR())
	} else {
		printSuccess("Joined %s back into one block", node.CIDR())
	}
	return nil
}

func pastTense(op string) string {
	if op == "join" {
		return "joined"
	}
	return "split"
}
