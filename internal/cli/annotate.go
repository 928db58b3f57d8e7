package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/subnetplan/pkg/errors"
)

// annotateCommand creates the annotate command for coloring and commenting subnets.
func (c *CLI) annotateCommand() *cobra.Command {
	var (
		color   string
		comment string
		clear   bool
	)

	cmd := &cobra.Command{
		Use:   "annotate <node-id>",
		Short: "Attach a color or comment to a subnet",
		Long: `Attach a color or comment to a leaf subnet.

Colors must be "#RRGGBB" hex strings. Annotations travel with share
tokens and appear in tables, exports, and visualizations.

Examples:
  subnetplan annotate root-0 --color "#1E90FF" --comment "prod VPC"
  subnetplan annotate root-0 --clear`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeID := args[0]
			if err := errors.ValidateNodeID(nodeID); err != nil {
				return err
			}
			if color != "" {
				if err := errors.ValidateColor(color); err != nil {
					return err
				}
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
			if !node.IsLeaf() {
				return errors.New(errors.ErrCodeInvalidNodeID, "only leaf subnets can be annotated")
			}

			if clear {
				delete(ws.Colors, nodeID)
				delete(ws.Comments, nodeID)
			} else {
				if color != "" {
					ws.Colors[nodeID] = color
				}
				if comment != "" {
					ws.Comments[nodeID] = comment
				}
			}

			if err := ws.save(); err != nil {
				return err
			}

			if clear {
				printSuccess("Cleared annotations on %s", node.CIDR())
			} else {
				printSuccess("Annotated %s", node.CIDR())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", `hex color, e.g. "#1E90FF"`)
	cmd.Flags().StringVar(&comment, "comment", "", "free-form comment")
	cmd.Flags().BoolVar(&clear, "clear", false, "remove existing annotations")

	return cmd
}

// azureCommand creates the azure command for toggling the reservation policy.
func (c *CLI) azureCommand() *cobra.Command {
	var disable bool

	cmd := &cobra.Command{
		Use:   "azure",
		Short: "Toggle the Azure address reservation policy",
		Long: `Toggle the Azure address reservation policy on the active plan.

Under the Azure policy each subnet reserves five addresses (network,
three platform addresses, broadcast) instead of the classic two, so a
/24 offers 251 usable hosts rather than 254.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, skipped, err := loadWorkspace()
			if err != nil {
				return err
			}
			warnSkipped(skipped)

			ws.Azure = !disable
			if err := ws.save(); err != nil {
				return err
			}

			if ws.Azure {
				printSuccess("Azure reservation policy enabled")
			} else {
				printSuccess("Azure reservation policy disabled")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&disable, "disable", false, "switch back to the classic policy")

	return cmd
}
