package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/subnetplan/pkg/errors"
	"github.com/matzehuels/subnetplan/pkg/plan"
)

// shareCommand creates the share command for exporting the plan as a token.
func (c *CLI) shareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Print the current plan as a portable token",
		Long: `Print the current plan as a portable token.

The token is a compact, URL-safe string containing the base block, the
leaf subnets, and their annotations. Anyone can restore the plan from it
with 'subnetplan load <token>'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, skipped, err := loadWorkspace()
			if err != nil {
				return err
			}
			warnSkipped(skipped)

			fmt.Println(ws.token())
			return nil
		},
	}
}

// loadCommand creates the load command for restoring a plan from a token.
func (c *CLI) loadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <token>",
		Short: "Restore a plan from a share token",
		Long: `Restore a plan from a share token, replacing the active plan.

Tokens are validated defensively: a token that cannot be fully decoded
is rejected, and individual unreadable subnet entries are dropped with
a warning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			if err := errors.ValidateShareToken(token); err != nil {
				return err
			}

			p := plan.Decode(token)
			if p == nil {
				return errors.New(errors.ErrCodeInvalidToken, "token is not a valid plan")
			}

			path, err := workspacePath()
			if err != nil {
				return err
			}
			ws, skipped, err := fromPlan(p, path)
			if err != nil {
				return err
			}
			warnSkipped(skipped)

			if err := ws.save(); err != nil {
				return err
			}

			printSuccess("Loaded partition %s", ws.baseCIDR())
			printNextStep("Inspect it", "subnetplan show")
			return nil
		},
	}
}
