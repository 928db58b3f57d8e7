package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/subnetplan/pkg/ipv4"
)

// newCommand creates the new command for starting a fresh partition.
func (c *CLI) newCommand() *cobra.Command {
	var azure bool

	cmd := &cobra.Command{
		Use:   "new <cidr>",
		Short: "Start a fresh partition from a base CIDR block",
		Long: `Start a fresh partition from a base CIDR block.

The base block becomes the root of a new partition tree with a single,
unsplit subnet. Any previously active plan is replaced.

With --azure, usable ranges and host capacities follow the Azure
reservation policy (five reserved addresses per subnet) instead of the
classic two.

Without an argument, the base block falls back to the "defaults.cidr"
entry in config.toml.

Examples:
  subnetplan new 192.168.0.0/16
  subnetplan new 10.0.0.0/8 --azure`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			cidr := cfg.Defaults.CIDR
			if len(args) > 0 {
				cidr = args[0]
			}
			if cidr == "" {
				return fmt.Errorf("no base block given and no defaults.cidr configured")
			}
			if !cmd.Flags().Changed("azure") {
				azure = cfg.Defaults.Azure
			}

			network, prefix, exact, err := ipv4.ParseCIDR(cidr)
			if err != nil {
				return err
			}
			if !exact {
				printWarning("Address is not the network address; using %s", ipv4.FormatCIDR(network, prefix))
			}

			ws, err := newWorkspace(network, prefix, azure)
			if err != nil {
				return err
			}
			if err := ws.save(); err != nil {
				return err
			}

			printSuccess("Created partition %s", ws.baseCIDR())
			if azure {
				printDetail("Azure reservation policy enabled")
			}
			printNextStep("Split the root", "subnetplan split root")
			return nil
		},
	}

	cmd.Flags().BoolVar(&azure, "azure", false, "apply the Azure address reservation policy")

	return cmd
}
