package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/subnetplan/pkg/export"
	"github.com/matzehuels/subnetplan/pkg/subnet"
)

// exportCommand creates the export command for writing the partition to a file.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the leaf subnets as CSV or JSON",
		Long: `Export the leaf subnets as CSV or JSON.

CSV exports carry cidr, network, netmask, usable range, host capacity,
and comment columns. JSON exports additionally include node ids, tree
depth, and colors. Output goes to stdout unless --output is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, skipped, err := loadWorkspace()
			if err != nil {
				return err
			}
			warnSkipped(skipped)

			rows := subnet.Rows(ws.Tree, ws.RootID, subnet.ViewOptions{
				Azure:    ws.Azure,
				Colors:   ws.Colors,
				Comments: ws.Comments,
			})

			if output == "" {
				switch format {
				case "csv":
					return export.WriteCSV(os.Stdout, rows)
				case "json":
					return export.WriteJSON(os.Stdout, rows)
				default:
					return fmt.Errorf("unknown export format %q (want csv or json)", format)
				}
			}

			switch format {
			case "csv":
				err = export.ExportCSV(rows, output)
			case "json":
				err = export.ExportJSON(rows, output)
			default:
				return fmt.Errorf("unknown export format %q (want csv or json)", format)
			}
			if err != nil {
				return err
			}

			printSuccess("Exported %d subnets", len(rows))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv (default), json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
