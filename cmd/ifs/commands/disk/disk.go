// Package disk implements the remote disk management commands.
package disk

import (
	"github.com/marmos91/indexfs/internal/cli/output"
	"github.com/marmos91/indexfs/pkg/apiclient"
	"github.com/spf13/cobra"
)

// NewCmd returns the "disk" command group.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disk",
		Short: "Disk management",
		Long: `Manage the simulated disks of a running server.

Disks created here live until the server stops; add them to the
configuration file to have them at every start.

Examples:
  ifs disk list
  ifs disk create scratch --blocks 16 --block-size 1Ki
  ifs disk usage --disk scratch
  ifs disk delete scratch`,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newUsageCmd())
	return cmd
}

func toRows(disks []apiclient.Disk) output.DiskTable {
	rows := make(output.DiskTable, 0, len(disks))
	for _, d := range disks {
		rows = append(rows, output.DiskRow{
			Name:        d.Name,
			ID:          d.ID,
			CreatedAt:   d.CreatedAt,
			TotalBlocks: d.TotalBlocks,
			FreeBlocks:  d.FreeBlocks,
			Files:       d.Files,
			BlockSize:   d.BlockSize,
		})
	}
	return rows
}
