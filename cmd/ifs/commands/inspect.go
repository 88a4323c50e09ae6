package commands

import (
	"fmt"

	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/marmos91/indexfs/internal/cli/output"
	"github.com/spf13/cobra"
)

func newInodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inodes",
		Short: "Show the inode table of a disk",
		Long: `Show every file on a disk with its declared size, index block and
data blocks, in creation order.

Examples:
  ifs inodes
  ifs inodes --disk scratch -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			diskName := cmdutil.DiskName()
			inodes, err := cmdutil.GetClient().ListInodes(diskName)
			if err != nil {
				return fmt.Errorf("failed to list inodes: %w", err)
			}
			return cmdutil.PrintOutput(cmd.OutOrStdout(), output.InodeTable(inodes), len(inodes) == 0,
				fmt.Sprintf("No files on disk %q.", diskName))
		},
	}
}

func newBlocksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blocks",
		Short: "Show the free block map of a disk",
		Long: `Show block availability eight blocks per line, F for free and A for
allocated. JSON and YAML output carry the raw map.

Examples:
  ifs blocks
  ifs blocks -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cmdutil.GetClient().GetBlockMap(cmdutil.DiskName())
			if err != nil {
				return fmt.Errorf("failed to get block map: %w", err)
			}

			p, err := cmdutil.NewPrinter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if p.Format() == output.FormatTable {
				return p.Print(output.BlockMap(m.Free))
			}
			return p.Print(m)
		},
	}
}
