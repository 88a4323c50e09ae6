package disk

import (
	"fmt"

	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/marmos91/indexfs/internal/cli/output"
	"github.com/marmos91/indexfs/pkg/alloc"
	"github.com/spf13/cobra"
)

func newUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage [NAME]",
		Short: "Show block usage of a disk",
		Long: `Show block usage of a disk. NAME defaults to --disk.

Examples:
  ifs disk usage
  ifs disk usage scratch -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := cmdutil.DiskName()
			if len(args) == 1 {
				name = args[0]
			}

			d, err := cmdutil.GetClient().GetDisk(name)
			if err != nil {
				return fmt.Errorf("failed to get disk: %w", err)
			}

			p, err := cmdutil.NewPrinter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if p.Format() != output.FormatTable {
				return p.Print(d)
			}
			return output.SimpleTable(p.Writer(), output.UsagePairs(d.Name, alloc.Usage{
				TotalBlocks: d.TotalBlocks,
				FreeBlocks:  d.FreeBlocks,
				UsedBlocks:  d.UsedBlocks,
				Files:       d.Files,
				BlockSize:   d.BlockSize,
			}))
		},
	}
}
