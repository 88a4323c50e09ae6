package disk

import (
	"fmt"

	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/marmos91/indexfs/internal/cli/output"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List disks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			disks, err := cmdutil.GetClient().ListDisks()
			if err != nil {
				return fmt.Errorf("failed to list disks: %w", err)
			}

			p, err := cmdutil.NewPrinter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if p.Format() != output.FormatTable {
				return p.Print(disks)
			}
			if len(disks) == 0 {
				p.Println("No disks configured.")
				return nil
			}
			return p.Print(toRows(disks))
		},
	}
}
