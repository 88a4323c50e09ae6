package disk

import (
	"fmt"

	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a disk and all its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			client := cmdutil.GetClient()
			return cmdutil.RunDeleteWithConfirmation(cmd.OutOrStdout(), "disk", name, force, func() error {
				if err := client.DeleteDisk(name); err != nil {
					return fmt.Errorf("failed to delete disk: %w", err)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}
