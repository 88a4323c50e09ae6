package file

import (
	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a file and free its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if err := cmdutil.GetClient().DeleteFile(cmdutil.DiskName(), args[0]); err != nil {
				return cmdutil.ReportFileError(out, err)
			}
			return cmdutil.PrintResult(out, map[string]string{"deleted": args[0]}, cmdutil.MsgFileDeleted)
		},
	}
}
