package file

import (
	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	var sizeKB int

	cmd := &cobra.Command{
		Use:   "create NAME --size KB",
		Short: "Create a file and allocate its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ino, err := cmdutil.GetClient().CreateFile(cmdutil.DiskName(), args[0], sizeKB)
			if err != nil {
				return cmdutil.ReportFileError(out, err)
			}
			return cmdutil.PrintResult(out, ino, cmdutil.MsgFileCreated)
		},
	}
	cmd.Flags().IntVar(&sizeKB, "size", 0, "Declared size in KB")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}
