package file

import (
	"fmt"

	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/marmos91/indexfs/internal/cli/output"
	"github.com/spf13/cobra"
)

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read NAME",
		Short: "Print the content of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			content, err := cmdutil.GetClient().ReadFile(cmdutil.DiskName(), args[0])
			if err != nil {
				return cmdutil.ReportFileError(out, err)
			}

			p, err := cmdutil.NewPrinter(out)
			if err != nil {
				return err
			}
			if p.Format() == output.FormatTable {
				_, _ = fmt.Fprintf(out, "Content: %s\n", content)
				return nil
			}
			return p.Print(map[string]string{"name": args[0], "content": content})
		},
	}
}

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat NAME",
		Short: "Show the inode of one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ino, err := cmdutil.GetClient().GetInode(cmdutil.DiskName(), args[0])
			if err != nil {
				return cmdutil.ReportFileError(out, err)
			}
			p, err := cmdutil.NewPrinter(out)
			if err != nil {
				return err
			}
			if p.Format() == output.FormatTable {
				return p.Print(output.InodeTable{*ino})
			}
			return p.Print(ino)
		},
	}
}
