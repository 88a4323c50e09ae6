// Package file implements the remote file commands.
package file

import (
	"github.com/spf13/cobra"
)

// NewCmd returns the "file" command group.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "File operations on a server disk",
		Long: `Create, delete, write and read files on a disk served by "ifs start".

The target server comes from --server (or INDEXFS_SERVER) and the disk
from --disk (or INDEXFS_DISK).

Examples:
  ifs file create report --size 5000
  ifs file write report --content "hello"
  ifs file read report
  ifs file delete report`,
	}

	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newWriteCmd())
	cmd.AddCommand(newReadCmd())
	cmd.AddCommand(newStatCmd())
	return cmd
}
