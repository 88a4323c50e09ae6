package file

import (
	"fmt"
	"io"
	"os"

	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/spf13/cobra"
)

func newWriteCmd() *cobra.Command {
	var (
		content  string
		fromFile string
	)

	cmd := &cobra.Command{
		Use:   "write NAME",
		Short: "Replace the content of a file",
		Long: `Replace the content of a file. Content is not bounded by the declared
size of the file.

Examples:
  ifs file write report --content "quarterly numbers"
  ifs file write report --from-file ./report.txt
  echo hi | ifs file write report --from-file -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("content") == (fromFile != "") {
				return fmt.Errorf("exactly one of --content or --from-file is required")
			}
			if fromFile != "" {
				data, err := readSource(cmd.InOrStdin(), fromFile)
				if err != nil {
					return err
				}
				content = string(data)
			}

			out := cmd.OutOrStdout()
			if err := cmdutil.GetClient().WriteFile(cmdutil.DiskName(), args[0], content); err != nil {
				return cmdutil.ReportFileError(out, err)
			}
			return cmdutil.PrintResult(out, map[string]any{"name": args[0], "bytes": len(content)}, cmdutil.MsgContentWritten)
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "Content to write")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "Read content from a local file, or - for stdin")
	return cmd
}

func readSource(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
