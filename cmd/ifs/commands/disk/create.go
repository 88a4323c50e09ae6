package disk

import (
	"fmt"

	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/marmos91/indexfs/internal/bytesize"
	"github.com/marmos91/indexfs/pkg/apiclient"
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	var (
		blocks    int
		blockSize string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty disk",
		Long: `Create an empty disk on the server. Omitted geometry uses the server
defaults (64 blocks, block size 4Ki).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &apiclient.CreateDiskRequest{Name: args[0], TotalBlocks: blocks}
			if blockSize != "" {
				size, err := bytesize.Parse(blockSize)
				if err != nil {
					return fmt.Errorf("invalid --block-size: %w", err)
				}
				req.BlockSize = size.Int()
			}

			d, err := cmdutil.GetClient().CreateDisk(req)
			if err != nil {
				return fmt.Errorf("failed to create disk: %w", err)
			}
			return cmdutil.PrintResult(cmd.OutOrStdout(), d,
				fmt.Sprintf("Disk '%s' created (%d blocks, block size %s)", d.Name, d.TotalBlocks, bytesize.ByteSize(d.BlockSize)))
		},
	}
	cmd.Flags().IntVar(&blocks, "blocks", 0, "Number of blocks (default: server default)")
	cmd.Flags().StringVar(&blockSize, "block-size", "", "Block size divisor, e.g. 4096 or 4Ki (default: server default)")
	return cmd
}
