// Package commands implements the ifs command line.
package commands

import (
	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	configcmd "github.com/marmos91/indexfs/cmd/ifs/commands/config"
	diskcmd "github.com/marmos91/indexfs/cmd/ifs/commands/disk"
	filecmd "github.com/marmos91/indexfs/cmd/ifs/commands/file"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ifs",
		Short: "indexfs - indexed file allocation simulator",
		Long: `indexfs simulates indexed file allocation on a fixed pool of disk blocks.
Every file gets one index block plus enough data blocks for its declared
size, always taken from the lowest free block numbers.

Run the simulator interactively with "ifs shell", serve disks over HTTP
with "ifs start", and drive a running server with the file, disk, inodes
and blocks commands.

Use "ifs [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdutil.Flags.ConfigFile, _ = cmd.Flags().GetString("config")
			cmdutil.Flags.ServerURL, _ = cmd.Flags().GetString("server")
			cmdutil.Flags.Disk, _ = cmd.Flags().GetString("disk")
			cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
			cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
			cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default: $XDG_CONFIG_HOME/indexfs/config.yaml)")
	pf.String("server", "", "API server URL (default: $INDEXFS_SERVER or http://localhost:8080)")
	pf.String("disk", "", "disk to operate on (default: $INDEXFS_DISK or \"default\")")
	pf.StringP("output", "o", "table", "Output format (table|json|yaml)")
	pf.Bool("no-color", false, "Disable colored output")
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newStartCmd())
	cmd.AddCommand(newShellCmd())
	cmd.AddCommand(newInodesCmd())
	cmd.AddCommand(newBlocksCmd())
	cmd.AddCommand(filecmd.NewCmd())
	cmd.AddCommand(diskcmd.NewCmd())
	cmd.AddCommand(configcmd.NewCmd())

	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}
