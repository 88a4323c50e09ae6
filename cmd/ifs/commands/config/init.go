package config

import (
	"fmt"

	"github.com/marmos91/indexfs/pkg/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Long: `Write a sample configuration file.

By default the file is created at $XDG_CONFIG_HOME/indexfs/config.yaml.
Use --config to choose another path.

Examples:
  ifs config init
  ifs config init --config ./indexfs.yaml --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath()
			var err error
			if path != "" {
				err = config.InitConfigToPath(path, force)
			} else {
				path, err = config.InitConfig(force)
			}
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Configuration file created at: %s\n", path)
			_, _ = fmt.Fprintln(out, "\nNext steps:")
			_, _ = fmt.Fprintln(out, "  1. Edit the disks section to size your simulated disks")
			_, _ = fmt.Fprintln(out, "  2. Start the server with: ifs start")
			_, _ = fmt.Fprintf(out, "  3. Or specify custom config: ifs start --config %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
