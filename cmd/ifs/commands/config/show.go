package config

import (
	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/marmos91/indexfs/internal/cli/output"
	"github.com/marmos91/indexfs/pkg/config"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long: `Display the configuration "ifs start" would use: the file, environment
overrides and defaults merged. Prints YAML unless -o json is given.

Examples:
  ifs config show
  INDEXFS_API_PORT=9000 ifs config show -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath())
			if err != nil {
				return err
			}

			format, err := cmdutil.GetOutputFormatParsed()
			if err != nil {
				return err
			}
			if format == output.FormatJSON {
				return output.PrintJSON(cmd.OutOrStdout(), cfg)
			}
			return output.PrintYAML(cmd.OutOrStdout(), cfg)
		},
	}
}
