// Package config implements configuration management subcommands.
package config

import (
	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/spf13/cobra"
)

// NewCmd returns the "config" command group.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long: `Manage the indexfs server configuration file.

Subcommands:
  init      Write a sample configuration file
  show      Display the effective configuration
  validate  Validate a configuration file
  schema    Generate JSON schema for IDE/validation`,
	}

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newSchemaCmd())
	return cmd
}

func configPath() string {
	return cmdutil.Flags.ConfigFile
}
