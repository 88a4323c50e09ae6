package config

import (
	"fmt"
	"strconv"

	"github.com/marmos91/indexfs/internal/bytesize"
	"github.com/marmos91/indexfs/internal/cli/output"
	"github.com/marmos91/indexfs/pkg/config"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Long: `Validate the configuration file.

Checks for syntax errors, missing required fields, invalid values,
duplicate disk names and port conflicts.

Examples:
  ifs config validate
  ifs config validate --config /etc/indexfs/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath()
			cfg, err := config.MustLoad(path)
			if err != nil {
				return err
			}
			if path == "" {
				path = config.GetDefaultConfigPath()
			}

			var warnings []string
			if len(cfg.Disks) == 0 {
				warnings = append(warnings, "No disks configured - the server starts empty and is not ready until one is created")
			}
			if !cfg.API.IsEnabled() {
				warnings = append(warnings, "API server disabled - disks are unreachable")
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Configuration file: %s\n", path)
			_, _ = fmt.Fprintln(out, "Validation: OK")

			if len(warnings) > 0 {
				_, _ = fmt.Fprintln(out, "\nWarnings:")
				for _, w := range warnings {
					_, _ = fmt.Fprintf(out, "  - %s\n", w)
				}
			}

			_, _ = fmt.Fprintf(out, "\nConfiguration summary:\n")
			_, _ = fmt.Fprintf(out, "  API port:        %d\n", cfg.API.Port)
			_, _ = fmt.Fprintf(out, "  Log level:       %s\n", cfg.Logging.Level)
			_, _ = fmt.Fprintf(out, "  Disks:           %d\n", len(cfg.Disks))
			if len(cfg.Disks) == 0 {
				return nil
			}

			disks := output.NewTableData("Name", "Blocks", "Block Size")
			for _, d := range cfg.Disks {
				disks.AddRow(d.Name, strconv.Itoa(d.TotalBlocks), bytesize.ByteSize(d.BlockSize).String())
			}
			_, _ = fmt.Fprintln(out)
			return output.PrintTable(out, disks)
		},
	}
}
