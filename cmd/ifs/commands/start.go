package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/marmos91/indexfs/internal/logger"
	"github.com/marmos91/indexfs/internal/telemetry"
	"github.com/marmos91/indexfs/pkg/api"
	"github.com/marmos91/indexfs/pkg/config"
	"github.com/marmos91/indexfs/pkg/lifecycle"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStartCmd() *cobra.Command {
	var watchConfig bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the indexfs API server",
		Long: `Start the indexfs server in the foreground.

Every disk listed in the configuration is created empty at startup and
served over the REST API. The server stops gracefully on SIGINT/SIGTERM.

Without a configuration file the defaults are used: one disk named
"default" with 64 blocks of 4Ki.

Examples:
  # Start with the default config location
  ifs start

  # Start with a custom config and reload the log level on edits
  ifs start --config ./indexfs.yaml --watch-config

  # Override settings from the environment
  INDEXFS_LOGGING_LEVEL=DEBUG INDEXFS_API_PORT=9000 ifs start`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd, watchConfig)
		},
	}
	cmd.Flags().BoolVar(&watchConfig, "watch-config", false, "Reload logging settings when the config file changes")
	return cmd
}

func runStart(cmd *cobra.Command, watchConfig bool) error {
	cfg, v, err := config.LoadViper(cmdutil.Flags.ConfigFile)
	if err != nil {
		return err
	}
	if cmdutil.Flags.Verbose {
		cfg.Logging.Level = "DEBUG"
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetryCfg := telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "indexfs",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	telemetryShutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown error", logger.Err(err))
		}
	}()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "indexfs - indexed file allocation simulator")
	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", configSource(v))
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	} else {
		logger.Info("Telemetry disabled")
	}

	// Metrics first so disks created below report from the start.
	metricsResult := config.InitializeMetrics(cfg)

	reg, err := config.InitializeRegistry(ctx, cfg, metricsResult.Metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize registry: %w", err)
	}
	for _, svc := range reg.List() {
		info := svc.Info()
		logger.Info("Disk configured",
			logger.Disk(info.Name),
			logger.KeyTotalBlocks, info.TotalBlocks,
			logger.KeyBlockSize, info.BlockSize)
	}

	lc := lifecycle.New(cfg.ShutdownTimeout)
	if metricsResult.Server != nil {
		lc.AddServer("metrics", metricsResult.Server)
	} else {
		logger.Info("Metrics collection disabled")
	}
	if cfg.API.IsEnabled() {
		lc.AddServer("api", api.NewServer(cfg.API, reg))
	} else {
		logger.Info("API server disabled")
	}

	if watchConfig {
		if configSource(v) == "defaults" {
			logger.Warn("--watch-config ignored: no configuration file in use")
		} else {
			v.OnConfigChange(func(e fsnotify.Event) {
				reloadLogging(v, e)
			})
			v.WatchConfig()
			logger.Info("Watching configuration file", "path", v.ConfigFileUsed())
		}
	}

	logger.Info("Server is running. Press Ctrl+C to stop.")
	if err := lc.Serve(ctx); err != nil {
		logger.Error("Server error", logger.Err(err))
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}

// reloadLogging applies the logging section of a changed config file.
// Disks are not reconciled: they hold in-memory state and are managed
// through the API once the server runs.
func reloadLogging(v *viper.Viper, e fsnotify.Event) {
	cfg, err := config.Reload(v)
	if err != nil {
		logger.Warn("Ignoring invalid configuration change", "path", e.Name, logger.Err(err))
		return
	}
	logger.SetLevel(cfg.Logging.Level)
	logger.SetFormat(cfg.Logging.Format)
	logger.Info("Configuration reloaded", "path", e.Name, "level", cfg.Logging.Level, "format", cfg.Logging.Format)
}

// InitLogger initializes the structured logger from configuration.
func InitLogger(cfg *config.Config) error {
	loggerCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if err := logger.Init(loggerCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func configSource(v *viper.Viper) string {
	if path := v.ConfigFileUsed(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return "defaults"
}
