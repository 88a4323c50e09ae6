package config

import (
	"strings"
	"time"

	"github.com/marmos91/indexfs/internal/bytesize"
	"github.com/marmos91/indexfs/pkg/alloc"
	"github.com/marmos91/indexfs/pkg/api"
)

// DefaultDiskName is the disk created when the configuration lists none.
const DefaultDiskName = "default"

// ApplyDefaults sets default values for any unspecified configuration fields.
// Zero values are replaced; explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyShutdownTimeoutDefaults(cfg)
	applyMetricsDefaults(&cfg.Metrics)
	applyAPIDefaults(&cfg.API)
	for i := range cfg.Disks {
		applyDiskDefaults(&cfg.Disks[i])
	}
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
}

func applyShutdownTimeoutDefaults(cfg *Config) {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = 9090
	}
}

func applyAPIDefaults(cfg *api.APIConfig) {
	cfg.ApplyDefaults()
}

func applyDiskDefaults(cfg *DiskConfig) {
	if cfg.TotalBlocks == 0 {
		cfg.TotalBlocks = alloc.DefaultTotalBlocks
	}
	if cfg.BlockSize == 0 {
		cfg.BlockSize = bytesize.ByteSize(alloc.DefaultBlockSize)
	}
}

// GetDefaultConfig returns a Config with all defaults applied and a single
// disk using the reference geometry.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Telemetry: TelemetryConfig{Insecure: true},
		Disks:     []DiskConfig{{Name: DefaultDiskName}},
	}
	ApplyDefaults(cfg)
	return cfg
}
