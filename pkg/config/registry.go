package config

import (
	"context"
	"fmt"

	"github.com/marmos91/indexfs/internal/logger"
	"github.com/marmos91/indexfs/pkg/metrics"
	"github.com/marmos91/indexfs/pkg/registry"
)

// InitializeRegistry creates a Registry holding one disk per cfg.Disks entry.
// m may be nil when metrics are disabled.
//
// Example:
//
//	cfg, _ := config.Load("config.yaml")
//	reg, err := config.InitializeRegistry(ctx, cfg, nil)
func InitializeRegistry(ctx context.Context, cfg *Config, m *metrics.Metrics) (*registry.Registry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	reg := registry.New(m)
	for _, d := range cfg.Disks {
		if _, err := reg.Create(ctx, d.Name, d.TotalBlocks, d.BlockSize.Int()); err != nil {
			return nil, fmt.Errorf("failed to create disk %q: %w", d.Name, err)
		}
	}

	logger.Info("Registry initialized", "disks", reg.Count())
	return reg, nil
}

// MetricsResult carries what InitializeMetrics built. Both fields are nil
// when metrics are disabled.
type MetricsResult struct {
	Metrics *metrics.Metrics
	Server  *metrics.Server
}

// InitializeMetrics creates the collectors and /metrics server when enabled.
func InitializeMetrics(cfg *Config) MetricsResult {
	if !cfg.Metrics.Enabled {
		logger.Debug("Metrics disabled")
		return MetricsResult{}
	}

	reg := metrics.NewRegistry()
	return MetricsResult{
		Metrics: metrics.NewMetrics(reg),
		Server:  metrics.NewServer(cfg.Metrics.Port, reg),
	}
}
