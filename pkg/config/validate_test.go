package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Valid", func(*Config) {}, ""},
		{"InvalidLogLevel", func(c *Config) { c.Logging.Level = "LOUD" }, "oneof"},
		{"InvalidLogFormat", func(c *Config) { c.Logging.Format = "xml" }, "oneof"},
		{"SampleRateTooHigh", func(c *Config) { c.Telemetry.SampleRate = 1.5 }, "lte"},
		{"TelemetryWithoutEndpoint", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Endpoint = ""
		}, "required_if"},
		{"APIPortOutOfRange", func(c *Config) { c.API.Port = 70000 }, "max"},
		{"ZeroShutdownTimeout", func(c *Config) { c.ShutdownTimeout = 0 }, "required"},
		{"EmptyDiskName", func(c *Config) { c.Disks[0].Name = "" }, "required"},
		{"SlashInDiskName", func(c *Config) { c.Disks[0].Name = "a/b" }, "excludesall"},
		{"NonPositiveBlocks", func(c *Config) { c.Disks[0].TotalBlocks = -1 }, "gt"},
		{"TooManyBlocks", func(c *Config) { c.Disks[0].TotalBlocks = 1 << 30 }, "max"},
		{"DuplicateDisk", func(c *Config) {
			c.Disks = append(c.Disks, DiskConfig{Name: c.Disks[0].Name, TotalBlocks: 4, BlockSize: 4096})
		}, "duplicate disk name"},
		{"PortClash", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Port = c.API.Port
		}, "conflicts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.Error(t, Validate(nil))
}
