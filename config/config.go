package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	coretypes "github.com/projecteru2/core/types"
)

// Config holds global Corral configuration.
type Config struct {
	// RootDir is the base directory for persistent data.
	RootDir string `json:"root_dir" mapstructure:"root_dir"`
	// RunDir holds transient per-run artifacts (inventory cache, lock).
	RunDir string `json:"run_dir" mapstructure:"run_dir"`
	// LogDir holds the rotated corral log.
	LogDir string `json:"log_dir" mapstructure:"log_dir"`

	// VBoxManage is the hypervisor control binary, resolved via PATH lookup
	// at backend construction if not absolute.
	VBoxManage string `json:"vboxmanage" mapstructure:"vboxmanage"`

	// TimeoutSeconds bounds each VBoxManage invocation. 0 disables the bound.
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`
	// PoolSize caps concurrent dispatch workers when --parallel is used.
	// Defaults to runtime.NumCPU() if zero.
	PoolSize int `json:"pool_size" mapstructure:"pool_size"`

	// Log configuration, uses eru core's ServerLogConfig.
	Log coretypes.ServerLogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RootDir:        "/var/lib/corral",
		RunDir:         "/run/corral",
		LogDir:         "/var/log/corral",
		VBoxManage:     "VBoxManage",
		TimeoutSeconds: 120,
		PoolSize:       runtime.NumCPU(),
		Log: coretypes.ServerLogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxAge:     28,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from file, falling back to defaults.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from CLI flag
	if err != nil {
		if os.IsNotExist(err) {
			return conf, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	conf.Normalize()
	return conf, nil
}

// Normalize fills zero-value fields with defaults.
func (c *Config) Normalize() {
	if c.PoolSize <= 0 {
		c.PoolSize = runtime.NumCPU()
	}
	if c.VBoxManage == "" {
		c.VBoxManage = "VBoxManage"
	}
	if c.TimeoutSeconds < 0 {
		c.TimeoutSeconds = 0
	}
}
