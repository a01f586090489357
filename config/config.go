// Package config provides configuration parsing for syswatch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the syswatch configuration.
type Config struct {
	// Sampling holds refresh cadence settings.
	Sampling SamplingConfig `yaml:"sampling"`

	// Display holds TUI rendering settings.
	Display DisplayConfig `yaml:"display"`

	// Export holds snapshot export settings.
	Export ExportConfig `yaml:"export"`

	// LogFile is the path for log output. Empty means stderr.
	LogFile string `yaml:"log_file"`
}

// SamplingConfig holds refresh cadence settings.
type SamplingConfig struct {
	// BaseInterval is a duration string (e.g. "1s", "500ms") between process
	// refreshes before focus/energy-saving multipliers apply.
	BaseInterval string `yaml:"base_interval"`
	// EnergySaving doubles the focused refresh interval when true.
	EnergySaving bool `yaml:"energy_saving"`
	// HistorySamples is the chart ring buffer capacity.
	HistorySamples int `yaml:"history_samples"`
}

// DisplayConfig holds TUI rendering settings.
type DisplayConfig struct {
	// Theme selects the color theme: "dark" or "nord".
	Theme string `yaml:"theme"`
	// ShowSystemInfo toggles the system information panel.
	ShowSystemInfo bool `yaml:"show_system_info"`
	// ShowDiskInfo toggles the disk panel.
	ShowDiskInfo bool `yaml:"show_disk_info"`
	// ShowCharts toggles the history charts.
	ShowCharts bool `yaml:"show_charts"`
}

// ExportConfig holds snapshot export settings.
type ExportConfig struct {
	// Dir is the directory snapshot files are written to.
	Dir string `yaml:"dir"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		Sampling: SamplingConfig{
			BaseInterval:   "1s",
			EnergySaving:   false,
			HistorySamples: 100,
		},
		Display: DisplayConfig{
			Theme:          "dark",
			ShowSystemInfo: true,
			ShowDiskInfo:   true,
			ShowCharts:     true,
		},
		Export: ExportConfig{
			Dir: ".",
		},
		LogFile: filepath.Join(home, ".local", "log", "syswatch.log"),
	}
}

// Load loads configuration from a YAML file, merging with defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for required fields and logical
// consistency.
func (c *Config) Validate() error {
	interval, err := c.BaseInterval()
	if err != nil {
		return fmt.Errorf("config: sampling.base_interval: %w", err)
	}
	if interval < 100*time.Millisecond {
		return fmt.Errorf("config: sampling.base_interval must be at least 100ms, got %s", interval)
	}
	if interval > time.Minute {
		return fmt.Errorf("config: sampling.base_interval must be at most 1m, got %s", interval)
	}

	if c.Sampling.HistorySamples <= 0 {
		return fmt.Errorf("config: sampling.history_samples must be positive, got %d", c.Sampling.HistorySamples)
	}

	validThemes := map[string]bool{"dark": true, "nord": true}
	if !validThemes[c.Display.Theme] {
		return fmt.Errorf("config: display.theme must be 'dark' or 'nord', got %q", c.Display.Theme)
	}

	if c.Export.Dir == "" {
		return fmt.Errorf("config: export.dir is required")
	}

	return nil
}

// BaseInterval parses the configured refresh interval.
func (c *Config) BaseInterval() (time.Duration, error) {
	return time.ParseDuration(c.Sampling.BaseInterval)
}

// Save writes the configuration to a YAML file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("config: create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
