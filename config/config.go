// Package config loads the tool configuration: logging, telemetry, the
// generator inputs and the snapshot store location.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LokiConfig describes an optional Loki log sink.
type LokiConfig struct {
	Enabled bool              `yaml:"enabled"`
	URL     string            `yaml:"url"`
	Labels  map[string]string `yaml:"labels"`
}

// LoggingConfig encapsulates runtime logging options.
type LoggingConfig struct {
	Level  string     `yaml:"level"`
	Format string     `yaml:"format"`
	Loki   LokiConfig `yaml:"loki"`
}

// TelemetryConfig toggles Prometheus metric collection.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// CategoryConfig describes one configuration category the generator builds:
// its name, the fixed configTypeId seed and the setting file carrying its
// flattened tree.
type CategoryConfig struct {
	Name         string `yaml:"name"`
	ConfigTypeID string `yaml:"config_type_id"`
	SettingFile  string `yaml:"setting_file"`
}

// InputsConfig names the generator input files.
type InputsConfig struct {
	Template string `yaml:"template"`
	ConfMap  string `yaml:"conf_map"`
	Commands string `yaml:"commands"`
}

// Config is the root configuration structure for the tool.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Inputs     InputsConfig     `yaml:"inputs"`
	Categories []CategoryConfig `yaml:"categories"`
	OutputDir  string           `yaml:"output_dir"`
	StorePath  string           `yaml:"store_path"`
}

// Load reads and decodes the configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// CategoryList returns the configured categories, falling back to the
// standard four in their build order.
func (c *Config) CategoryList() []CategoryConfig {
	if c != nil && len(c.Categories) > 0 {
		return c.Categories
	}
	return []CategoryConfig{
		{Name: "sib", ConfigTypeID: "301", SettingFile: "sib_setting.json"},
		{Name: "enb", ConfigTypeID: "201", SettingFile: "enb_setting.json"},
		{Name: "rr", ConfigTypeID: "501", SettingFile: "rr_setting.json"},
		{Name: "drb", ConfigTypeID: "401", SettingFile: "drb_setting.json"},
	}
}

// OutputDirectory returns the configured output directory, defaulting to the
// working directory.
func (c *Config) OutputDirectory() string {
	if c == nil || c.OutputDir == "" {
		return "."
	}
	return c.OutputDir
}
