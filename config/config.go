// Package config loads the application-level configuration: output
// defaults and paths. The folder configuration (which folders to scan and
// their rules) is a separate, independently persisted store.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// DefaultFormat is the run report format: table, json or markdown.
	DefaultFormat string `yaml:"default_format,omitempty"`
	// FoldersPath overrides the folder configuration file location.
	FoldersPath string `yaml:"folders_path,omitempty"`
	// OutputDir is where spreadsheet artifacts are written.
	OutputDir string `yaml:"output_dir,omitempty"`
	// NearBandDays overrides the remaining-days boundary between a
	// near-expiry warning and an OK row.
	NearBandDays *int `yaml:"near_band_days,omitempty"`
	// DateLayouts are extra Go time layouts tried when parsing cell dates.
	DateLayouts []string `yaml:"date_layouts,omitempty"`
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".stabwatch"
	}
	return filepath.Join(configDir, "stabwatch")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".stabwatch.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from the XDG config directory, then
// merges any local .stabwatch.yaml on top (local values take precedence).
func Load() (*Config, error) {
	cfg := &Config{
		DefaultFormat: "table",
		OutputDir:     ".",
	}

	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}
		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}
		cfg = mergeConfig(cfg, &localCfg)
	}

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{}

	if local.DefaultFormat != "" {
		result.DefaultFormat = local.DefaultFormat
	} else {
		result.DefaultFormat = global.DefaultFormat
	}

	if local.FoldersPath != "" {
		result.FoldersPath = local.FoldersPath
	} else {
		result.FoldersPath = global.FoldersPath
	}

	if local.OutputDir != "" {
		result.OutputDir = local.OutputDir
	} else {
		result.OutputDir = global.OutputDir
	}

	if local.NearBandDays != nil {
		result.NearBandDays = local.NearBandDays
	} else {
		result.NearBandDays = global.NearBandDays
	}

	if len(local.DateLayouts) > 0 {
		result.DateLayouts = local.DateLayouts
	} else {
		result.DateLayouts = global.DateLayouts
	}

	return result
}

// NearBand returns the configured near band in days, or 0 when unset so
// the evaluator applies its default.
func (c *Config) NearBand() int {
	if c.NearBandDays == nil {
		return 0
	}
	return *c.NearBandDays
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# stabwatch configuration file

# Run report format: table, json or markdown
default_format: table

# Where spreadsheet artifacts are written
# output_dir: ./reports

# Remaining-days boundary between "near expiry" and OK (default 30)
# near_band_days: 30

# Extra Go time layouts for date cells (tried before the built-ins)
# date_layouts:
#   - "02.01.2006"
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
