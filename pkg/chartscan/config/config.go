// Package config loads chartscan configuration from file and
// environment. Config lives at $XDG_CONFIG_HOME/chartscan/config.yaml
// with CHARTSCAN_-prefixed environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level        string            `mapstructure:"level"`
	Path         string            `mapstructure:"path"`
	ConsoleLevel string            `mapstructure:"console_level"`
	Components   map[string]string `mapstructure:"components"`
}

// Config represents the application configuration.
type Config struct {
	// Output is the default CLI output format (pretty, plain, json).
	Output string `mapstructure:"output"`

	// Workers overrides the traversal worker count (0 = per permit).
	Workers int `mapstructure:"workers"`

	// Storage forces a storage class instead of probing the mount
	// table (auto, ssd, hdd). Useful on filesystems that misreport.
	Storage string `mapstructure:"storage"`

	// Estimate enables the pre-scan file count for progress reporting.
	Estimate bool `mapstructure:"estimate"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/chartscan/config.yaml
//   - $HOME/.config/chartscan/config.yaml
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "chartscan"))
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "chartscan"))

	v.SetEnvPrefix("CHARTSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Missing config file is fine; defaults and env apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// ConfigDir returns the directory the config file lives in,
// $XDG_CONFIG_HOME/chartscan or ~/.config/chartscan.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "chartscan"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "chartscan"), nil
}

// WriteDefault creates a commented default config file if none exists.
func WriteDefault() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

const defaultConfigYAML = `# chartscan configuration
# Environment variables with the CHARTSCAN_ prefix override these,
# e.g. CHARTSCAN_OUTPUT=json or CHARTSCAN_LOGGING_LEVEL=debug.

# Output format: pretty, plain, json
output: pretty

# Traversal worker count. 0 means one worker per I/O permit.
workers: 0

# Storage class: auto probes the mount table, ssd and hdd force a budget.
storage: auto

# Pre-count matching files to report scan progress.
estimate: false

logging:
  # debug, info, warn, error
  level: info
  # Log file path. Empty uses the XDG state directory, "-" disables.
  path: ""
`

// setDefaults registers default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("storage", DefaultStorage)
	v.SetDefault("estimate", false)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.console_level", "")
}
