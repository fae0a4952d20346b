// Package config loads the optional bralign configuration from
// .bralign/config.json in the working directory. A missing file yields the
// defaults; output file names are deliberately not configurable.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete bralign configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Logging      LoggingConfig      `json:"logging" mapstructure:"logging"`
	Reorder      ReorderConfig      `json:"reorder" mapstructure:"reorder"`
	Verification VerificationConfig `json:"verification" mapstructure:"verification"`
	History      HistoryConfig      `json:"history" mapstructure:"history"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// ReorderConfig contains reorder pipeline configuration
type ReorderConfig struct {
	// ProgressInterval is how many modules to process between progress
	// messages during the library reorder pass
	ProgressInterval int `json:"progressInterval" mapstructure:"progressInterval"`
}

// VerificationConfig contains verification configuration
type VerificationConfig struct {
	// Strict makes a verification failure change the exit code
	Strict bool `json:"strict" mapstructure:"strict"`
}

// HistoryConfig contains run-history ledger configuration
type HistoryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// ConfigDirName is the per-directory configuration/state directory
const ConfigDirName = ".bralign"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
		Reorder: ReorderConfig{
			ProgressInterval: 50,
		},
		Verification: VerificationConfig{
			Strict: false,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// LoadConfig loads configuration from <root>/.bralign/config.json
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")
	v.SetDefault("reorder.progressInterval", 50)
	v.SetDefault("verification.strict", false)
	v.SetDefault("history.enabled", true)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ConfigDirName))

	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to <root>/.bralign/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Reorder.ProgressInterval < 0 {
		return &ConfigError{Field: "reorder.progressInterval", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
