// Package config loads the routegen tool configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the routegen configuration
type Config struct {
	Entity     EntityConfig `mapstructure:"entity"`
	Operations OpsConfig    `mapstructure:"operations"`
	Docs       DocsConfig   `mapstructure:"docs"`
}

// EntityConfig points at the entity definition and its conventions
type EntityConfig struct {
	File          string `mapstructure:"file"`
	IDField       string `mapstructure:"id_field"`
	HasTimestamps bool   `mapstructure:"has_timestamps"`
	HasSoftDelete bool   `mapstructure:"has_soft_delete"`
}

// OpsConfig configures operation derivation
type OpsConfig struct {
	BasePath     string `mapstructure:"base_path"`
	MaxBatchSize int    `mapstructure:"max_batch_size"`
}

// DocsConfig configures document generation
type DocsConfig struct {
	Title   string `mapstructure:"title"`
	Version string `mapstructure:"version"`
	Format  string `mapstructure:"format"`
}

// Load loads the configuration from routegen.yml or routegen.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("entity.file", "entity.yml")
	v.SetDefault("entity.id_field", "id")
	v.SetDefault("docs.title", "Generated API")
	v.SetDefault("docs.version", "0.1.0")
	v.SetDefault("docs.format", "yaml")

	// Set config name and paths
	v.SetConfigName("routegen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
