// Package config loads pokesight configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pokesight/pokesight/internal/catalog"
	"github.com/pokesight/pokesight/internal/db"
)

// Config holds application configuration.
type Config struct {
	Catalog  CatalogConfig
	Database DatabaseConfig
}

// CatalogConfig holds set-database settings.
type CatalogConfig struct {
	URL      string
	Format   string
	TTLHours int `mapstructure:"ttl_hours"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// TTL returns the catalog cache lifetime.
func (c CatalogConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// Load reads configuration from file and env. Env var overrides use prefix
// POKESIGHT_ (POKESIGHT_CATALOG_FORMAT=gen9uu, ...).
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("catalog.url", catalog.DefaultBaseURL)
	v.SetDefault("catalog.format", catalog.DefaultFormat)
	v.SetDefault("catalog.ttl_hours", 24)
	v.SetDefault("database.path", db.DefaultDBPath())

	v.SetConfigType("toml")

	cfgPath := os.Getenv("POKESIGHT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pokesight"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("POKESIGHT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
