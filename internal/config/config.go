package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	Cache  CacheConfig
	Log    LogConfig
	UI     UIConfig
}

// ServerConfig points at the expense service.
type ServerConfig struct {
	BaseURL string
}

// CacheConfig holds the snapshot database settings.
type CacheConfig struct {
	Path string
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string
	Timezone       string
	RowsPerPage    int
}

// Load reads configuration from file and env. Env var overrides use prefix HOUSETAB_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.base_url", "http://localhost:5000")
	v.SetDefault("cache.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "housetab", "snapshot.db"))
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "housetab", "housetab.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.timezone", "Australia/Melbourne")
	v.SetDefault("ui.rows_per_page", 20)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("HOUSETAB_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "housetab"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("HOUSETAB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.RowsPerPage < 5 || c.UI.RowsPerPage > 50 {
		c.UI.RowsPerPage = 20
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config
// directory if needed. Used by the settings view for UI preferences.
func Save(cfg Config) error {
	path := os.Getenv("HOUSETAB_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "housetab", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("server.base_url", cfg.Server.BaseURL)
	v.Set("cache.path", cfg.Cache.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.rows_per_page", cfg.UI.RowsPerPage)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
