// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"gamma-guide/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Chain   ChainConfig   `mapstructure:"chain"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ChainConfig holds chain-synthesis configuration.
type ChainConfig struct {
	Symbol      string `mapstructure:"symbol"`      // snapshot label, e.g. MON-USD
	Expirations int    `mapstructure:"expirations"` // monthly expirations per snapshot
}

// FeedConfig holds spot price feed configuration.
type FeedConfig struct {
	CoinGeckoID string        `mapstructure:"coingecko_id"` // e.g. "monad"
	APIKey      string        `mapstructure:"api_key"`      // optional demo API key
	Timeout     time.Duration `mapstructure:"timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	RedisURL    string        `mapstructure:"redis_url"` // empty disables the cache
}

// ServerConfig holds the HTTP API configuration.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/gamma-guide"
	}
	return filepath.Join(home, ".config", "gamma-guide")
}

// DBPath returns the sqlite journal path inside the config directory.
func DBPath(configDir string) string {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return filepath.Join(configDir, "desk.db")
}

// Load loads configuration from the specified directory, with environment
// variables (GAMMA_ prefix) overriding file values. A missing config file is
// not an error: defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("GAMMA")
	// Nested keys hold dots; map feed.timeout to GAMMA_FEED_TIMEOUT.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.yaml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// The demo key commonly lives in the environment rather than the file.
	if key := os.Getenv("COINGECKO_API_KEY"); key != "" {
		cfg.Feed.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chain.symbol", "MON-USD")
	v.SetDefault("chain.expirations", 5)

	v.SetDefault("feed.coingecko_id", "monad")
	v.SetDefault("feed.timeout", 8*time.Second)
	v.SetDefault("feed.cache_ttl", time.Minute)
	v.SetDefault("feed.redis_url", "")

	v.SetDefault("server.addr", ":8085")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(DefaultConfigDir(), "logs", "desk.log"))
	v.SetDefault("logging.max_size", 50)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 30)
}

// Validate checks the configuration for inconsistent values. Errors wrap
// errors.ErrConfigInvalid so callers can match on the class.
func (c *Config) Validate() error {
	if c.Chain.Symbol == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "chain.symbol must not be empty")
	}
	if c.Chain.Expirations <= 0 || c.Chain.Expirations > 24 {
		return errors.Wrapf(errors.ErrConfigInvalid, "chain.expirations must be in 1..24, got %d", c.Chain.Expirations)
	}
	if c.Feed.CoinGeckoID == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "feed.coingecko_id must not be empty")
	}
	if c.Feed.Timeout <= 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "feed.timeout must be positive")
	}
	if c.Server.Addr == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "server.addr must not be empty")
	}
	return nil
}
