// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/uaforge/uaforge/internal/engine"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Corpus  CorpusConfig  `mapstructure:"corpus"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// CorpusConfig governs the network refresh of the identity corpus.
type CorpusConfig struct {
	// Endpoint is the corpus document URL. Empty disables network refresh and
	// the engine resolves from cache or the embedded fallback.
	Endpoint       string `mapstructure:"endpoint"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxAttempts    int    `mapstructure:"max_attempts"`
}

// CacheConfig controls the on-disk corpus cache.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Path     string `mapstructure:"path"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("UAFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("corpus.endpoint", "")
	v.SetDefault("corpus.timeout_seconds", 15)
	v.SetDefault("corpus.max_attempts", 3)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", "")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("logging.development", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Corpus.TimeoutSeconds <= 0 {
		return fmt.Errorf("corpus.timeout_seconds must be > 0")
	}
	if c.Corpus.MaxAttempts <= 0 {
		return fmt.Errorf("corpus.max_attempts must be > 0")
	}
	if c.Cache.Enabled && c.Cache.TTLHours <= 0 {
		return fmt.Errorf("cache.ttl_hours must be > 0 when the cache is enabled")
	}
	return nil
}

// Engine converts the loaded configuration into the engine's construction
// knobs.
func (c Config) Engine() engine.Config {
	return engine.Config{
		UseDiskCache:   c.Cache.Enabled,
		CachePath:      c.Cache.Path,
		CacheTTL:       time.Duration(c.Cache.TTLHours) * time.Hour,
		CorpusEndpoint: c.Corpus.Endpoint,
		NetworkTimeout: time.Duration(c.Corpus.TimeoutSeconds) * time.Second,
		FetchAttempts:  c.Corpus.MaxAttempts,
	}
}
