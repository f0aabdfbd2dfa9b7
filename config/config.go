// Package config resolves storefront settings from flags, environment, an
// optional config file and .env.
package config

import (
	"os"
	"strings"
	"time"

	"storefront/feed"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable, e.g. STOREFRONT_FEED_URL.
const EnvPrefix = "STOREFRONT"

// Config keys, shared with the CLI flag names.
const (
	KeyConfig          = "config"
	KeyEnvFile         = "env-file"
	KeyEnv             = "env"
	KeyLogLevel        = "log-level"
	KeyFeed            = "feed"
	KeyFeedURL         = "feed-url"
	KeyFeedFile        = "feed-file"
	KeyFeedTimeout     = "feed-timeout"
	KeyScrollThreshold = "scroll-threshold"
	KeyScrollRate      = "scroll-rate"
	KeyScrollBurst     = "scroll-burst"
)

type Config struct {
	Env      string
	LogLevel string

	FeedKind    string
	FeedURL     string
	FeedFile    string
	FeedTimeout time.Duration

	ScrollThreshold int
	ScrollRate      float64
	ScrollBurst     int
}

// FeedLocation returns the URL or path matching FeedKind.
func (c *Config) FeedLocation() string {
	if c.FeedKind == "file" {
		return c.FeedFile
	}
	return c.FeedURL
}

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEnvFile, ".env")
	v.SetDefault(KeyEnv, "development")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyFeed, "http")
	v.SetDefault(KeyFeedURL, feed.DefaultURL)
	v.SetDefault(KeyFeedFile, "data/products.json")
	v.SetDefault(KeyFeedTimeout, 10*time.Second)
	v.SetDefault(KeyScrollThreshold, 500)
	v.SetDefault(KeyScrollRate, 20.0)
	v.SetDefault(KeyScrollBurst, 5)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load layers the settings as flag > env > config file > .env > default and
// returns them validated. A missing .env is fine.
func Load(v *viper.Viper) (*Config, error) {
	if err := loadDotEnv(v, v.GetString(KeyEnvFile)); err != nil {
		return nil, err
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	cfg := &Config{
		Env:             v.GetString(KeyEnv),
		LogLevel:        strings.ToLower(v.GetString(KeyLogLevel)),
		FeedKind:        strings.ToLower(v.GetString(KeyFeed)),
		FeedURL:         v.GetString(KeyFeedURL),
		FeedFile:        v.GetString(KeyFeedFile),
		FeedTimeout:     v.GetDuration(KeyFeedTimeout),
		ScrollThreshold: v.GetInt(KeyScrollThreshold),
		ScrollRate:      v.GetFloat64(KeyScrollRate),
		ScrollBurst:     v.GetInt(KeyScrollBurst),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv applies STOREFRONT_* entries of the .env file at path as defaults,
// so the config file and the real environment both take precedence over it.
func loadDotEnv(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "read env file %s", path)
	}
	for name, value := range vars {
		key, ok := strings.CutPrefix(name, EnvPrefix+"_")
		if !ok || key == "" {
			continue
		}
		v.SetDefault(strings.ReplaceAll(strings.ToLower(key), "_", "-"), value)
	}
	return nil
}

// Validate normalises the log level and checks value ranges.
func (c *Config) Validate() error {
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Errorf("invalid %s %q", KeyLogLevel, c.LogLevel)
	}
	if c.FeedTimeout <= 0 {
		return errors.Errorf("%s must be positive, got %s", KeyFeedTimeout, c.FeedTimeout)
	}
	if c.ScrollThreshold < 0 {
		return errors.Errorf("%s must be non-negative, got %d", KeyScrollThreshold, c.ScrollThreshold)
	}
	if c.ScrollRate < 0 {
		return errors.Errorf("%s must be non-negative, got %g", KeyScrollRate, c.ScrollRate)
	}
	if c.ScrollBurst < 1 {
		return errors.Errorf("%s must be at least 1, got %d", KeyScrollBurst, c.ScrollBurst)
	}
	return nil
}
