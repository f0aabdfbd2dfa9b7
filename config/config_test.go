package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront/feed"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http", cfg.FeedKind)
	assert.Equal(t, feed.DefaultURL, cfg.FeedURL)
	assert.Equal(t, feed.DefaultURL, cfg.FeedLocation())
	assert.Equal(t, 10*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 500, cfg.ScrollThreshold)
	assert.Equal(t, 20.0, cfg.ScrollRate)
	assert.Equal(t, 5, cfg.ScrollBurst)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("STOREFRONT_FEED", "file")
	t.Setenv("STOREFRONT_FEED_FILE", "/tmp/catalog.json")
	t.Setenv("STOREFRONT_LOG_LEVEL", "WARNING")
	t.Setenv("STOREFRONT_FEED_TIMEOUT", "3s")

	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.FeedKind)
	assert.Equal(t, "/tmp/catalog.json", cfg.FeedLocation())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.FeedTimeout)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scroll-threshold: 250\nscroll-rate: 0\nenv: production\n"), 0o644))

	v := newViper()
	v.Set(KeyConfig, path)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.ScrollThreshold)
	assert.Equal(t, 0.0, cfg.ScrollRate)
	assert.Equal(t, "production", cfg.Env)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"STOREFRONT_FEED_FILE=from-dotenv\n"+
			"STOREFRONT_SCROLL_BURST=7\n"+
			"STOREFRONT_FEED_TIMEOUT=4s\n"+
			"UNRELATED=ignored\n"), 0o644))
	cfgFile := filepath.Join(dir, "c.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("feed-file: from-config-file\nfeed-timeout: 6s\n"), 0o644))

	load := func(t *testing.T, withConfig bool) *Config {
		t.Helper()
		v := newViper()
		v.Set(KeyEnvFile, envFile)
		if withConfig {
			v.Set(KeyConfig, cfgFile)
		}
		cfg, err := Load(v)
		require.NoError(t, err)
		return cfg
	}

	t.Run("dotenv over defaults", func(t *testing.T) {
		cfg := load(t, false)
		assert.Equal(t, "from-dotenv", cfg.FeedFile)
		assert.Equal(t, 7, cfg.ScrollBurst)
		assert.Equal(t, 4*time.Second, cfg.FeedTimeout)
	})

	t.Run("config file over dotenv", func(t *testing.T) {
		cfg := load(t, true)
		assert.Equal(t, "from-config-file", cfg.FeedFile)
		assert.Equal(t, 6*time.Second, cfg.FeedTimeout)
		assert.Equal(t, 7, cfg.ScrollBurst)
	})

	t.Run("environment over config file", func(t *testing.T) {
		t.Setenv("STOREFRONT_FEED_FILE", "from-env")
		cfg := load(t, true)
		assert.Equal(t, "from-env", cfg.FeedFile)
	})

	t.Run("dotenv leaves the process environment alone", func(t *testing.T) {
		load(t, false)
		_, set := os.LookupEnv("STOREFRONT_SCROLL_BURST")
		assert.False(t, set)
	})
}

func TestLoad_MissingEnvFile(t *testing.T) {
	v := newViper()
	v.Set(KeyEnvFile, filepath.Join(t.TempDir(), "absent.env"))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.ScrollBurst)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	v := newViper()
	v.Set(KeyConfig, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load(v)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{LogLevel: "info", FeedTimeout: time.Second, ScrollThreshold: 500, ScrollRate: 1, ScrollBurst: 1}
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"zero timeout", func(c *Config) { c.FeedTimeout = 0 }},
		{"negative threshold", func(c *Config) { c.ScrollThreshold = -1 }},
		{"negative rate", func(c *Config) { c.ScrollRate = -2 }},
		{"zero burst", func(c *Config) { c.ScrollBurst = 0 }},
	}

	ok := base()
	require.NoError(t, ok.Validate())

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := base()
			c.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
