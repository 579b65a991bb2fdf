package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
database:
  host: localhost
  port: 3306
  dbname: quiz
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
	assert.Equal(t, "db", cfg.Catalog.Source)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL())
	assert.Equal(t, "none", cfg.Storage.Type)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, 600, cfg.RateLimit.MaxRequests)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.File)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
database:
  host: localhost
scoring:
  workers: 4
`)
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Scoring.Workers)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		Server:    ServerConfig{Mode: "debug"},
		Database:  DatabaseConfig{Driver: "mysql"},
		Catalog:   CatalogConfig{Source: "db"},
		Storage:   StorageConfig{Type: "none"},
		RateLimit: RateLimitConfig{MaxRequests: 10, WindowMinutes: 1},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{name: "valid", mutate: func(c *Config) {}, ok: true},
		{name: "bad mode", mutate: func(c *Config) { c.Server.Mode = "prod" }},
		{name: "bad driver", mutate: func(c *Config) { c.Database.Driver = "sqlite" }},
		{name: "file catalog without file", mutate: func(c *Config) { c.Catalog.Source = "file" }},
		{name: "file catalog", mutate: func(c *Config) { c.Catalog.Source = "file"; c.Catalog.File = "q.yaml" }, ok: true},
		{name: "bad catalog", mutate: func(c *Config) { c.Catalog.Source = "http" }},
		{name: "bad storage", mutate: func(c *Config) { c.Storage.Type = "s3" }},
		{name: "release without password", mutate: func(c *Config) { c.Server.Mode = "release" }},
		{name: "release with password", mutate: func(c *Config) { c.Server.Mode = "release"; c.Database.Password = "x" }, ok: true},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimit.MaxRequests = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
