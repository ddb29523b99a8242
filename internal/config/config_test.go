package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configVars = []string{
	"PORT", "ENV", "SHUTDOWN_TIMEOUT", "CATALOG_SOURCE", "DATABASE_PATH",
	"CACHE_CAPACITY", "API_KEY", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range configVars {
		t.Setenv(v, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, CatalogEmbedded, cfg.CatalogSource)
	assert.Equal(t, "./data/amlich.db", cfg.DatabasePath)
	assert.Equal(t, 100, cfg.CacheCapacity)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.UsesDatabase())
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("ENV", "production")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CATALOG_SOURCE", "database")
	t.Setenv("DATABASE_PATH", "/data/test.db")
	t.Setenv("CACHE_CAPACITY", "500")
	t.Setenv("API_KEY", "secret-key-123")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.UsesDatabase())
	assert.Equal(t, "/data/test.db", cfg.DatabasePath)
	assert.Equal(t, 500, cfg.CacheCapacity)
	assert.Equal(t, "secret-key-123", cfg.APIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Unparseable(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_CAPACITY", "lots")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_CAPACITY")
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func validConfig() Config {
	return Config{
		Port:            8080,
		Env:             EnvDevelopment,
		ShutdownTimeout: time.Second,
		CatalogSource:   CatalogEmbedded,
		DatabasePath:    "./data/test.db",
		CacheCapacity:   100,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid development config", func(*Config) {}, false},
		{"valid production config", func(c *Config) {
			c.Env = EnvProduction
			c.APIKey = "required-in-prod"
		}, false},
		{"production requires API key", func(c *Config) { c.Env = EnvProduction }, true},
		{"invalid port - too low", func(c *Config) { c.Port = 0 }, true},
		{"invalid port - too high", func(c *Config) { c.Port = 70000 }, true},
		{"invalid environment", func(c *Config) { c.Env = "invalid" }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"invalid log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"zero cache capacity", func(c *Config) { c.CacheCapacity = 0 }, true},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }, true},
		{"unknown catalog source", func(c *Config) { c.CatalogSource = "redis" }, true},
		{"database source needs a path", func(c *Config) {
			c.CatalogSource = CatalogDatabase
			c.DatabasePath = ""
		}, true},
		{"embedded source ignores the path", func(c *Config) { c.DatabasePath = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateReportsAll(t *testing.T) {
	cfg := validConfig()
	cfg.Port = 0
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestConfig_EnvPredicates(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.Env = EnvProduction
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}
