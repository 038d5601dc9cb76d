package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.Imgur.ClientID)
	assert.False(t, cfg.Crawl.Recursive)
	assert.Equal(t, "./downloads", cfg.Output.BaseDirectory)
	assert.False(t, cfg.Output.HTML)
	assert.Equal(t, 30*time.Second, cfg.Download.Timeout)
	assert.Equal(t, 3, cfg.Download.RetryAttempts)
	assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IMGURGRAB_CLIENT_ID", "env-client-id")
	t.Setenv("IMGURGRAB_OUTPUT_DIR", "/tmp/imgur-out")
	t.Setenv("IMGURGRAB_REQUESTS_PER_MINUTE", "30")
	t.Setenv("IMGURGRAB_RECURSIVE", "true")
	t.Setenv("IMGURGRAB_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "env-client-id", cfg.Imgur.ClientID)
	assert.Equal(t, "/tmp/imgur-out", cfg.Output.BaseDirectory)
	assert.Equal(t, 30, cfg.RateLimit.RequestsPerMinute)
	assert.True(t, cfg.Crawl.Recursive)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvIgnoresInvalidRate(t *testing.T) {
	t.Setenv("IMGURGRAB_REQUESTS_PER_MINUTE", "not-a-number")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
}

func TestLoadFromFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `imgur:
  client_id: file-client-id
crawl:
  recursive: true
output:
  base_directory: /data/albums
  html: true
rate_limit:
  requests_per_minute: 20
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg := DefaultConfig()
		require.NoError(t, cfg.LoadFromFile(path))

		assert.Equal(t, "file-client-id", cfg.Imgur.ClientID)
		assert.True(t, cfg.Crawl.Recursive)
		assert.Equal(t, "/data/albums", cfg.Output.BaseDirectory)
		assert.True(t, cfg.Output.HTML)
		assert.Equal(t, 20, cfg.RateLimit.RequestsPerMinute)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := DefaultConfig()
		err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("imgur: [not: valid"), 0644))

		cfg := DefaultConfig()
		assert.Error(t, cfg.LoadFromFile(path))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty base directory",
			mutate:  func(c *Config) { c.Output.BaseDirectory = "" },
			wantErr: true,
		},
		{
			name:    "zero requests per minute",
			mutate:  func(c *Config) { c.RateLimit.RequestsPerMinute = 0 },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Download.Timeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.Download.RetryAttempts = -1 },
			wantErr: true,
		},
		{
			name:    "bogus log level",
			mutate:  func(c *Config) { c.Logging.Level = "chatty" },
			wantErr: true,
		},
		{
			name:    "log level is case insensitive",
			mutate:  func(c *Config) { c.Logging.Level = "DEBUG" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Imgur.ClientID = "saved-id"
	cfg.Output.HTML = true
	require.NoError(t, cfg.Save(path))

	reloaded := DefaultConfig()
	require.NoError(t, reloaded.LoadFromFile(path))

	assert.Equal(t, "saved-id", reloaded.Imgur.ClientID)
	assert.True(t, reloaded.Output.HTML)
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()

	cfg.MergeCommandLineFlags(map[string]interface{}{
		"client-id":        "flag-id",
		"output":           "/flag/output",
		"recursive":        true,
		"html":             true,
		"rate-limit":       15,
		"max-retries":      5,
		"download-timeout": 60,
		"log-level":        "warn",
	})

	assert.Equal(t, "flag-id", cfg.Imgur.ClientID)
	assert.Equal(t, "/flag/output", cfg.Output.BaseDirectory)
	assert.True(t, cfg.Crawl.Recursive)
	assert.True(t, cfg.Output.HTML)
	assert.Equal(t, 15, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 5, cfg.Download.RetryAttempts)
	assert.Equal(t, 60*time.Second, cfg.Download.Timeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestMergeCommandLineFlagsIgnoresZeroValues(t *testing.T) {
	cfg := DefaultConfig()

	cfg.MergeCommandLineFlags(map[string]interface{}{
		"client-id":  "",
		"output":     "",
		"rate-limit": 0,
	})

	assert.Empty(t, cfg.Imgur.ClientID)
	assert.Equal(t, "./downloads", cfg.Output.BaseDirectory)
	assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
}

func TestLoadPrecedence(t *testing.T) {
	// File sets one value, env overrides it, flags override both.
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `output:
  base_directory: /from/file
rate_limit:
  requests_per_minute: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("IMGURGRAB_OUTPUT_DIR", "/from/env")

	cfg, err := Load(path, map[string]interface{}{
		"output": "/from/flag",
	})
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.Output.BaseDirectory)
	assert.Equal(t, 10, cfg.RateLimit.RequestsPerMinute)
}
