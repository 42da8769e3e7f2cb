package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(EnvBaseURL, "")
	return dir
}

func writeRaw(t *testing.T, home, content string) {
	t.Helper()
	cfgDir := filepath.Join(home, ".mailsearch")
	require.NoError(t, os.MkdirAll(cfgDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config"), []byte(content), 0600))
}

func TestSaveConfigCreatesDirectories(t *testing.T) {
	useHome(t)

	err := Default().Save()
	require.NoError(t, err)

	// Verify file exists and has correct permissions
	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadConfigMissingFallsBackToDefaults(t *testing.T) {
	useHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundtripWithAllFields(t *testing.T) {
	useHome(t)

	original := Config{
		BaseURL:            "http://search.internal:4567",
		PageSize:           50,
		Debounce:           400 * time.Millisecond,
		Timeout:            10 * time.Second,
		Sort:               "desc",
		RateLimitPerMinute: 120,
		LogLevel:           "debug",
		VimKeys:            true,
		CircuitBreaker: CircuitBreaker{
			Enabled:          true,
			MaxRequests:      2,
			Interval:         30 * time.Second,
			Timeout:          5 * time.Second,
			ReadyToTripRatio: 0.5,
		},
		BookmarksDir: "/var/lib/mailsearch",
	}

	require.NoError(t, original.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &original, loaded)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	home := useHome(t)
	writeRaw(t, home, "page_size: 10\ndebounce: 100ms\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 100*time.Millisecond, cfg.Debounce)
	assert.Equal(t, "http://localhost:4567", cfg.BaseURL)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
}

func TestLoadConfigEmptyFileUsesDefaults(t *testing.T) {
	home := useHome(t)
	writeRaw(t, home, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.PageSize)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	home := useHome(t)
	writeRaw(t, home, "invalid: yaml: content:")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	home := useHome(t)
	writeRaw(t, home, "page_size: 0\n")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "page_size")
}

func TestConfigPermissionsStrictlyEnforced(t *testing.T) {
	useHome(t)
	require.NoError(t, Default().Save())

	// Try to make it world-readable
	require.NoError(t, os.Chmod(Path(), 0644))

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestEnvOverridesBaseURL(t *testing.T) {
	home := useHome(t)
	writeRaw(t, home, "base_url: http://from-file\n")
	t.Setenv(EnvBaseURL, "http://from-env:9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9000", cfg.BaseURL)
}

func TestEnvOverridesBaseURLWithoutFile(t *testing.T) {
	useHome(t)
	t.Setenv(EnvBaseURL, "http://from-env:9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9000", cfg.BaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty url", func(c *Config) { c.BaseURL = " " }, "base_url"},
		{"negative debounce", func(c *Config) { c.Debounce = -time.Second }, "debounce"},
		{"negative timeout", func(c *Config) { c.Timeout = -1 }, "timeout"},
		{"negative rate", func(c *Config) { c.RateLimitPerMinute = -1 }, "rate_limit"},
		{"bad sort", func(c *Config) { c.Sort = "sideways" }, "sort"},
		{"no sort", func(c *Config) { c.Sort = "" }, ""},
		{"bad ratio", func(c *Config) { c.CircuitBreaker.ReadyToTripRatio = 1.5 }, "ready_to_trip_ratio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBookmarksPath(t *testing.T) {
	home := useHome(t)
	cfg := Default()
	assert.Equal(t, filepath.Join(home, ".mailsearch", "bookmarks"), cfg.BookmarksPath())

	cfg.BookmarksDir = "/tmp/marks"
	assert.Equal(t, "/tmp/marks", cfg.BookmarksPath())
}

func TestPathReturnsCorrectLocation(t *testing.T) {
	path := Path()
	assert.Contains(t, path, ".mailsearch")
	assert.Contains(t, path, "config")
}
