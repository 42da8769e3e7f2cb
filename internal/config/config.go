package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gravitrone/mailsearch/cli/internal/api"
)

// EnvBaseURL overrides base_url when set.
const EnvBaseURL = "MAILSEARCH_URL"

// CircuitBreaker tunes the breaker wrapped around search requests.
type CircuitBreaker struct {
	Enabled          bool          `yaml:"enabled"`
	MaxRequests      uint32        `yaml:"max_requests"`
	Interval         time.Duration `yaml:"interval"`
	Timeout          time.Duration `yaml:"timeout"`
	ReadyToTripRatio float64       `yaml:"ready_to_trip_ratio"`
}

// Config holds CLI configuration stored at ~/.mailsearch/config.
type Config struct {
	BaseURL            string         `yaml:"base_url"`
	PageSize           int            `yaml:"page_size"`
	Debounce           time.Duration  `yaml:"debounce"`
	Timeout            time.Duration  `yaml:"timeout"`
	Sort               string         `yaml:"sort"`
	RateLimitPerMinute int            `yaml:"rate_limit_per_minute"`
	LogLevel           string         `yaml:"log_level"`
	VimKeys            bool           `yaml:"vim_keys"`
	CircuitBreaker     CircuitBreaker `yaml:"circuit_breaker"`
	BookmarksDir       string         `yaml:"bookmarks_dir,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		BaseURL:            api.DefaultBaseURL,
		PageSize:           api.DefaultPageSize,
		Debounce:           250 * time.Millisecond,
		Timeout:            30 * time.Second,
		Sort:               "asc",
		RateLimitPerMinute: 60,
		LogLevel:           "info",
		CircuitBreaker: CircuitBreaker{
			Enabled:          true,
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          15 * time.Second,
			ReadyToTripRatio: 0.6,
		},
	}
}

// Dir returns the directory holding config, logs and bookmarks.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".mailsearch")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// Load reads the config file, falling back to defaults when it does not exist.
// Fields absent from the file keep their default values.
func Load() (*Config, error) {
	cfg := Default()
	path := Path()

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg.applyEnv()
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("stat config: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
}

// Validate rejects values the session cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("config missing base_url")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("config page_size must be positive, got %d", c.PageSize)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("config debounce must not be negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config timeout must not be negative")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config rate_limit_per_minute must not be negative")
	}
	switch c.Sort {
	case "", "asc", "desc":
	default:
		return fmt.Errorf("config sort must be asc or desc, got %q", c.Sort)
	}
	if r := c.CircuitBreaker.ReadyToTripRatio; r < 0 || r > 1 {
		return fmt.Errorf("config circuit_breaker.ready_to_trip_ratio must be within [0,1], got %v", r)
	}
	return nil
}

// BookmarksPath returns where the bookmark store lives.
func (c *Config) BookmarksPath() string {
	if c.BookmarksDir != "" {
		return c.BookmarksDir
	}
	return filepath.Join(Dir(), "bookmarks")
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
