package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/stoa-client/stoa/internal/errors"
)

// Defaults applied when a field is absent from the config file.
const (
	DefaultPageSize     = 20
	DefaultPollInterval = 10 // seconds, mailbox refresh cycle
)

// Config holds the application configuration
type Config struct {
	ServerURL            string `json:"server_url"`                      // Base URL of the groupware server
	Username             string `json:"username,omitempty"`              // Last username used to log in
	PageSize             int    `json:"page_size,omitempty"`             // Messages per forum window
	PollIntervalSecs     int    `json:"poll_interval_secs,omitempty"`    // Mailbox refresh interval
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification on new mail

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stoa"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. Used by Load and by tests.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		PageSize:         DefaultPageSize,
		PollIntervalSecs: DefaultPollInterval,
		filePath:         path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills in zero-valued fields after unmarshaling. Not
// thread-safe; only called during single-threaded initialization.
func (c *Config) applyDefaults() {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.PollIntervalSecs <= 0 {
		c.PollIntervalSecs = DefaultPollInterval
	}
}

// Validate checks the loaded config for values we cannot run with.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ServerURL != "" {
		u, err := url.Parse(c.ServerURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.ConfigInvalid("server_url must be an absolute http(s) URL")
		}
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		path, err := configPath()
		if err != nil {
			return err
		}
		c.filePath = path
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// GetServerURL returns the configured server base URL
func (c *Config) GetServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ServerURL
}

// SetServerURL overrides the server base URL (e.g. from the --server flag)
func (c *Config) SetServerURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ServerURL = u
}

// GetUsername returns the remembered username
func (c *Config) GetUsername() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Username
}

// SetUsername remembers the username for the next login form
func (c *Config) SetUsername(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Username = name
}

// GetPageSize returns the forum window page size
func (c *Config) GetPageSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.PageSize
}

// GetPollIntervalSecs returns the mailbox poll interval in seconds
func (c *Config) GetPollIntervalSecs() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.PollIntervalSecs
}

// GetNotificationsEnabled reports whether desktop notifications are on
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled toggles desktop notifications
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}
