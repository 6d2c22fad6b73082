// ABOUTME: Configuration management for blogpub with YAML config loading.
// ABOUTME: Handles credential backend, platform endpoints, publish options, env overrides, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Credential backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Default platform endpoints.
const (
	DefaultDevToURL         = "https://dev.to"
	DefaultHashnodeEndpoint = "https://gql.hashnode.com"
	DefaultHTTPTimeout      = 30 * time.Second
)

// Config stores blogpub configuration loaded from ~/.config/blogpub/config.yaml.
type Config struct {
	Log         LogConfig         `yaml:"log"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Platforms   PlatformsConfig   `yaml:"platforms"`
	Publish     PublishConfig     `yaml:"publish"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// CredentialsConfig selects where platform tokens are stored.
type CredentialsConfig struct {
	Backend string `yaml:"backend"` // "file" or "sqlite"
	Path    string `yaml:"path"`
}

// PlatformsConfig holds per-platform endpoint overrides.
type PlatformsConfig struct {
	DevTo    DevToConfig    `yaml:"devto"`
	Hashnode HashnodeConfig `yaml:"hashnode"`
}

// DevToConfig holds DEV.to settings.
type DevToConfig struct {
	BaseURL string `yaml:"base_url"`
}

// HashnodeConfig holds Hashnode settings.
type HashnodeConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// PublishConfig controls the publish fan-out.
type PublishConfig struct {
	Concurrent  *bool  `yaml:"concurrent,omitempty"`
	HTTPTimeout string `yaml:"http_timeout,omitempty"`
}

// IsConcurrent reports whether platforms are published in parallel. Defaults to true.
func (p PublishConfig) IsConcurrent() bool {
	return p.Concurrent == nil || *p.Concurrent
}

// Timeout returns the per-request HTTP timeout, falling back to the default on empty or invalid values.
func (p PublishConfig) Timeout() time.Duration {
	if p.HTTPTimeout == "" {
		return DefaultHTTPTimeout
	}
	d, err := time.ParseDuration(p.HTTPTimeout)
	if err != nil || d <= 0 {
		return DefaultHTTPTimeout
	}
	return d
}

// GetLogLevel returns the configured log level, defaulting to info.
func (c *Config) GetLogLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return c.Log.Level
}

// GetCredentialsBackend returns the credential backend, defaulting to file.
func (c *Config) GetCredentialsBackend() string {
	switch strings.ToLower(c.Credentials.Backend) {
	case BackendSQLite:
		return BackendSQLite
	default:
		return BackendFile
	}
}

// GetCredentialsPath returns the credential store location for the selected backend.
func (c *Config) GetCredentialsPath() (string, error) {
	if c.Credentials.Path != "" {
		return ExpandPath(c.Credentials.Path)
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if c.GetCredentialsBackend() == BackendSQLite {
		return filepath.Join(dir, "credentials.db"), nil
	}
	return filepath.Join(dir, "credentials.yaml"), nil
}

// GetDevToURL returns the DEV.to API base URL.
func (c *Config) GetDevToURL() string {
	if c.Platforms.DevTo.BaseURL == "" {
		return DefaultDevToURL
	}
	return strings.TrimRight(c.Platforms.DevTo.BaseURL, "/")
}

// GetHashnodeEndpoint returns the Hashnode GraphQL endpoint.
func (c *Config) GetHashnodeEndpoint() string {
	if c.Platforms.Hashnode.Endpoint == "" {
		return DefaultHashnodeEndpoint
	}
	return c.Platforms.Hashnode.Endpoint
}

// ConfigDir returns the blogpub config directory.
func ConfigDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "blogpub"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk, then applies environment overrides.
// A .env file in the working directory is loaded first if present.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads only the config file, without .env or environment overrides.
// This is the view that Save should write back.
func LoadFile() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if b := strings.ToLower(c.Credentials.Backend); b != "" && b != BackendFile && b != BackendSQLite {
		return fmt.Errorf("invalid credentials backend %q (must be %q or %q)", c.Credentials.Backend, BackendFile, BackendSQLite)
	}
	return nil
}

// applyEnv overrides config values from BLOGPUB_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("BLOGPUB_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("BLOGPUB_CREDENTIALS_BACKEND"); v != "" {
		c.Credentials.Backend = v
	}
	if v := os.Getenv("BLOGPUB_CREDENTIALS_PATH"); v != "" {
		c.Credentials.Path = v
	}
	if v := os.Getenv("BLOGPUB_DEVTO_URL"); v != "" {
		c.Platforms.DevTo.BaseURL = v
	}
	if v := os.Getenv("BLOGPUB_HASHNODE_URL"); v != "" {
		c.Platforms.Hashnode.Endpoint = v
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
