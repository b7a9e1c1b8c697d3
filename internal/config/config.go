// Package config resolves client settings from defaults, an optional YAML
// file, a .env file and TADA_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".tada"
	configFileName = "config.yaml"

	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	DefaultTimeout = 30 * time.Second
)

// Environment variables.
const (
	EnvConfig    = "TADA_CONFIG"
	EnvBaseURL   = "TADA_BASE_URL"
	EnvTimeout   = "TADA_TIMEOUT"
	EnvLogLevel  = "TADA_LOG_LEVEL"
	EnvLogFormat = "TADA_LOG_FORMAT"
	EnvTheme     = "TADA_THEME"
)

// Config holds everything the composition root needs.
type Config struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	LogLevel  LogLevel      `yaml:"log_level"`
	LogFormat LogFormat     `yaml:"log_format"`
	Theme     string        `yaml:"theme"`

	// Source is the file the settings were read from, if any.
	Source string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		LogLevel:  LogLevelWarn,
		LogFormat: LogFormatText,
		Theme:     "classic",
	}
}

// Dir returns ~/.tada.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// Load resolves the configuration. An explicit path (argument or
// TADA_CONFIG) must exist; the default ~/.tada/config.yaml may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	explicit := true
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfig))
	}
	if path == "" {
		explicit = false
		dir, err := Dir()
		if err == nil {
			path = filepath.Join(dir, configFileName)
		}
	}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = LogLevel(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = LogFormat(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		c.Theme = v
	}
	return nil
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
	c.LogLevel = NormalizeLogLevel(string(c.LogLevel))
	c.LogFormat = NormalizeLogFormat(string(c.LogFormat))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
}

// Validate rejects settings the client cannot work with.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base url must be absolute, got %q", c.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url scheme must be http or https, got %q", u.Scheme)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
