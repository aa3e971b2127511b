package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/toyswap/toyswap/internal/domain/session"
)

// Config holds client and sandbox configuration.
type Config struct {
	APIHost          string        `yaml:"api_host"`
	UserID           string        `yaml:"user_id,omitempty"`
	RequestTimeout   time.Duration `yaml:"request_timeout,omitempty"`
	LogLevel         string        `yaml:"log_level,omitempty"`
	SandboxAddr      string        `yaml:"sandbox_addr,omitempty"`
	SandboxFailFirst int           `yaml:"sandbox_fail_first,omitempty"`
}

// Load reads configuration from environment, after loading an optional .env
// file from the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		APIHost:          getenv("EXCHANGE_API_HOST", "http://localhost:5001"),
		UserID:           os.Getenv("EXCHANGE_USER_ID"),
		RequestTimeout:   parseDuration(getenv("EXCHANGE_REQUEST_TIMEOUT", "15s"), 15*time.Second),
		LogLevel:         getenv("EXCHANGE_LOG_LEVEL", "warn"),
		SandboxAddr:      getenv("SANDBOX_ADDR", "0.0.0.0:5001"),
		SandboxFailFirst: parseInt(os.Getenv("SANDBOX_FAIL_FIRST"), 0),
	}
	return cfg, cfg.Validate()
}

// LoadFile reads the environment and overlays the YAML file at path. A
// missing file leaves the environment values in place.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// SaveSession records sess in the YAML file at path, keeping other keys.
func SaveSession(path string, sess session.Session) error {
	doc := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("read config %s: %w", path, err)
	}

	doc["api_host"] = sess.APIHost
	doc["user_id"] = sess.UserID
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, out, 0o600)
}

// Validate checks values that cannot fall back to a default.
func (c *Config) Validate() error {
	if c.APIHost == "" {
		return errors.New("api host is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Level returns the configured log level, warn when unset.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.WarnLevel
	}
	return lvl
}

// Session returns the session described by the configuration.
func (c *Config) Session() session.Session {
	return session.New(c.UserID, c.APIHost)
}

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseDuration(val string, def time.Duration) time.Duration {
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}
