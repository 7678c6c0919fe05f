package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL         = "https://gamesdonequick.com"
	DefaultListenAddr      = "localhost:8080"
	DefaultRefreshInterval = 15 * time.Second
)

// Config holds the widget settings read from YAML.
type Config struct {
	BaseURL                string `yaml:"base_url"`
	EventID                string `yaml:"event_id"`
	ListenAddr             string `yaml:"listen_addr"`
	RefreshIntervalSeconds int    `yaml:"refresh_interval_seconds"`

	// IANA zone used for displayed start times, "Local" when empty.
	Timezone string `yaml:"timezone"`

	location *time.Location
}

func Default() *Config {
	cfg := &Config{}
	cfg.normalize()
	cfg.location = time.Local
	return cfg
}

// Load reads filename and fills in defaults. An empty filename means no config
// file and returns the defaults; a named file that does not exist is an error.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %q not found: %w", filename, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.normalize()
	if err := cfg.SetTimezone(cfg.Timezone); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.RefreshIntervalSeconds <= 0 {
		c.RefreshIntervalSeconds = int(DefaultRefreshInterval / time.Second)
	}
}

// SetTimezone resolves name with time.LoadLocation. Empty means local time.
func (c *Config) SetTimezone(name string) error {
	if name == "" || name == "Local" {
		c.Timezone = name
		c.location = time.Local
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	c.Timezone = name
	c.location = loc
	return nil
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}
