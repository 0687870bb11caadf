package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the non-secret service settings. Secrets (API keys, the Redis
// URL) come from the environment, not from this file.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Fetch struct {
		TimeoutMS int `yaml:"timeout_ms"`
	} `yaml:"fetch"`
	Cache struct {
		SearchTTLMinutes int `yaml:"search_ttl_minutes"`
		PageTTLHours     int `yaml:"page_ttl_hours"`
	} `yaml:"cache"`
	Sites map[string]SiteOverride `yaml:"sites"`
}

// SiteOverride adjusts a built-in site profile per deployment. Empty fields
// leave the built-in value alone.
type SiteOverride struct {
	BaseURL         string `yaml:"base_url"`
	Domain          string `yaml:"domain"`
	SearchPath      string `yaml:"search_path"`
	MoviePathPrefix string `yaml:"movie_path_prefix"`
	APIBaseURL      string `yaml:"api_base_url"`
}

// FetchTimeout returns the configured fetch bound as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutMS) * time.Millisecond
}

// SearchTTL returns how long cached search responses stay valid.
func (c *Config) SearchTTL() time.Duration {
	return time.Duration(c.Cache.SearchTTLMinutes) * time.Minute
}

// PageTTL returns how long cached timestamp pages stay valid.
func (c *Config) PageTTL() time.Duration {
	return time.Duration(c.Cache.PageTTLHours) * time.Hour
}

// LoadConfig reads the YAML config at path. A missing file is not an error;
// defaults are returned instead.
func LoadConfig(path string) (*Config, error) {
	config := defaults()

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if config.Server.Port <= 0 {
		config.Server.Port = 3000
	}
	if config.Fetch.TimeoutMS <= 0 {
		config.Fetch.TimeoutMS = 12000
	}
	if config.Cache.SearchTTLMinutes <= 0 {
		config.Cache.SearchTTLMinutes = 15
	}
	if config.Cache.PageTTLHours <= 0 {
		config.Cache.PageTTLHours = 6
	}

	return config, nil
}

func defaults() *Config {
	config := &Config{}
	config.Server.Port = 3000
	config.Fetch.TimeoutMS = 12000
	config.Cache.SearchTTLMinutes = 15
	config.Cache.PageTTLHours = 6
	return config
}
