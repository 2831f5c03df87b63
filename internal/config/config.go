package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/suzannah24/title-aggregator/pkg/news"
	"gopkg.in/yaml.v3"
)

const cutoffLayout = "2006-01-02"

// Keys accepted in the YAML file (lower case) and the environment (upper case).
var keys = []string{
	"site_url",
	"feed_url",
	"cutoff",
	"user_agent",
	"request_timeout",
	"run_timeout",
	"min_delay",
	"max_delay",
	"port",
	"frontend_url",
}

type Config struct {
	SiteURL        string
	FeedURL        string
	Cutoff         time.Time
	UserAgent      string
	RequestTimeout time.Duration
	RunTimeout     time.Duration
	MinDelay       time.Duration
	MaxDelay       time.Duration
	Port           string
	AllowedOrigins []string
}

func Default() Config {
	return Config{
		SiteURL:        "https://www.theverge.com",
		FeedURL:        "https://www.theverge.com/rss/index.xml",
		Cutoff:         time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		UserAgent:      news.DefaultUserAgent,
		RequestTimeout: 30 * time.Second,
		RunTimeout:     10 * time.Minute,
		MinDelay:       time.Second,
		MaxDelay:       2 * time.Second,
		Port:           "8080",
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "title-aggregator", "config.yaml")
}

// Load builds the configuration from the defaults, then the YAML file at
// path, then the environment. An empty path means DefaultConfigPath, which
// may be missing.
func Load(path string) (Config, error) {
	cfg := Default()

	optional := path == ""
	if optional {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && optional:
	case err != nil:
		return Config{}, fmt.Errorf("reading config: %w", err)
	default:
		values := map[string]string{}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
		for key, value := range values {
			if err := cfg.set(strings.ToLower(key), value); err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}

	for _, key := range keys {
		if value := os.Getenv(strings.ToUpper(key)); value != "" {
			if err := cfg.set(key, value); err != nil {
				return Config{}, fmt.Errorf("environment: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) set(key, value string) error {
	value = strings.TrimSpace(value)

	var err error
	switch key {
	case "site_url":
		c.SiteURL = strings.TrimRight(value, "/")
	case "feed_url":
		c.FeedURL = value
	case "cutoff":
		c.Cutoff, err = time.ParseInLocation(cutoffLayout, value, time.UTC)
	case "user_agent":
		c.UserAgent = value
	case "request_timeout":
		c.RequestTimeout, err = time.ParseDuration(value)
	case "run_timeout":
		c.RunTimeout, err = time.ParseDuration(value)
	case "min_delay":
		c.MinDelay, err = time.ParseDuration(value)
	case "max_delay":
		c.MaxDelay, err = time.ParseDuration(value)
	case "port":
		c.Port = value
	case "frontend_url":
		c.AllowedOrigins = append(c.AllowedOrigins, value)
	default:
		return fmt.Errorf("unknown key %q", key)
	}

	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return nil
}

func (c Config) Validate() error {
	for name, raw := range map[string]string{"site_url": c.SiteURL, "feed_url": c.FeedURL} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid url: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s: url scheme must be http or https, got %q", name, u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("%s: url host is required", name)
		}
	}

	if c.Cutoff.IsZero() {
		return errors.New("cutoff is required")
	}
	if c.Cutoff.After(time.Now()) {
		return fmt.Errorf("cutoff %s is in the future", c.Cutoff.Format(cutoffLayout))
	}
	if c.RequestTimeout < 0 || c.RunTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	if c.MinDelay < 0 || c.MaxDelay < c.MinDelay {
		return fmt.Errorf("delay range [%s, %s] is invalid", c.MinDelay, c.MaxDelay)
	}
	if c.Port == "" {
		return errors.New("port is required")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) ArchiveConfig() news.ArchiveConfig {
	return news.ArchiveConfig{
		BaseURL:   c.SiteURL,
		Cutoff:    c.Cutoff,
		UserAgent: c.UserAgent,
		Timeout:   c.RequestTimeout,
		MinDelay:  c.MinDelay,
		MaxDelay:  c.MaxDelay,
	}
}
