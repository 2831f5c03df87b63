package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(strings.ToUpper(key), "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, ""))

	assert.Equal(t, nil, err)
	assert.Equal(t, "https://www.theverge.com", cfg.SiteURL)
	assert.Equal(t, "https://www.theverge.com/rss/index.xml", cfg.FeedURL)
	assert.Equal(t, "2022-01-01", cfg.Cutoff.Format(cutoffLayout))
	assert.Equal(t, time.Second, cfg.MinDelay)
	assert.Equal(t, 2*time.Second, cfg.MaxDelay)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
site_url: https://example.com/
feed_url: https://example.com/feed.xml
cutoff: "2023-06-01"
min_delay: 0s
max_delay: 0s
port: 9090
`)

	cfg, err := Load(path)

	assert.Equal(t, nil, err)
	assert.Equal(t, "https://example.com", cfg.SiteURL)
	assert.Equal(t, "https://example.com/feed.xml", cfg.FeedURL)
	assert.Equal(t, "2023-06-01", cfg.Cutoff.Format(cutoffLayout))
	assert.Equal(t, time.Duration(0), cfg.MaxDelay)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "site_url: https://example.com\nport: 9090\n")
	t.Setenv("SITE_URL", "https://override.example.com")
	t.Setenv("RUN_TIMEOUT", "90s")
	t.Setenv("FRONTEND_URL", "https://app.example.com")

	cfg, err := Load(path)

	assert.Equal(t, nil, err)
	assert.Equal(t, "https://override.example.com", cfg.SiteURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.RunTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.AllowedOrigins)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "colour: blue\n"},
		{"bad cutoff", "cutoff: yesterday\n"},
		{"bad duration", "min_delay: soon\n"},
		{"bad scheme", "feed_url: ftp://example.com/feed\n"},
		{"no host", "site_url: https://\n"},
		{"inverted delays", "min_delay: 3s\nmax_delay: 1s\n"},
		{"future cutoff", "cutoff: \"2999-01-01\"\n"},
		{"not yaml", "site_url: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.content))
			assert.NotEqual(t, nil, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotEqual(t, nil, err)
}

func TestLoadInvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("REQUEST_TIMEOUT", "forever")

	_, err := Load(writeConfig(t, ""))
	assert.NotEqual(t, nil, err)
}

func TestArchiveConfig(t *testing.T) {
	cfg := Default()
	ac := cfg.ArchiveConfig()

	assert.Equal(t, cfg.SiteURL, ac.BaseURL)
	assert.Equal(t, true, ac.Cutoff.Equal(cfg.Cutoff))
	assert.Equal(t, cfg.UserAgent, ac.UserAgent)
	assert.Equal(t, cfg.MinDelay, ac.MinDelay)
	assert.Equal(t, cfg.MaxDelay, ac.MaxDelay)
}
