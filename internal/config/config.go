// Package config defines service configuration options.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// RenderMode defines how analyzed pages are fetched.
type RenderMode string

const (
	RenderHTML RenderMode = "html" // plain HTTP GET (no JavaScript)
	RenderJS   RenderMode = "js"   // JavaScript rendering (Chromium)
)

// Config holds all configuration for the service.
type Config struct {
	// === Server ===

	// Address the HTTP API listens on
	ListenAddr string `json:"listen_addr"`

	// Log level: debug, info, warn, error
	LogLevel string `json:"log_level"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// === Storage ===

	// Path to the SQLite database file
	DatabasePath string `json:"database_path"`

	// === Analyzer fetch ===

	// User-Agent sent with analysis fetches
	UserAgent string `json:"user_agent"`

	// Request timeout for analysis fetches
	FetchTimeout time.Duration `json:"fetch_timeout"`

	// Maximum response size in bytes
	MaxResponseSize int64 `json:"max_response_size"`

	// Render mode for analysis fetches: html or js
	RenderMode RenderMode `json:"render_mode"`

	// Render timeout (for JS rendering)
	RenderTimeout time.Duration `json:"render_timeout"`

	// Chromium executable path (empty = bundled)
	ChromiumPath string `json:"chromium_path"`

	// === Sitemap crawl ===

	// Maximum pages a sitemap crawl may visit when no limit is given
	CrawlMaxPages int `json:"crawl_max_pages"`

	// Per-crawl request timeout
	CrawlTimeout time.Duration `json:"crawl_timeout"`

	// Requests per second during a sitemap crawl
	CrawlRequestsPerSecond float64 `json:"crawl_requests_per_second"`

	// User-Agent sent by the sitemap crawler
	CrawlUserAgent string `json:"crawl_user_agent"`

	// === Reports ===

	// Directory report exports are written to
	ExportDir string `json:"export_dir"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      ":8080",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,

		DatabasePath: "seoforge.db",

		UserAgent:       "SEOForge Analyzer/1.0",
		FetchTimeout:    30 * time.Second,
		MaxResponseSize: 10 * 1024 * 1024, // 10MB
		RenderMode:      RenderHTML,
		RenderTimeout:   30 * time.Second,

		CrawlMaxPages:          100,
		CrawlTimeout:           10 * time.Second,
		CrawlRequestsPerSecond: 5,
		CrawlUserAgent:         "SEOForge Sitemap Crawler/1.0",

		ExportDir: "exports",
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}
	if c.RenderMode != RenderHTML && c.RenderMode != RenderJS {
		return fmt.Errorf("render_mode must be %q or %q", RenderHTML, RenderJS)
	}
	if c.CrawlMaxPages < 1 {
		return fmt.Errorf("crawl_max_pages must be at least 1")
	}
	return nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(filePath string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(filePath, data, 0644)
}

// Load reads a configuration file, applying defaults for absent fields.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
