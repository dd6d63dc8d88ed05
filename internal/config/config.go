// Package config loads the sitefix configuration file and applies defaults.
//
// All data-file locations are explicit, resolved paths carried in the config
// struct; nothing is derived from the binary's install location.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Data DataConfig `yaml:"data"`
	Feed FeedConfig `yaml:"feed"`
	Site SiteConfig `yaml:"site"`
}

// DataConfig holds resolved paths to the pipeline's data inputs
type DataConfig struct {
	RecentLog  string `yaml:"recent_log"`  // CSV append log of published URLs
	Enrichment string `yaml:"enrichment"`  // JSON index with per-URL title/summary
	TokensDir  string `yaml:"tokens_dir"`  // Directory holding verification/key files to copy
}

// FeedConfig controls RSS feed rendering
type FeedConfig struct {
	Limit       int    `yaml:"limit"` // Max recent items in the feed
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	PageTitles  *bool  `yaml:"page_titles,omitempty"` // Fall back to on-site page <title> when enrichment misses
}

// SiteConfig describes layout conventions of the built output tree
type SiteConfig struct {
	DailyDir string `yaml:"daily_dir"` // Top-level directory of daily pages
}

// PageTitlesEnabled reports whether the page-title feed fallback is active (default true).
func (f FeedConfig) PageTitlesEnabled() bool {
	return f.PageTitles == nil || *f.PageTitles
}

// Load loads configuration from the specified file. A missing file is not an
// error; defaults apply so the tool works with zero configuration.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; existing process env wins.
	_ = godotenv.Load()

	config := &Config{}

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expandedData), config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyDefaults(config)

	if err := validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Data.RecentLog == "" {
		config.Data.RecentLog = "data/daily.csv"
	}
	if config.Data.Enrichment == "" {
		config.Data.Enrichment = "data/enriched.json"
	}
	if config.Data.TokensDir == "" {
		config.Data.TokensDir = "docs"
	}
	if config.Feed.Limit == 0 {
		config.Feed.Limit = 50
	}
	if config.Feed.Title == "" {
		config.Feed.Title = "Discovery Hub"
	}
	if config.Feed.Description == "" {
		config.Feed.Description = "Recently added links"
	}
	if config.Site.DailyDir == "" {
		config.Site.DailyDir = "d"
	}
}

func validate(config *Config) error {
	if config.Feed.Limit < 0 {
		return fmt.Errorf("feed.limit must not be negative: %d", config.Feed.Limit)
	}
	return nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	return os.WriteFile(configPath, []byte(exampleConfig), 0o644)
}

const exampleConfig = `# sitefix configuration
# All paths are resolved relative to the working directory.

data:
  # Append-only CSV log of published URLs (header row, URL in first column).
  recent_log: data/daily.csv
  # JSON index: {"items": {"<url>": {"title": "...", "summary": "..."}}}
  enrichment: data/enriched.json
  # Directory holding externally provisioned verification/key files.
  tokens_dir: docs

feed:
  limit: 50
  title: Discovery Hub
  description: Recently added links
  # Use on-site page <title> as fallback metadata for feed items.
  page_titles: true

site:
  # Top-level directory of daily pages (gets a splat rewrite rule).
  daily_dir: d
`
