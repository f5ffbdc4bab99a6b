// ABOUTME: This file implements configuration management with environment variable support
// ABOUTME: All settings are read once at startup into an immutable Config
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Site     SiteConfig
	Sources  SourcesConfig
	HTTP     HTTPConfig
	Summary  SummaryConfig
	Cache    CacheConfig
	Breaking BreakingConfig
	Server   ServerConfig
}

type SiteConfig struct {
	Title       string // RSS_TITLE
	Description string // RSS_DESCRIPTION
	AnalyticsUA string // ANALYTICS_UA
	PublicDir   string // RSS_PUBLIC_DIR
}

type SourcesConfig struct {
	URLs       []string // RSS_URLS, comma separated; takes precedence over the file
	URLsFile   string   // RSS_URLS_FILE, one URL per line
	BackupURLs []string // RSS_BACKUP_URLS, comma separated
}

type HTTPConfig struct {
	Timeout   time.Duration // HTTP_TIMEOUT
	UserAgent string        // HTTP_USER_AGENT
}

type SummaryConfig struct {
	APIKey      string  // OPENAI_API_KEY
	Endpoint    string  // SUMMARY_API_ENDPOINT
	Model       string  // SUMMARY_MODEL
	Temperature float64 // decoding parameters are fixed constants, not computed
	MaxTokens   int
	TopP        float64
	CorpusLimit int // character budget for the summarization prompt
}

type CacheConfig struct {
	Path         string        // RSS_CACHE_PATH
	TTL          time.Duration // RSS_CACHE_TTL
	ForceRefresh bool          // RSS_FORCE_REFRESH
}

type BreakingConfig struct {
	PageURL    string // BREAKING_NEWS_URL; empty disables collection
	MaxEntries int    // newest entries forwarded for summarization
}

type ServerConfig struct {
	Port        string // PORT
	RefreshCron string // RSS_REFRESH_CRON
}

// DefaultBackupURL keeps the resolved source list non-empty even when both
// the primary and backup configuration are unusable.
const DefaultBackupURL = "https://hnrss.org/frontpage"

func Load() (*Config, error) {
	cfg := &Config{
		Site: SiteConfig{
			Title:       getEnv("RSS_TITLE", "News Firehose"),
			Description: getEnv("RSS_DESCRIPTION", "View the latest news."),
			AnalyticsUA: getEnv("ANALYTICS_UA", ""),
			PublicDir:   getEnv("RSS_PUBLIC_DIR", "public"),
		},
		Sources: SourcesConfig{
			URLs:       splitList(os.Getenv("RSS_URLS")),
			URLsFile:   getEnv("RSS_URLS_FILE", "urls.txt"),
			BackupURLs: splitList(getEnv("RSS_BACKUP_URLS", DefaultBackupURL)),
		},
		HTTP: HTTPConfig{
			UserAgent: getEnv("HTTP_USER_AGENT", "rss-firehose"),
		},
		Summary: SummaryConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Endpoint:    getEnv("SUMMARY_API_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
			Model:       getEnv("SUMMARY_MODEL", "gpt-4o-mini"),
			Temperature: 0.7,
			MaxTokens:   500,
			TopP:        0.9,
			CorpusLimit: 4096,
		},
		Cache: CacheConfig{
			Path: getEnv("RSS_CACHE_PATH", "cache/summary_cache.json"),
		},
		Breaking: BreakingConfig{
			PageURL:    getEnv("BREAKING_NEWS_URL", ""),
			MaxEntries: 10,
		},
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			RefreshCron: getEnv("RSS_REFRESH_CRON", "*/30 * * * *"),
		},
	}

	var err error
	if cfg.HTTP.Timeout, err = getDuration("HTTP_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.Cache.TTL, err = getDuration("RSS_CACHE_TTL", 6*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Cache.ForceRefresh, err = getBool("RSS_FORCE_REFRESH", false); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", cfg.HTTP.Timeout)
	}
	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("RSS_CACHE_TTL must be positive, got %s", cfg.Cache.TTL)
	}
	if cfg.Site.Title == "" {
		return fmt.Errorf("RSS_TITLE must not be blank")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, v)
	}
	return b, nil
}

// splitList splits a comma-separated value, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
