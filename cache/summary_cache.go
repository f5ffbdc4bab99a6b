// ABOUTME: This file implements the single-slot TTL cache for the overall summary
// ABOUTME: One JSON file holds the latest summary; expiry is exclusive at the TTL boundary
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"rss-firehose/config"
	"rss-firehose/domain"
)

type entry struct {
	Timestamp time.Time `json:"timestamp"`
	Summary   string    `json:"summary"`
}

// SummaryCache owns the on-disk cache slot. It holds exactly one record,
// the most recent overall summary; there is no per-source keying.
type SummaryCache struct {
	path   string
	ttl    time.Duration
	force  bool
	logger *slog.Logger

	mu  sync.Mutex
	now func() time.Time
}

func New(cfg config.CacheConfig, logger *slog.Logger) *SummaryCache {
	return &SummaryCache{
		path:   cfg.Path,
		ttl:    cfg.TTL,
		force:  cfg.ForceRefresh,
		logger: logger,
		now:    time.Now,
	}
}

// Load returns the cached summary and true when a fresh entry exists.
// Force-refresh, a missing file, unreadable JSON, and an entry at or past
// the TTL all count as a miss; none of them are errors.
func (c *SummaryCache) Load() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.force {
		c.logger.Info("cache bypassed by force refresh")
		return "", false
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("cache file unreadable, treating as miss", "path", c.path, "error", err)
		}
		return "", false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Warn("cache miss", "path", c.path, "error", fmt.Errorf("%w: %v", domain.ErrCacheCorrupt, err))
		return "", false
	}

	age := c.now().UTC().Sub(e.Timestamp.UTC())
	if age >= c.ttl {
		c.logger.Info("cache entry expired", "age", age, "ttl", c.ttl)
		return "", false
	}

	c.logger.Info("cache hit", "age", age, "ttl", c.ttl)

	return e.Summary, true
}

// Store overwrites the slot with the given summary, timestamped now. The
// write goes through a temp file and rename so readers never observe a
// partial record.
func (c *SummaryCache) Store(summary string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(entry{
		Timestamp: c.now().UTC(),
		Summary:   summary,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "summary_cache-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	c.logger.Info("cache updated", "path", c.path)

	return nil
}
