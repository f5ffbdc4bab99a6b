package cache

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rss-firehose/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func newTestCache(t *testing.T, ttl time.Duration, force bool) *SummaryCache {
	t.Helper()

	return New(config.CacheConfig{
		Path:         filepath.Join(t.TempDir(), "summary_cache.json"),
		TTL:          ttl,
		ForceRefresh: force,
	}, testLogger())
}

func TestStoreThenLoad(t *testing.T) {
	c := newTestCache(t, 6*time.Hour, false)

	require.NoError(t, c.Store("the summary"))

	got, ok := c.Load()
	require.True(t, ok)
	assert.Equal(t, "the summary", got)
}

func TestLoad_MissingFile(t *testing.T) {
	c := newTestCache(t, 6*time.Hour, false)

	_, ok := c.Load()
	assert.False(t, ok)
}

func TestLoad_CorruptFile(t *testing.T) {
	c := newTestCache(t, 6*time.Hour, false)
	require.NoError(t, os.WriteFile(c.path, []byte("{not json"), 0o644))

	_, ok := c.Load()
	assert.False(t, ok)
}

func TestLoad_ForceRefresh(t *testing.T) {
	c := newTestCache(t, 6*time.Hour, true)
	require.NoError(t, c.Store("fresh enough"))

	_, ok := c.Load()
	assert.False(t, ok)
}

func TestLoad_TTLBoundary(t *testing.T) {
	const ttl = 6 * time.Hour

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		age   time.Duration
		valid bool
	}{
		"well within ttl":        {age: time.Hour, valid: true},
		"just under ttl":         {age: ttl - time.Second, valid: true},
		"exactly at ttl expires": {age: ttl, valid: false},
		"past ttl":               {age: ttl + time.Minute, valid: false},
		"zero age always fresh":  {age: 0, valid: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestCache(t, ttl, false)

			c.now = func() time.Time { return base }
			require.NoError(t, c.Store("aged summary"))

			c.now = func() time.Time { return base.Add(tc.age) }
			_, ok := c.Load()
			assert.Equal(t, tc.valid, ok)
		})
	}
}

func TestLoad_Idempotent(t *testing.T) {
	c := newTestCache(t, 6*time.Hour, false)
	require.NoError(t, c.Store("stable"))

	first, okFirst := c.Load()
	second, okSecond := c.Load()

	assert.Equal(t, okFirst, okSecond)
	assert.Equal(t, first, second)
}

func TestStore_OverwritesSingleSlot(t *testing.T) {
	c := newTestCache(t, 6*time.Hour, false)

	require.NoError(t, c.Store("first"))
	require.NoError(t, c.Store("second"))

	got, ok := c.Load()
	require.True(t, ok)
	assert.Equal(t, "second", got)
}
