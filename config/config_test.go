package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "News Firehose", cfg.Site.Title)
	assert.Equal(t, "View the latest news.", cfg.Site.Description)
	assert.Equal(t, "urls.txt", cfg.Sources.URLsFile)
	assert.Equal(t, []string{DefaultBackupURL}, cfg.Sources.BackupURLs)
	assert.Equal(t, 60*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "rss-firehose", cfg.HTTP.UserAgent)
	assert.Equal(t, 6*time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.Cache.ForceRefresh)
	assert.Equal(t, 4096, cfg.Summary.CorpusLimit)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RSS_TITLE", "My Digest")
	t.Setenv("RSS_URLS", "https://a.example/feed, https://b.example/feed ,")
	t.Setenv("RSS_CACHE_TTL", "24h")
	t.Setenv("RSS_FORCE_REFRESH", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "My Digest", cfg.Site.Title)
	assert.Equal(t, []string{"https://a.example/feed", "https://b.example/feed"}, cfg.Sources.URLs)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.ForceRefresh)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]struct {
		key   string
		value string
	}{
		"bad cache ttl":      {key: "RSS_CACHE_TTL", value: "soon"},
		"bad http timeout":   {key: "HTTP_TIMEOUT", value: "sixty"},
		"bad force refresh":  {key: "RSS_FORCE_REFRESH", value: "maybe"},
		"negative cache ttl": {key: "RSS_CACHE_TTL", value: "-1h"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList("a"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , , b "))
}
