// ABOUTME: This file scrapes timestamped entries from the breaking-news page
// ABOUTME: Scanning uses bounded-length patterns; any failure yields an empty slice
package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"rss-firehose/config"
	"rss-firehose/domain"
	"rss-firehose/utils/htmltext"
)

// The page is unstructured HTML, so entries are located by shape: an
// emphasized timestamp span immediately followed by a paragraph. The
// timestamp cap lives in the pattern; the paragraph body is bounded by a
// post-match length check, since the body alternation cannot carry its own
// counted repeat without blowing the compiled program size.
var (
	breakingEntryPattern = regexp.MustCompile(
		`(?is)<em[^>]*>([^<]{2,100})</em>\s*` +
			`<p[^>]*>((?:[^<]|<a[^>]*>|</a>|<br ?/?>)+?)</p>`)

	hrefPattern = regexp.MustCompile(`href="(https?://[^"]{1,300})"`)
)

const (
	// Entries shorter than this after tag stripping carry no usable content.
	minEntryContentLen = 10

	// Raw paragraph bodies longer than this are not breaking-news blurbs.
	maxEntryBodyLen = 600
)

const maxPageBytes = 2 << 20

type breakingNewsCollector struct {
	cfg        config.BreakingConfig
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

func NewBreakingNewsCollector(cfg config.BreakingConfig, httpCfg config.HTTPConfig, logger *slog.Logger) BreakingNewsCollector {
	return &breakingNewsCollector{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: httpCfg.Timeout},
		userAgent:  httpCfg.UserAgent,
		logger:     logger,
	}
}

// Collect fetches the configured page and extracts timestamped entries in
// document order. Breaking news is strictly additive: every failure path
// returns an empty slice.
func (c *breakingNewsCollector) Collect(ctx context.Context) []domain.BreakingNewsEntry {
	if c.cfg.PageURL == "" {
		c.logger.Debug("breaking news collection disabled, no page configured")
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.PageURL, nil)
	if err != nil {
		c.logger.Warn("invalid breaking news URL", "url", c.cfg.PageURL, "error", err)
		return nil
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("breaking news fetch failed", "url", c.cfg.PageURL, "error", err)
		return nil
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("breaking news page returned non-200 status", "status", resp.Status)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		c.logger.Warn("breaking news body read failed", "error", err)
		return nil
	}

	entries := c.scan(string(body))
	c.logger.Info("breaking news collected", "entries", len(entries))

	return entries
}

func (c *breakingNewsCollector) scan(page string) []domain.BreakingNewsEntry {
	var entries []domain.BreakingNewsEntry

	for _, match := range breakingEntryPattern.FindAllStringSubmatch(page, -1) {
		if len(match[2]) > maxEntryBodyLen {
			continue
		}

		timestamp := strings.TrimSpace(htmltext.StripTags(match[1]))
		if !strings.Contains(timestamp, "AM") && !strings.Contains(timestamp, "PM") {
			continue
		}

		content := strings.Join(strings.Fields(htmltext.StripTags(match[2])), " ")
		if len(content) < minEntryContentLen {
			continue
		}

		link := c.cfg.PageURL
		if href := hrefPattern.FindStringSubmatch(match[2]); href != nil {
			link = href[1]
		}

		entries = append(entries, domain.BreakingNewsEntry{
			Timestamp: timestamp,
			Content:   content,
			Link:      link,
		})
	}

	return entries
}
