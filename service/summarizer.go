// ABOUTME: This file orchestrates summarization calls and their fallback texts
// ABOUTME: Summaries are best-effort; every failure class maps to fixed advisory text
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"rss-firehose/config"
	"rss-firehose/domain"
)

// Fixed texts returned instead of a summary. unavailableMarker is shared
// by every failure text so CacheableSummary can spot them; caching one
// would poison the cache slot for a full TTL.
const (
	unavailableMarker = "AI summary unavailable"

	noContentText     = "No content available to summarize."
	noArticlesText    = "No articles available for summarization."
	notConfiguredText = unavailableMarker + " (API key not configured)."
	networkErrorText  = unavailableMarker + " (could not reach the summarization backend)."
	noChoiceText      = unavailableMarker + " (backend returned no valid response)."
	backendErrorText  = unavailableMarker + " (backend error)."

	// CachedSummaryNote marks per-source summaries that were skipped
	// because the overall summary came from the cache.
	CachedSummaryNote = "Summary cached from a recent run, not recomputed."
)

const (
	feedSystemPrompt = "You are a concise news editor. Summarize the following headlines " +
		"from a single news source in two to three sentences. Keep a neutral, informative tone. " +
		"You may use markdown links and bold for emphasis, sparingly."

	overallSystemPrompt = "You are a concise news editor. Write a short digest (four to six " +
		"sentences) of today's most notable stories from the following headlines, drawn from " +
		"several sources. Keep a neutral, informative tone. You may use markdown links and " +
		"bold for emphasis, sparingly."

	breakingSystemPrompt = "You are a concise news editor. Summarize the following timestamped " +
		"breaking-news items in two to three sentences, newest first. Keep a neutral, urgent tone."
)

type summarizer struct {
	client    CompletionClient
	cfg       config.SummaryConfig
	sanitizer *Sanitizer
	logger    *slog.Logger
}

func NewSummarizer(client CompletionClient, cfg config.SummaryConfig, logger *slog.Logger) Summarizer {
	return &summarizer{
		client:    client,
		cfg:       cfg,
		sanitizer: NewSanitizer(),
		logger:    logger,
	}
}

// SummarizeFeed produces the summary fragment for one source.
func (s *summarizer) SummarizeFeed(ctx context.Context, result *domain.FeedResult) string {
	if result == nil {
		return noContentText
	}

	corpus := BuildCorpus(ExtractItems(result), s.cfg.CorpusLimit)

	return s.summarize(ctx, feedSystemPrompt, corpus)
}

// SummarizeAll produces the overall summary over the union of all
// extracted content, in source-resolution order.
func (s *summarizer) SummarizeAll(ctx context.Context, results []*domain.FeedResult) string {
	if len(results) == 0 {
		return noContentText
	}

	var lines []string
	for _, result := range results {
		lines = append(lines, ExtractItems(result)...)
	}

	corpus := BuildCorpus(lines, s.cfg.CorpusLimit)

	return s.summarize(ctx, overallSystemPrompt, corpus)
}

// SummarizeBreaking produces the breaking-news summary fragment.
func (s *summarizer) SummarizeBreaking(ctx context.Context, entries []domain.BreakingNewsEntry) string {
	if len(entries) == 0 {
		return noContentText
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Timestamp+": "+entry.Content)
	}

	corpus := BuildCorpus(lines, s.cfg.CorpusLimit)

	return s.summarize(ctx, breakingSystemPrompt, corpus)
}

// summarize evaluates the short-circuits in their fixed order, then issues
// one backend call and post-processes the result.
func (s *summarizer) summarize(ctx context.Context, systemPrompt, corpus string) string {
	if strings.TrimSpace(corpus) == "" {
		return noArticlesText
	}

	if s.cfg.APIKey == "" {
		// Summarization is an enhancement, never a hard dependency.
		return notConfiguredText
	}

	raw, err := s.client.Complete(ctx, systemPrompt, corpus)
	if err != nil {
		s.logger.Warn("summarization failed", "error", err)

		switch {
		case errors.Is(err, domain.ErrBackendNotConfigured):
			return notConfiguredText
		case errors.Is(err, domain.ErrBackendUnavailable):
			return networkErrorText
		case errors.Is(err, domain.ErrNoCompletionChoice):
			return noChoiceText
		default:
			return backendErrorText
		}
	}

	return s.sanitizer.SanitizeHTML(FormatSummaryHTML(raw))
}

// CacheableSummary reports whether a produced summary is worth persisting.
// Fixed failure and placeholder texts are not.
func CacheableSummary(summary string) bool {
	if strings.TrimSpace(summary) == "" {
		return false
	}
	if strings.Contains(summary, unavailableMarker) {
		return false
	}
	if summary == noContentText || summary == noArticlesText {
		return false
	}

	return true
}
