// ABOUTME: This file defines the service layer interfaces
// ABOUTME: Implementations live beside them; fakes for tests satisfy the same contracts
package service

import (
	"context"

	"rss-firehose/domain"
)

// SourceResolver produces the ordered set of feed URLs to process.
// Resolution never fails; an unusable primary list degrades to the backup.
type SourceResolver interface {
	Resolve() []string
}

// FeedFetcher retrieves and parses one source. Every failure path resolves
// to an offline placeholder value; the returned result is never nil.
type FeedFetcher interface {
	Fetch(ctx context.Context, sourceURL string) *domain.FeedResult
}

// Summarizer turns fetched content into sanitized HTML summary fragments.
// All methods return fixed advisory text instead of failing.
type Summarizer interface {
	SummarizeFeed(ctx context.Context, result *domain.FeedResult) string
	SummarizeAll(ctx context.Context, results []*domain.FeedResult) string
	SummarizeBreaking(ctx context.Context, entries []domain.BreakingNewsEntry) string
}

// BreakingNewsCollector scrapes the breaking-news page. A failed collection
// yields an empty slice, never an error.
type BreakingNewsCollector interface {
	Collect(ctx context.Context) []domain.BreakingNewsEntry
}

// CompletionClient is the summarization backend dependency of the
// summarizer service.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
