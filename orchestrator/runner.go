// ABOUTME: This file sequences the full pipeline run
// ABOUTME: resolve -> fetch -> breaking news -> cache check -> summarize -> render
package orchestrator

import (
	"context"
	"log/slog"

	"rss-firehose/cache"
	"rss-firehose/config"
	"rss-firehose/domain"
	"rss-firehose/service"
)

// Renderer is the presentation collaborator. It receives the finished page
// model; how it turns that into files is not the pipeline's concern.
type Renderer interface {
	Render(page *domain.Page) error
}

const (
	fetchConcurrency     = 4
	summarizeConcurrency = 2
)

// Runner owns the lifetime of all in-memory pipeline entities for one run.
type Runner struct {
	cfg        *config.Config
	resolver   service.SourceResolver
	fetcher    service.FeedFetcher
	breaking   service.BreakingNewsCollector
	summarizer service.Summarizer
	cache      *cache.SummaryCache
	renderer   Renderer
	logger     *slog.Logger
}

func NewRunner(
	cfg *config.Config,
	resolver service.SourceResolver,
	fetcher service.FeedFetcher,
	breaking service.BreakingNewsCollector,
	summarizer service.Summarizer,
	summaryCache *cache.SummaryCache,
	renderer Renderer,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		cfg:        cfg,
		resolver:   resolver,
		fetcher:    fetcher,
		breaking:   breaking,
		summarizer: summarizer,
		cache:      summaryCache,
		renderer:   renderer,
		logger:     logger,
	}
}

// Run executes one full refresh cycle and returns the page model it handed
// to the renderer. A run always completes: every stage degrades to a
// placeholder or fixed text instead of aborting, and even a renderer
// failure only logs a warning.
func (r *Runner) Run(ctx context.Context) *domain.Page {
	sources := r.resolver.Resolve()
	r.logger.Info("pipeline run started", "sources", len(sources))

	fetchStage := Stage[string, *domain.FeedResult]{
		Name:        "fetch",
		Concurrency: fetchConcurrency,
		Process:     r.fetcher.Fetch,
	}
	results := Values(RunStage(ctx, fetchStage, sources))

	breakingEntries := r.breaking.Collect(ctx)

	overall, perSource, breakingSummary := r.summaries(ctx, results, breakingEntries)

	page := &domain.Page{
		Title:           r.cfg.Site.Title,
		Description:     r.cfg.Site.Description,
		AnalyticsUA:     r.cfg.Site.AnalyticsUA,
		Results:         results,
		SourceSummaries: perSource,
		OverallSummary:  overall,
		BreakingNews:    breakingEntries,
		BreakingSummary: breakingSummary,
	}

	// The final write is the one place a failure is visible: log and
	// continue rather than crash.
	if err := r.renderer.Render(page); err != nil {
		r.logger.Warn("failed to render output", "error", err)
	}

	r.logger.Info("pipeline run finished",
		"sources", len(sources),
		"breaking_entries", len(breakingEntries))

	return page
}

// summaries produces the overall, per-source, and breaking summaries,
// reusing the cached overall summary when it is still fresh.
func (r *Runner) summaries(
	ctx context.Context,
	results []*domain.FeedResult,
	breakingEntries []domain.BreakingNewsEntry,
) (overall string, perSource map[string]string, breakingSummary string) {
	perSource = make(map[string]string, len(results))

	if cached, ok := r.cache.Load(); ok {
		for _, result := range results {
			perSource[result.SourceURL] = service.CachedSummaryNote
		}

		return cached, perSource, service.CachedSummaryNote
	}

	summarizeStage := Stage[*domain.FeedResult, string]{
		Name:        "summarize",
		Concurrency: summarizeConcurrency,
		Process:     r.summarizer.SummarizeFeed,
	}
	for i, res := range RunStage(ctx, summarizeStage, results) {
		perSource[results[i].SourceURL] = res.Value
	}

	// The overall summary waits for all extractions by construction:
	// RunStage has already joined every fetch.
	overall = r.summarizer.SummarizeAll(ctx, results)

	capped := breakingEntries
	if len(capped) > r.cfg.Breaking.MaxEntries {
		capped = capped[:r.cfg.Breaking.MaxEntries]
	}
	breakingSummary = r.summarizer.SummarizeBreaking(ctx, capped)

	if service.CacheableSummary(overall) {
		if err := r.cache.Store(overall); err != nil {
			r.logger.Warn("failed to persist summary cache", "error", err)
		}
	} else {
		r.logger.Info("overall summary not cacheable, skipping store")
	}

	return overall, perSource, breakingSummary
}
