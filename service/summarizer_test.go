package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"rss-firehose/config"
	"rss-firehose/domain"
)

// fakeCompletionClient records calls and plays back a canned response.
type fakeCompletionClient struct {
	calls    int
	lastUser string
	response string
	err      error
}

func (f *fakeCompletionClient) Complete(_ context.Context, _, userPrompt string) (string, error) {
	f.calls++
	f.lastUser = userPrompt

	return f.response, f.err
}

func summaryTestConfig() config.SummaryConfig {
	return config.SummaryConfig{
		APIKey:      "test-key",
		CorpusLimit: 4096,
	}
}

func liveFeedResult() *domain.FeedResult {
	return domain.NewLiveResult("https://src.example/feed", "Feed", "https://src.example", "", []domain.FeedItem{
		{Title: "Big story", Link: "https://src.example/1"},
	})
}

func TestSummarizeFeed_NilResult(t *testing.T) {
	client := &fakeCompletionClient{}
	s := NewSummarizer(client, summaryTestConfig(), testLogger())

	got := s.SummarizeFeed(context.Background(), nil)

	assert.Equal(t, noContentText, got)
	assert.Zero(t, client.calls, "short-circuit must not issue a backend call")
}

func TestSummarizeFeed_NoArticles(t *testing.T) {
	client := &fakeCompletionClient{}
	s := NewSummarizer(client, summaryTestConfig(), testLogger())

	empty := &domain.FeedResult{SourceURL: "https://src.example/feed"}
	got := s.SummarizeFeed(context.Background(), empty)

	assert.Equal(t, noArticlesText, got)
	assert.Zero(t, client.calls, "short-circuit must not issue a backend call")
}

func TestSummarizeFeed_MissingCredential(t *testing.T) {
	client := &fakeCompletionClient{}
	cfg := summaryTestConfig()
	cfg.APIKey = ""
	s := NewSummarizer(client, cfg, testLogger())

	got := s.SummarizeFeed(context.Background(), liveFeedResult())

	assert.Equal(t, notConfiguredText, got)
	assert.Zero(t, client.calls)
}

func TestSummarizeFeed_Success(t *testing.T) {
	client := &fakeCompletionClient{response: "A **big** story broke.\nSee [more](https://src.example/1)."}
	s := NewSummarizer(client, summaryTestConfig(), testLogger())

	got := s.SummarizeFeed(context.Background(), liveFeedResult())

	assert.Equal(t, 1, client.calls)
	assert.Contains(t, client.lastUser, "Big story (https://src.example/1)")
	assert.Contains(t, got, "<b>big</b>")
	assert.Contains(t, got, `href="https://src.example/1"`)
	assert.NotContains(t, got, "**")
}

func TestSummarizeFeed_FailureClasses(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"network failure":    {err: domain.ErrBackendUnavailable, want: networkErrorText},
		"no usable choice":   {err: domain.ErrNoCompletionChoice, want: noChoiceText},
		"generic failure":    {err: assert.AnError, want: backendErrorText},
		"missing credential": {err: domain.ErrBackendNotConfigured, want: notConfiguredText},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			client := &fakeCompletionClient{err: tc.err}
			s := NewSummarizer(client, summaryTestConfig(), testLogger())

			got := s.SummarizeFeed(context.Background(), liveFeedResult())
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSummarizeAll_UnionOfSources(t *testing.T) {
	client := &fakeCompletionClient{response: "digest"}
	s := NewSummarizer(client, summaryTestConfig(), testLogger())

	results := []*domain.FeedResult{
		liveFeedResult(),
		domain.NewOfflineResult("https://down.example/feed", "unreachable"),
	}

	got := s.SummarizeAll(context.Background(), results)

	assert.Equal(t, "digest", got)
	assert.Contains(t, client.lastUser, "Big story")
	assert.Contains(t, client.lastUser, "https://down.example/feed")
}

func TestSummarizeAll_NoResults(t *testing.T) {
	client := &fakeCompletionClient{}
	s := NewSummarizer(client, summaryTestConfig(), testLogger())

	assert.Equal(t, noContentText, s.SummarizeAll(context.Background(), nil))
	assert.Zero(t, client.calls)
}

func TestSummarizeBreaking(t *testing.T) {
	client := &fakeCompletionClient{response: "breaking digest"}
	s := NewSummarizer(client, summaryTestConfig(), testLogger())

	entries := []domain.BreakingNewsEntry{
		{Timestamp: "9:41 AM", Content: "Something happened", Link: "https://brk.example"},
	}

	got := s.SummarizeBreaking(context.Background(), entries)

	assert.Equal(t, "breaking digest", got)
	assert.Contains(t, client.lastUser, "9:41 AM: Something happened")
}

func TestCacheableSummary(t *testing.T) {
	tests := map[string]struct {
		summary string
		want    bool
	}{
		"real summary":        {summary: "<b>Today</b> the news happened.", want: true},
		"empty":               {summary: "  ", want: false},
		"no content text":     {summary: noContentText, want: false},
		"no articles text":    {summary: noArticlesText, want: false},
		"not configured text": {summary: notConfiguredText, want: false},
		"network error text":  {summary: networkErrorText, want: false},
		"backend error text":  {summary: backendErrorText, want: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, CacheableSummary(tc.summary))
		})
	}
}
