package domain

// Page is the full render model handed to the rendering collaborator.
// Every summary field is a pre-sanitized HTML fragment, safe to
// interpolate directly into templates.
type Page struct {
	Title           string
	Description     string
	AnalyticsUA     string
	Results         []*FeedResult
	SourceSummaries map[string]string // keyed by source URL
	OverallSummary  string
	BreakingNews    []BreakingNewsEntry
	BreakingSummary string
}
