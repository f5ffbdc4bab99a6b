package domain

// BreakingNewsEntry is one timestamped fragment scraped from the breaking
// news page. Entries keep document order; the collector caps how many are
// forwarded for summarization.
type BreakingNewsEntry struct {
	Timestamp string
	Content   string
	Link      string
}
