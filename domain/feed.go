// ABOUTME: Domain entities for the feed pipeline
// ABOUTME: FeedResult is a live/offline tagged value; offline results stay renderable
package domain

// FeedItem is one titled link from a feed, kept in the feed's native order.
type FeedItem struct {
	Title string
	Link  string
}

// FeedResult is the outcome of fetching a single source.
//
// It is either live or offline. An offline result carries one synthetic
// placeholder item linking back to the source, so extraction and rendering
// never have to branch on a missing feed.
type FeedResult struct {
	SourceURL   string
	Title       string
	Link        string
	Description string
	Items       []FeedItem
	Offline     bool
	Reason      string
}

// NewLiveResult builds a FeedResult for a successfully fetched feed.
func NewLiveResult(sourceURL, title, link, description string, items []FeedItem) *FeedResult {
	return &FeedResult{
		SourceURL:   sourceURL,
		Title:       title,
		Link:        link,
		Description: description,
		Items:       items,
	}
}

// NewOfflineResult builds the placeholder stand-in for an unreachable or
// unparsable source. The single item links back to the source URL.
func NewOfflineResult(sourceURL, reason string) *FeedResult {
	return &FeedResult{
		SourceURL:   sourceURL,
		Title:       sourceURL + " (offline)",
		Link:        sourceURL,
		Description: reason,
		Items: []FeedItem{
			{Title: "Source currently unavailable: " + reason, Link: sourceURL},
		},
		Offline: true,
		Reason:  reason,
	}
}
