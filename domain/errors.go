// ABOUTME: Domain-level sentinel errors for the feed pipeline
// ABOUTME: These errors are used with errors.Is() for error type checking
package domain

import "errors"

// Fetch and parse errors. Both classes resolve to an offline placeholder
// after the retry budget is spent; they are never surfaced to the caller.
var (
	// ErrFeedEmpty indicates the document parsed but contained no items
	ErrFeedEmpty = errors.New("feed contains no items")

	// ErrFeedUnparsable indicates the response body could not be parsed as a feed
	ErrFeedUnparsable = errors.New("feed could not be parsed")
)

// Summarization backend errors
var (
	// ErrBackendNotConfigured indicates no API credential is present
	ErrBackendNotConfigured = errors.New("summarization backend not configured")

	// ErrBackendUnavailable indicates the backend could not be reached
	ErrBackendUnavailable = errors.New("summarization backend unavailable")

	// ErrNoCompletionChoice indicates the backend responded without a usable choice
	ErrNoCompletionChoice = errors.New("backend response contained no completion choice")
)

// Cache errors
var (
	// ErrCacheCorrupt indicates the cache file exists but is not valid JSON.
	// Treated as a cache miss, never fatal.
	ErrCacheCorrupt = errors.New("cache file is corrupt")
)
