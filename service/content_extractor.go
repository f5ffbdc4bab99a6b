// ABOUTME: This file flattens feed results into the plain-text summarization corpus
// ABOUTME: Items become "{title} ({link})" lines; the corpus is capped to a character budget
package service

import (
	"strings"

	"rss-firehose/domain"
)

// ExtractItems converts one result (live or offline) into textual items in
// the feed's native order. Offline placeholders flow through like any
// other feed; extraction never branches on availability.
func ExtractItems(result *domain.FeedResult) []string {
	if result == nil {
		return nil
	}

	lines := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		lines = append(lines, title+" ("+item.Link+")")
	}

	return lines
}

// BuildCorpus joins extracted items with ". " and truncates the result to
// limit characters, keeping the prompt inside the backend's token budget.
func BuildCorpus(lines []string, limit int) string {
	corpus := strings.Join(lines, ". ")
	return truncate(corpus, limit)
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
