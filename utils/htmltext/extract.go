// ABOUTME: This file converts feed-supplied HTML fragments into plain text
// ABOUTME: Used to clean descriptions before they enter the summarization corpus
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// ExtractText converts an HTML fragment into readable plain text. Script,
// style and embedded media are dropped and whitespace is collapsed. Plain
// text input passes through with only whitespace normalization.
func ExtractText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	// Short-circuit if the payload is already plain text.
	if !strings.Contains(trimmed, "<") {
		return normalizeWhitespace(trimmed)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return normalizeWhitespace(StripTags(trimmed))
	}

	doc.Find("script, style, noscript, iframe, embed, object, img, video, audio").Remove()

	return normalizeWhitespace(doc.Text())
}

// StripTags removes every HTML tag from the fragment, leaving escaped text
// content only.
func StripTags(raw string) string {
	return stripPolicy.Sanitize(raw)
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
