// ABOUTME: This file converts model output markdown into safe HTML fragments
// ABOUTME: Link conversion keeps strict length caps and a scheme allow-list
package service

import (
	"html"
	"regexp"
	"strings"
)

// Length caps on link text and URL. These bounds are load-bearing: they
// keep the pattern from matching pathological input, and anything outside
// them is left byte-for-byte unchanged.
const (
	maxLinkTextLen = 100
	maxLinkURLLen  = 200
)

var (
	// Link text may not contain brackets; URL must carry an allow-listed
	// scheme and may not contain whitespace or parentheses.
	markdownLinkPattern = regexp.MustCompile(
		`\[([^\[\]]{1,100})\]\(((?:https?|ftp)://[^()\s]{1,200})\)`)

	markdownHeaderPattern = regexp.MustCompile(`##+ ?([^<\n]{1,200})`)

	// Excluding < keeps the bold step from re-escaping tags the earlier
	// steps emitted.
	markdownBoldPattern = regexp.MustCompile(`\*\*([^*<\n]{1,300})\*\*`)
)

// FormatSummaryHTML applies the fixed post-processing chain to raw model
// output. The order is fixed: line breaks, headers, links, bold. Later
// steps must not re-mangle earlier output.
func FormatSummaryHTML(text string) string {
	out := convertLineBreaksToHTML(text)
	out = convertMarkdownHeadersToHTML(out)
	out = ConvertMarkdownLinksToHTML(out)
	out = convertMarkdownBoldToHTML(out)

	return out
}

func convertLineBreaksToHTML(text string) string {
	out := strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(out, "\n", "<br>")
}

func convertMarkdownHeadersToHTML(text string) string {
	return markdownHeaderPattern.ReplaceAllStringFunc(text, func(match string) string {
		content := strings.TrimLeft(match, "# ")
		return "<h4>" + html.EscapeString(strings.TrimSpace(content)) + "</h4>"
	})
}

// ConvertMarkdownLinksToHTML rewrites [text](url) into an anchor tag when
// the text is at most 100 characters, the URL at most 200 characters, and
// the URL scheme is http, https, or ftp. Every other bracket pattern is
// returned unchanged. Both text and URL are HTML-escaped before emission.
func ConvertMarkdownLinksToHTML(text string) string {
	return markdownLinkPattern.ReplaceAllStringFunc(text, func(match string) string {
		parts := markdownLinkPattern.FindStringSubmatch(match)
		if len(parts) != 3 {
			return match
		}

		linkText, linkURL := parts[1], parts[2]
		if len(linkText) > maxLinkTextLen || len(linkURL) > maxLinkURLLen {
			return match
		}

		return `<a href="` + html.EscapeString(linkURL) + `">` + html.EscapeString(linkText) + `</a>`
	})
}

func convertMarkdownBoldToHTML(text string) string {
	return markdownBoldPattern.ReplaceAllStringFunc(text, func(match string) string {
		inner := strings.TrimPrefix(strings.TrimSuffix(match, "**"), "**")
		return "<b>" + html.EscapeString(inner) + "</b>"
	})
}
