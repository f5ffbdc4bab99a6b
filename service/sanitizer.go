package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer is the final trust boundary for summary HTML. Nothing the
// backend returned reaches the rendering collaborator without passing
// through it.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	// UGCPolicy allows the tags the formatting chain emits (a, b, h4, br)
	// while stripping anything else the model may have produced.
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{policy: p}
}

// SanitizeHTML sanitizes the fragment and trims surrounding whitespace.
func (s *Sanitizer) SanitizeHTML(html string) string {
	return strings.TrimSpace(s.policy.Sanitize(html))
}
