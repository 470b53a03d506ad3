package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds how many layers of entity encoding are peeled off.
const maxSanitizePasses = 8

// sanitizeText strips all markup from user supplied free text. The result is
// stored as plain text, so the entities bluemonday emits are decoded again.
// Decoding can surface markup that was entity encoded in the input, so the
// policy runs until the output stops changing.
func sanitizeText(s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(s))
		if next == s {
			return strings.TrimSpace(next)
		}
		s = next
	}
	// still changing: keep the escaped form, which cannot carry markup
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
